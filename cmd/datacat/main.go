// Command datacat inspects the data files of a project laid out as
// root/data/{raw,processed,interim,external}.
//
// Usage:
//
//	datacat [-root dir] [-config file] [-metrics] [-version] <command> [args]
//
// Commands:
//
//	scan [-dirs raw,processed] [-ext .csv,.json]
//	search <pattern>
//	resolve <basename>
//	summary
//	load [-key k] [-sheet s] [-rows n] [-delimiter c] [-no-header] <basename>
//	walk <dir>
//	export [-summary | -frame basename] -out file.csv
//
// resolve exits with status 2 when the basename is unknown and 3 when it is
// ambiguous. Every other failure exits with status 1.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"datakit/internal/catalog"
	"datakit/internal/config"
	"datakit/internal/exporter"
	"datakit/internal/infrastructure"
	"datakit/internal/loaders"
	"datakit/pkg/contracts"
	"datakit/pkg/contracts/domain"
)

const (
	exitOK        = 0
	exitError     = 1
	exitNotFound  = 2
	exitAmbiguous = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// app carries what every sub-command needs
type app struct {
	cfg    *config.Config
	cat    *catalog.Catalog
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("datacat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	root := fs.String("root", "", "project root (defaults to the configured catalog root)")
	configPath := fs.String("config", "", "YAML config file (defaults to datakit.yaml or configs/datakit.yaml)")
	showMetrics := fs.Bool("metrics", false, "print catalog metrics to stderr after the command")
	showVersion := fs.Bool("version", false, "print version information and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: datacat [-root dir] [-config file] [-metrics] <scan|search|resolve|summary|load|walk|export> [args]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *showVersion {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return exitOK
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitError
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "datacat: %v\n", err)
		return exitError
	}
	if *root != "" {
		cfg.Catalog.Root = *root
	}

	logger, closer, err := infrastructure.NewLogger(cfg.Logging, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "datacat: %v\n", err)
		return exitError
	}
	defer closer.Close()
	previous := slog.Default()
	slog.SetDefault(logger)
	defer slog.SetDefault(previous)

	cat, err := catalog.NewFromConfig(cfg, catalog.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(stderr, "datacat: %v\n", err)
		return exitError
	}

	a := &app{cfg: cfg, cat: cat, logger: logger, stdout: stdout, stderr: stderr}

	command, rest := fs.Arg(0), fs.Args()[1:]
	var code int
	switch command {
	case "scan":
		code = a.scan(rest)
	case "search":
		code = a.search(rest)
	case "resolve":
		code = a.resolve(rest)
	case "summary":
		code = a.summary(rest)
	case "load":
		code = a.load(rest)
	case "walk":
		code = a.walk(rest)
	case "export":
		code = a.export(rest)
	default:
		fmt.Fprintf(stderr, "datacat: unknown command %q\n", command)
		fs.Usage()
		return exitError
	}

	if *showMetrics {
		if err := cat.Metrics().WriteText(stderr); err != nil {
			fmt.Fprintf(stderr, "datacat: %v\n", err)
		}
	}
	return code
}

func (a *app) fail(err error) int {
	fmt.Fprintf(a.stderr, "datacat: %v\n", err)
	return exitError
}

func (a *app) scan(args []string) int {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	dirs := fs.String("dirs", "", "comma-separated subdirectories of the data directory")
	exts := fs.String("ext", "", "comma-separated extensions to include")
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	recs, err := a.cat.Scan(splitList(*dirs), splitList(*exts))
	if err != nil {
		return a.fail(err)
	}
	printRecords(a.stdout, recs)
	return exitOK
}

func (a *app) search(args []string) int {
	if len(args) != 1 {
		return a.fail(errors.New("search requires exactly one pattern"))
	}

	recs, err := a.cat.Search(args[0])
	if err != nil {
		return a.fail(err)
	}
	printRecords(a.stdout, recs)
	return exitOK
}

func (a *app) resolve(args []string) int {
	if len(args) != 1 {
		return a.fail(errors.New("resolve requires exactly one basename"))
	}
	if _, err := a.cat.Scan(nil, nil); err != nil {
		return a.fail(err)
	}

	res := a.cat.Resolve(args[0])
	switch res.Status {
	case domain.ResolutionFound:
		fmt.Fprintln(a.stdout, res.Path)
		return exitOK
	case domain.ResolutionAmbiguous:
		fmt.Fprintf(a.stderr, "Multiple files found for '%s':\n", res.Basename)
		printRecords(a.stderr, res.Candidates)
		return exitAmbiguous
	default:
		fmt.Fprintf(a.stderr, "No file found with basename: '%s'\n", res.Basename)
		return exitNotFound
	}
}

func (a *app) summary(args []string) int {
	if len(args) != 0 {
		return a.fail(errors.New("summary takes no arguments"))
	}

	rows, err := a.cat.Summarize()
	if err != nil {
		return a.fail(err)
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DIRECTORY\tEXTENSION\tCOUNT\tTOTAL_MB\tMEAN_MB\tLATEST_MODIFIED")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.3f\t%.3f\t%s\n",
			r.Directory, r.Extension, r.Count, r.TotalMB, r.MeanMB, r.LatestModified.Format("2006-01-02 15:04:05"))
	}
	tw.Flush()
	return exitOK
}

func (a *app) load(args []string) int {
	fs := flag.NewFlagSet("load", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	key := fs.String("key", "", "dataset key inside an HDF5 file")
	sheet := fs.String("sheet", "", "spreadsheet sheet name")
	rows := fs.Int("rows", 10, "number of rows to print; negative prints all")
	delimiter := fs.String("delimiter", "", "CSV field delimiter")
	noHeader := fs.Bool("no-header", false, "treat the first row as data")
	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if fs.NArg() != 1 {
		return a.fail(errors.New("load requires exactly one basename"))
	}

	opts := loaders.Options{Key: *key, Sheet: *sheet, NoHeader: *noHeader}
	if *delimiter != "" {
		opts.Delimiter, _ = utf8.DecodeRuneInString(*delimiter)
	}

	if _, err := a.cat.Scan(nil, nil); err != nil {
		return a.fail(err)
	}
	v, err := a.cat.Load(fs.Arg(0), opts)
	if err != nil {
		return a.fail(err)
	}

	if f, ok := v.(*domain.Frame); ok {
		printFrame(a.stdout, f.Head(*rows))
		fmt.Fprintf(a.stdout, "[%d rows x %d columns]\n", f.Len(), len(f.Columns))
		return exitOK
	}

	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return a.fail(fmt.Errorf("failed to print value: %w", err))
	}
	fmt.Fprintln(a.stdout, string(out))
	return exitOK
}

func (a *app) walk(args []string) int {
	if len(args) != 1 {
		return a.fail(errors.New("walk requires exactly one directory"))
	}

	found, err := catalog.Walk(args[0])
	if err != nil {
		return a.fail(err)
	}

	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(a.stdout, name, found[name])
	}
	return exitOK
}

func (a *app) export(args []string) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	out := fs.String("out", "", "output CSV file, relative to the reports directory unless absolute")
	summary := fs.Bool("summary", false, "export the summary instead of the file table")
	frame := fs.String("frame", "", "export the contents of a tabular file instead of the file table")
	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *out == "" {
		return a.fail(errors.New("export requires -out"))
	}
	if *summary && *frame != "" {
		return a.fail(errors.New("export accepts only one of -summary and -frame"))
	}

	paths, err := a.cfg.Paths()
	if err != nil {
		return a.fail(err)
	}
	w := exporter.NewCSVWriter(paths)

	if *summary {
		rows, err := a.cat.Summarize()
		if err != nil {
			return a.fail(err)
		}
		if err := w.ExportSummary(*out, rows); err != nil {
			return a.fail(err)
		}
		return exitOK
	}

	if *frame != "" {
		if _, err := a.cat.Scan(nil, nil); err != nil {
			return a.fail(err)
		}
		f, err := a.cat.LoadFrame(*frame, loaders.Options{})
		if err != nil {
			return a.fail(err)
		}
		if err := w.ExportFrame(*out, f); err != nil {
			return a.fail(err)
		}
		return exitOK
	}

	recs, err := a.cat.Scan(nil, nil)
	if err != nil {
		return a.fail(err)
	}
	if err := w.ExportEntries(*out, recs); err != nil {
		return a.fail(err)
	}
	return exitOK
}

func printRecords(w io.Writer, recs []domain.FileRecord) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BASENAME\tDIRECTORY\tEXTENSION\tSIZE_MB\tRELATIVE_PATH")
	for _, r := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.3f\t%s\n", r.Basename, r.Directory, r.Extension, r.SizeMB, r.RelativePath)
	}
	tw.Flush()
}

func printFrame(w io.Writer, f *domain.Frame) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(f.Columns, "\t"))
	for _, row := range f.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			if c != nil {
				cells[i] = fmt.Sprint(c)
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
