// Package files provides file discovery over directory trees.
//
// Discovery walks a directory recursively in lexical order and reports the
// regular files it finds, filtered by extension and with hidden files and
// placeholder files excluded.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/path/to/project/data")
//
//	// Every CSV and Parquet file under raw/, recursively
//	found, err := discovery.FindFiles("raw", []string{".csv", ".parquet"})
//
//	// Every file except .gitkeep placeholders
//	all, err := discovery.FindAll("raw")
package files
