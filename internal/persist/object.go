package persist

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/fxamacker/cbor/v2"

	"datakit/pkg/contracts/domain"
)

// ErrEmptyFilename is returned when SaveObject is called without a file name
var ErrEmptyFilename = errors.New("file name is required")

// FrameTag is the CBOR tag number wrapping every encoded domain.Frame
const FrameTag uint64 = 100201

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	tags := cbor.NewTagSet()
	err := tags.Add(
		cbor.TagOptions{EncTag: cbor.EncTagRequired, DecTag: cbor.DecTagRequired},
		reflect.TypeOf(domain.Frame{}),
		FrameTag,
	)
	if err != nil {
		panic(fmt.Sprintf("persist: invalid cbor tag set: %v", err))
	}

	encMode, err = cbor.EncOptions{
		Time: cbor.TimeRFC3339Nano,
		Sort: cbor.SortCanonical,
	}.EncModeWithTags(tags)
	if err != nil {
		panic(fmt.Sprintf("persist: invalid cbor encode options: %v", err))
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecModeWithTags(tags)
	if err != nil {
		panic(fmt.Sprintf("persist: invalid cbor decode options: %v", err))
	}
}

// now is replaced in tests
var now = time.Now

// SaveObject serializes obj to folder/filename, optionally injecting a
// timestamp before the extension, and returns the path written. The folder
// must already exist; the file is created or truncated.
func SaveObject(obj any, folder, filename string, timestamp bool) (string, error) {
	if filename == "" {
		return "", ErrEmptyFilename
	}
	if timestamp {
		filename = TimestampedName(filename, now())
	}
	fullPath := filepath.Join(folder, filename)

	data, err := encMode.Marshal(obj)
	if err != nil {
		return "", fmt.Errorf("failed to encode object: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", err
	}

	slog.Info("File Saved",
		slog.String("path", fullPath),
		slog.Int("size_bytes", len(data)))

	return fullPath, nil
}

// LoadObject decodes a file written by SaveObject into a generic value.
// Maps decode as map[string]any, arrays as []any and tagged frames as
// domain.Frame values.
func LoadObject(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var v any
	if err := decMode.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return v, nil
}

// DecodeObject decodes a file written by SaveObject into dst, which must be a
// non-nil pointer.
func DecodeObject(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := decMode.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}
