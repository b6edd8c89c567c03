package bridge

import (
	"fmt"
	"time"

	"github.com/marmos91/filebridge/pkg/entry"
	"github.com/mitchellh/mapstructure"
)

// normalizeArgs unwraps a doubly-wrapped argument array.
//
// Some host transports deliver the positional argument list wrapped in one
// extra layer of sequencing. Unwrapping happens here, once, before any
// operation logic runs.
func normalizeArgs(args []any) []any {
	if len(args) == 1 {
		if inner, ok := args[0].([]any); ok {
			return inner
		}
	}
	return args
}

// argString extracts the positional string argument at index i.
func argString(args []any, i int) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("missing argument %d", i)
	}
	s, ok := args[i].(string)
	if !ok {
		return "", fmt.Errorf("argument %d: expected string, got %T", i, args[i])
	}
	return s, nil
}

// argInt64 extracts the positional integer argument at index i, accepting
// the numeric types a JSON decoder produces.
func argInt64(args []any, i int) (int64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing argument %d", i)
	}
	switch v := args[i].(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("argument %d: expected number, got %T", i, args[i])
	}
}

// argBytes extracts the positional payload argument at index i. Hosts send
// payloads as strings; raw byte slices are accepted for in-process callers.
func argBytes(args []any, i int) ([]byte, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("missing argument %d", i)
	}
	switch v := args[i].(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("argument %d: expected payload, got %T", i, args[i])
	}
}

// argOptions decodes the optional {create, exclusive} flags at index i.
// A missing or nil argument yields the zero options.
func argOptions(args []any, i int) (entry.Options, error) {
	if i >= len(args) || args[i] == nil {
		return entry.Options{}, nil
	}
	var opts entry.Options
	if err := mapstructure.Decode(args[i], &opts); err != nil {
		return entry.Options{}, fmt.Errorf("argument %d: decode options: %w", i, err)
	}
	return opts, nil
}

// argModificationTime decodes the {modificationTime} record at index i.
// The timestamp arrives as milliseconds since the Unix epoch.
func argModificationTime(args []any, i int) (time.Time, error) {
	if i >= len(args) {
		return time.Time{}, fmt.Errorf("missing argument %d", i)
	}
	var rec struct {
		ModificationTime float64 `mapstructure:"modificationTime"`
	}
	if err := mapstructure.Decode(args[i], &rec); err != nil {
		return time.Time{}, fmt.Errorf("argument %d: decode metadata: %w", i, err)
	}
	return time.UnixMilli(int64(rec.ModificationTime)), nil
}
