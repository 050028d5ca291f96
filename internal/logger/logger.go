package logger

import (
	"os"
	"sort"

	charm "github.com/charmbracelet/log"
)

var std = charm.NewWithOptions(os.Stdout, charm.Options{
	ReportTimestamp: true,
})

func Init() {
	std.Info("logger initialized")
}

func Info(msg string, fields map[string]any) {
	std.Info(msg, keyvals(fields)...)
}

func Warn(msg string, fields map[string]any) {
	std.Warn(msg, keyvals(fields)...)
}

func Error(msg string, fields map[string]any) {
	std.Error(msg, keyvals(fields)...)
}

func Fatal(msg string, fields map[string]any) {
	std.Fatal(msg, keyvals(fields)...)
}

// keyvals flattens the field map in key order so repeated runs log
// fields deterministically.
func keyvals(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kv := make([]any, 0, len(fields)*2)
	for _, k := range keys {
		kv = append(kv, k, fields[k])
	}
	return kv
}
