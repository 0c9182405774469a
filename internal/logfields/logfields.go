package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyInput      = "input"
	KeyOutput     = "output"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyCompiler   = "compiler"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyIndex      = "index"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Input(p string) slog.Attr        { return slog.String(KeyInput, p) }
func Output(p string) slog.Attr       { return slog.String(KeyOutput, p) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(name string) slog.Attr      { return slog.String(KeyFile, name) }
func Compiler(name string) slog.Attr  { return slog.String(KeyCompiler, name) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Index(i int) slog.Attr           { return slog.Int(KeyIndex, i) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
