// Package crashtrap embeds a crash reporter in a host executable. When an
// armed process panics, the reporter assembles a structured diagnostic
// report, persists it as a TOML file under the OS temp directory, and prints
// a notice telling the operator where the report is and where to raise an
// issue. If the report cannot be written to disk it is dumped to stderr
// instead as a last-ditch effort.
//
// The hook is armed only when both hold:
//
//   - the executable is a release build (not built with -tags crashtrap_debug)
//   - the GOTRACEBACK environment variable is not set
//
// Otherwise Install is a no-op and the runtime's default panic output is
// left untouched. Hosts arm the reporter once at startup and guard their
// goroutines with a deferred Recover:
//
//	func main() {
//		crashtrap.Install(crashtrap.Metadata{
//			Name:       "myapp",
//			Version:    version,
//			Repository: "https://github.com/example/myapp",
//		})
//		defer crashtrap.Recover()
//		// ...
//	}
//
// The reporter observes and reports; it never suppresses the panic. After
// the report is handled, Recover re-raises the original panic value.
package crashtrap

import (
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/hugo-lorenzo-mato/crashtrap/internal/ident"
	"github.com/hugo-lorenzo-mato/crashtrap/internal/logging"
	"github.com/hugo-lorenzo-mato/crashtrap/internal/storage"
)

// crashSubdir is the fixed folder name under <tmp>/<app> that reports are
// written to. It is part of the observable contract: operators and tooling
// locate reports by this scheme.
const crashSubdir = "crash"

// backtraceEnv disables the reporter when present, on the assumption that
// whoever set it wants the runtime's own verbose panic output.
const backtraceEnv = "GOTRACEBACK"

// Metadata identifies the host application. It populates the crash report
// and the error message shown to operators.
type Metadata struct {
	// Name of the host application.
	Name string
	// Version of the host application's release.
	Version string
	// Repository is the URL operators are directed to for support.
	Repository string
}

// current is the process-wide hook slot. Registration is one-way: armed
// once at startup, never torn down. A second Install overwrites the first.
var current atomic.Pointer[hook]

// Option adjusts hook behavior, mainly for tests and embedding hosts.
type Option func(*hook)

// WithOutputDir overrides the directory reports are written to. The default
// is <os temp dir>/<name>/crash.
func WithOutputDir(dir string) Option {
	return func(h *hook) { h.outputDir = dir }
}

// WithStderr redirects the operator-facing output stream.
func WithStderr(w io.Writer) Option {
	return func(h *hook) { h.writer = storage.NewWriter(w) }
}

// WithLogger enables lifecycle logging. The default logger is a no-op so
// the crash path emits nothing beyond its own textual contract.
func WithLogger(l *logging.Logger) Option {
	return func(h *hook) { h.logger = l }
}

// Install arms the crash reporter with the given metadata and reports
// whether it armed. The activation policy is evaluated once, here: debug
// builds and processes with GOTRACEBACK set are left to the runtime's
// default panic handling.
func Install(meta Metadata, opts ...Option) bool {
	if debugBuild {
		return false
	}
	if _, set := os.LookupEnv(backtraceEnv); set {
		return false
	}

	h := &hook{
		meta:   meta,
		writer: storage.NewWriter(nil),
		ids:    ident.NewGenerator(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}

	current.Store(h)
	h.logger.Debug("crash reporter armed",
		"app", meta.Name,
		"version", meta.Version,
	)
	return true
}

// Armed reports whether a crash hook is currently installed.
func Armed() bool {
	return current.Load() != nil
}

// ReportDir returns the directory crash reports for the named application
// are written to by default.
func ReportDir(name string) string {
	return filepath.Join(os.TempDir(), name, crashSubdir)
}
