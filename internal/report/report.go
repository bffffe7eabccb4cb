// Package report builds and encodes crash reports. A report captures the
// panic, the environment it happened in, and a best-effort snapshot of the
// host system at the moment of the crash.
package report

import (
	"os"
	"runtime"
	"runtime/debug"
	"time"
)

// Meta identifies the host application a report is filed against.
type Meta struct {
	Name       string
	Version    string
	Repository string
}

// Cause describes the panic being reported. Value is the recovered panic
// payload; Location and Backtrace are captured by the interceptor at the
// recovery site.
type Cause struct {
	Value     any
	Location  string
	Backtrace []byte
}

// Report is the persisted crash record. Optional fields are pointers and
// omitted from the encoding when absent.
type Report struct {
	CapturedAt      string  `toml:"captured_at"`
	PackageName     string  `toml:"package_name"`
	PackageVersion  string  `toml:"package_version"`
	BinaryName      *string `toml:"binary_name,omitempty"`
	WorkingDir      *string `toml:"working_dir,omitempty"`
	OperatingSystem string  `toml:"operating_system"`
	Architecture    string  `toml:"architecture"`
	GoVersion       string  `toml:"go_version"`
	ProcessID       int     `toml:"process_id"`
	PanicMessage    *string `toml:"panic_message,omitempty"`
	PanicLocation   string  `toml:"panic_location"`
	Backtrace       string  `toml:"backtrace"`
	System          *System `toml:"system,omitempty"`
}

// Build assembles a report from the host metadata and the panic cause. It
// never fails: every lookup that can go wrong resolves to an absent field
// instead of an error.
func Build(meta Meta, cause Cause) Report {
	r := Report{
		CapturedAt:      time.Now().UTC().Format(time.RFC3339),
		PackageName:     meta.Name,
		PackageVersion:  meta.Version,
		OperatingSystem: runtime.GOOS,
		Architecture:    runtime.GOARCH,
		GoVersion:       runtime.Version(),
		ProcessID:       os.Getpid(),
		PanicLocation:   cause.Location,
	}

	if len(os.Args) > 0 && os.Args[0] != "" {
		bin := os.Args[0]
		r.BinaryName = &bin
	}
	if wd, err := os.Getwd(); err == nil {
		r.WorkingDir = &wd
	}

	// Only plain string payloads carry a message. Stringifying arbitrary
	// payloads would silently change what the report means.
	if msg, ok := cause.Value.(string); ok {
		r.PanicMessage = &msg
	}

	bt := cause.Backtrace
	if len(bt) == 0 {
		bt = debug.Stack()
	}
	r.Backtrace = string(bt)

	r.System = snapshotSystem()

	return r
}
