package crashtrap

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/hugo-lorenzo-mato/crashtrap/internal/ident"
	"github.com/hugo-lorenzo-mato/crashtrap/internal/logging"
	"github.com/hugo-lorenzo-mato/crashtrap/internal/report"
	"github.com/hugo-lorenzo-mato/crashtrap/internal/storage"
)

type hook struct {
	meta      Metadata
	outputDir string // empty means ReportDir(meta.Name)
	writer    *storage.Writer
	ids       *ident.Generator
	logger    *logging.Logger
}

// Recover is the defer-compatible fault interceptor. When no hook is armed
// it does nothing at all, so the panic unwinds exactly as it would without
// this package. When armed, it builds and persists a crash report and then
// re-raises the original panic value: the reporter observes, it never
// swallows.
//
// It runs synchronously on the panicking goroutine, spawns nothing, and
// acquires no locks shared with host code. A panic inside the handler
// itself (serialization, id generation) escapes; there is no recovery path
// below the fault handler.
func Recover() {
	h := current.Load()
	if h == nil {
		return
	}

	r := recover()
	if r == nil {
		return
	}

	h.handle(r)
	panic(r)
}

func (h *hook) handle(r any) {
	cause := report.Cause{
		Value:     r,
		Location:  panicLocation(),
		Backtrace: debug.Stack(),
	}

	rep := report.Build(report.Meta{
		Name:       h.meta.Name,
		Version:    h.meta.Version,
		Repository: h.meta.Repository,
	}, cause)

	content, err := rep.EncodeTOML()
	if err != nil {
		h.logger.Error("crash report failed to serialize", "error", err)
		return
	}

	id, err := h.ids.Next()
	if err != nil {
		h.logger.Error("crash report id generation failed", "error", err)
		return
	}

	dir := h.outputDir
	if dir == "" {
		dir = ReportDir(h.meta.Name)
	}

	path, err := h.writer.Persist(content, dir, id, h.meta.Name, h.meta.Repository)
	if err != nil {
		h.logger.Error("crash report persistence fell back to stderr", "error", err)
		return
	}
	h.logger.Debug("crash report written", "path", path)
}

const pkgPath = "github.com/hugo-lorenzo-mato/crashtrap"

// panicLocation resolves the source location of the panic site as
// file:line. It walks past runtime internals and this package's own frames;
// for runtime-raised panics (nil dereference and friends) that lands on the
// faulting user frame. The runtime always has a frame to report, so a
// result is always available; "unknown:0" would indicate a broken stack.
func panicLocation() string {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	fallback := ""
	for {
		fr, more := frames.Next()
		if fr.File != "" && fallback == "" {
			fallback = fmt.Sprintf("%s:%d", fr.File, fr.Line)
		}
		if fr.File != "" && !skippedFrame(fr.Function) {
			return fmt.Sprintf("%s:%d", fr.File, fr.Line)
		}
		if !more {
			break
		}
	}

	if fallback == "" {
		fallback = "unknown:0"
	}
	return fallback
}

func skippedFrame(fn string) bool {
	if strings.HasPrefix(fn, "runtime.") {
		return true
	}
	switch fn {
	case pkgPath + ".Recover",
		pkgPath + ".panicLocation",
		pkgPath + ".(*hook).handle":
		return true
	}
	return false
}
