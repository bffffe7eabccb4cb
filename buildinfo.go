package crashtrap

import (
	"path"
	"runtime/debug"
	"strings"
)

// MetadataFromBuildInfo derives Metadata from the binary's embedded module
// information. It is a convenience for hosts that don't inject version
// metadata at build time; hosts with goreleaser-style ldflags should
// construct Metadata explicitly instead. The second return is false when
// build info is unavailable (binaries built without module support).
func MetadataFromBuildInfo() (Metadata, bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Path == "" {
		return Metadata{}, false
	}

	meta := Metadata{
		Name:    path.Base(info.Main.Path),
		Version: info.Main.Version,
	}
	if meta.Version == "" {
		meta.Version = "(devel)"
	}

	// Module paths on a known forge double as browsable repository URLs.
	host, _, found := strings.Cut(info.Main.Path, "/")
	if found && strings.Contains(host, ".") {
		meta.Repository = "https://" + info.Main.Path
	}

	return meta, true
}
