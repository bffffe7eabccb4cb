//go:build !crashtrap_debug

package crashtrap

// debugBuild marks development builds. Default builds are release builds;
// building with -tags crashtrap_debug flips this and keeps the reporter
// disarmed so developers see the runtime's own panic output.
const debugBuild = false
