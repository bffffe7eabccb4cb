//go:build crashtrap_debug

package crashtrap

const debugBuild = true
