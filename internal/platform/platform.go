//go:build !ios && !android && (amd64 || arm64)

// Package platform knows how shared libraries are named on each OS.
package platform

import (
	"fmt"
	"runtime"
	"unsafe"
)

// Is64Bit reports whether pointers are 8 bytes. Struct offsets used by the
// binding packages assume a 64-bit layout.
const Is64Bit = unsafe.Sizeof(uintptr(0)) == 8

// naming describes how one OS spells a shared library file name.
type naming struct {
	prefix    string
	extension string
	// versioned renders a name with a major version appended.
	versioned func(prefix, name, ext string, version int) string
}

var namings = map[string]naming{
	"darwin": {
		prefix:    "lib",
		extension: ".dylib",
		versioned: func(p, n, e string, v int) string { return fmt.Sprintf("%s%s.%d%s", p, n, v, e) },
	},
	"windows": {
		prefix:    "",
		extension: ".dll",
		versioned: func(p, n, e string, v int) string { return fmt.Sprintf("%s%s-%d%s", p, n, v, e) },
	},
}

// ELF platforms (linux, freebsd, ...) share one convention.
var elfNaming = naming{
	prefix:    "lib",
	extension: ".so",
	versioned: func(p, n, e string, v int) string { return fmt.Sprintf("%s%s%s.%d", p, n, e, v) },
}

func namingFor(goos string) naming {
	if n, ok := namings[goos]; ok {
		return n
	}
	return elfNaming
}

// LibraryExtension is the file extension for shared libraries on this platform.
var LibraryExtension = namingFor(runtime.GOOS).extension

// LibraryPrefix is the prefix for shared library names on this platform.
var LibraryPrefix = namingFor(runtime.GOOS).prefix

// FormatLibraryName returns the platform-specific library filename.
// If version is 0, returns the unversioned library name.
//
// Examples:
//   - Linux:   FormatLibraryName("avcodec", 60) -> "libavcodec.so.60"
//   - macOS:   FormatLibraryName("avcodec", 60) -> "libavcodec.60.dylib"
//   - Windows: FormatLibraryName("avcodec", 60) -> "avcodec-60.dll"
func FormatLibraryName(name string, version int) string {
	return formatFor(runtime.GOOS, name, version)
}

func formatFor(goos, name string, version int) string {
	n := namingFor(goos)
	if version > 0 {
		return n.versioned(n.prefix, name, n.extension, version)
	}
	return n.prefix + name + n.extension
}
