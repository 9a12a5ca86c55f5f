package walker

import (
	"path/filepath"
	"strings"
)

// IsBinaryExtension returns true if the filename has an extension known to be
// a binary format, including versioned shared libraries like libfoo.so.1.2.
// Only applied to files found while walking, never to explicit arguments.
func IsBinaryExtension(name string) bool {
	if strings.Contains(name, ".so.") {
		return true
	}
	_, ok := binaryExts[strings.ToLower(filepath.Ext(name))]
	return ok
}

var binaryExts = map[string]struct{}{
	// objects and executables
	".a": {}, ".o": {}, ".so": {}, ".dylib": {}, ".dll": {}, ".exe": {},
	".class": {}, ".pyc": {}, ".wasm": {},
	// archives
	".gz": {}, ".bz2": {}, ".xz": {}, ".zst": {}, ".zip": {}, ".tar": {},
	".7z": {}, ".jar": {}, ".deb": {}, ".rpm": {},
	// media
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".ico": {}, ".webp": {},
	".mp3": {}, ".mp4": {}, ".wav": {}, ".mkv": {},
	// documents, fonts, databases
	".pdf": {}, ".ttf": {}, ".woff": {}, ".woff2": {}, ".db": {}, ".sqlite": {},
}
