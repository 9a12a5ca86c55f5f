//go:build debug

package matcher

// MaxMatchesPerLine is lowered in debug builds so the truncation path is
// easy to hit.
const MaxMatchesPerLine = 32
