//go:build !debug

package matcher

// MaxMatchesPerLine bounds the spans collected for one line across all
// patterns. Further matches are dropped silently.
const MaxMatchesPerLine = 2048
