// Package listview is a small scrolling cursor list for Bubble Tea screens.
// It renders only the rows that fit in its height and leaves styling to a
// caller-supplied render function.
package listview
