// Package listview provides a scrolling list for Bubble Tea screens that
// renders only the rows inside the viewport.
package listview
