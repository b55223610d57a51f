// Package window owns the collection of open desktop windows.
//
// Every window carries a zIndex drawn from a single monotonic Counter, so
// "bring to front" is one increment and the whole collection always has a
// strict recency order. The visible window with the highest zIndex is the
// active one. When the active window is closed or minimized the next
// visible window by zIndex becomes active without being bumped.
//
// All mutators are total: an unknown id is a no-op reported as false.
// Geometry is stored raw; clamping belongs to the shell.
package window
