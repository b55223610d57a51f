// Package shell turns pointer and keyboard input into window manager calls
// and computes what the desktop shows.
//
// The shell owns the rules the window manager deliberately does not:
// drag clamping, the resize floor, which target a pointer-down hit, the
// keyboard chords of the active window, dock behavior, the two free
// widgets and the desktop icons with the archive lock.
//
// Only one pointer gesture exists at a time. PointerUp always ends it no
// matter where it lands, and a new PointerDown replaces a gesture whose
// PointerUp was lost.
package shell
