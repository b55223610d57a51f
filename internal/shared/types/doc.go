// Package types provides shared data structures for the desktop backend.
//
// Core Types:
//   - WindowRecord: one open desktop window (app binding, geometry, stacking)
//   - PuzzleState: progression flags and deep-link slots
//   - FlowState: screen (intro, login, desktop) plus overlays
//   - Position, Size, Rect: geometry in CSS pixels
//   - View: render-ready interior of a mounted application
//
// Example Usage:
//
//	rec := types.WindowRecord{
//	    ID:     string(id.NewWindowID()),
//	    AppID:  "calculator",
//	    Size:   types.Size{Width: 360, Height: 520},
//	    ZIndex: counter.Next(),
//	}
package types
