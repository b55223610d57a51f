package http

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/window"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/workspace"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

var (
	identPattern  = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	maxCoordinate = 20000
)

// LoginRequest submits the login pin
type LoginRequest struct {
	PIN string `json:"pin"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PIN, validation.Required, validation.Length(4, 12), is.Digit),
	)
}

// SearchRequest submits a phrase to the search overlay
type SearchRequest struct {
	Query string `json:"query"`
}

func (r SearchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Query, validation.Length(0, 200)),
	)
}

// OpenWindowRequest opens an application window
type OpenWindowRequest struct {
	AppID       string   `json:"app_id"`
	InitialPath []string `json:"initial_path,omitempty"`
	Resizable   *bool    `json:"resizable,omitempty"`
}

func (r OpenWindowRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AppID, validation.Required, validation.Match(identPattern)),
		validation.Field(&r.InitialPath, validation.Length(0, 16)),
	)
}

func (r OpenWindowRequest) options() window.Options {
	return window.Options{InitialPath: r.InitialPath, Resizable: r.Resizable}
}

// PositionRequest moves a window
type PositionRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (r PositionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.X, validation.Min(-maxCoordinate), validation.Max(maxCoordinate)),
		validation.Field(&r.Y, validation.Min(0), validation.Max(maxCoordinate)),
	)
}

func (r PositionRequest) position() types.Position {
	return types.Position{X: r.X, Y: r.Y}
}

// SizeRequest resizes a window
type SizeRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (r SizeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Width, validation.Required, validation.Min(1), validation.Max(maxCoordinate)),
		validation.Field(&r.Height, validation.Required, validation.Min(1), validation.Max(maxCoordinate)),
	)
}

func (r SizeRequest) size() types.Size {
	return types.Size{Width: r.Width, Height: r.Height}
}

// ViewportRequest reports the browser size
type ViewportRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (r ViewportRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Width, validation.Required, validation.Min(1), validation.Max(maxCoordinate)),
		validation.Field(&r.Height, validation.Required, validation.Min(1), validation.Max(maxCoordinate)),
	)
}

// ActionRequest invokes an application action
type ActionRequest struct {
	Action string            `json:"action"`
	Params map[string]string `json:"params,omitempty"`
}

func (r ActionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Action, validation.Required, validation.Match(identPattern)),
		validation.Field(&r.Params, validation.Length(0, 16)),
	)
}

// CodewordRequest submits the archive codeword
type CodewordRequest struct {
	Codeword string `json:"codeword"`
}

func (r CodewordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Codeword, validation.Required, validation.Length(1, 64)),
	)
}

// EventRequest wraps one input event
type EventRequest struct {
	workspace.Event
}

func (r EventRequest) Validate() error {
	return ValidateEvent(r.Event)
}

// ValidateEvent checks the event type and the fields it needs
func ValidateEvent(ev workspace.Event) error {
	return validation.ValidateStruct(&ev,
		validation.Field(&ev.Type, validation.Required, validation.In(
			workspace.EventPointerDown, workspace.EventPointerMove, workspace.EventPointerUp,
			workspace.EventDoubleClick, workspace.EventKey, workspace.EventDock,
			workspace.EventIcon, workspace.EventViewport,
		)),
		validation.Field(&ev.Key, validation.When(ev.Type == workspace.EventKey, validation.Required)),
		validation.Field(&ev.App, validation.When(ev.Type == workspace.EventDock, validation.Required)),
		validation.Field(&ev.Icon, validation.When(ev.Type == workspace.EventIcon, validation.Required)),
		validation.Field(&ev.Width, validation.When(ev.Type == workspace.EventViewport, validation.Required, validation.Min(1))),
		validation.Field(&ev.Height, validation.When(ev.Type == workspace.EventViewport, validation.Required, validation.Min(1))),
	)
}
