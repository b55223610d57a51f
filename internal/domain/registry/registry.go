package registry

import (
	_ "embed"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

//go:embed apps.yaml
var defaultManifests []byte

// FallbackSize is used for app ids missing from the table
var FallbackSize = types.Size{Width: 520, Height: 340}

// Manifest is the static metadata of one application
type Manifest struct {
	ID         string     `yaml:"id" json:"id"`
	Title      string     `yaml:"title" json:"title"`
	Icon       string     `yaml:"icon" json:"icon"`
	Size       sizeSpec   `yaml:"size" json:"-"`
	Resizable  *bool      `yaml:"resizable" json:"-"`
	Fullscreen bool       `yaml:"fullscreen" json:"fullscreen"`
	Dock       bool       `yaml:"dock" json:"dock"`
	Initial    types.Size `yaml:"-" json:"initial_size"`
	CanResize  bool       `yaml:"-" json:"resizable"`
}

type sizeSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type manifestFile struct {
	Apps []Manifest `yaml:"apps"`
}

// Registry maps app ids to manifests and factories
type Registry struct {
	manifests []Manifest
	byID      map[string]int
	factories map[string]Factory
}

// Load builds the registry from the embedded table
func Load(factories map[string]Factory) (*Registry, error) {
	return Parse(defaultManifests, factories)
}

// Parse builds a registry from YAML. Every manifest needs a factory and a unique id.
func Parse(data []byte, factories map[string]Factory) (*Registry, error) {
	var file manifestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse app manifests: %w", err)
	}

	r := &Registry{
		byID:      make(map[string]int, len(file.Apps)),
		factories: make(map[string]Factory, len(factories)),
	}
	for _, m := range file.Apps {
		if m.ID == "" {
			return nil, fmt.Errorf("app manifest without id")
		}
		if _, dup := r.byID[m.ID]; dup {
			return nil, fmt.Errorf("duplicate app id %q", m.ID)
		}
		f, ok := factories[m.ID]
		if !ok {
			return nil, fmt.Errorf("no factory for app %q", m.ID)
		}

		m.Initial = FallbackSize
		if m.Size.Width > 0 && m.Size.Height > 0 {
			m.Initial = types.Size{Width: m.Size.Width, Height: m.Size.Height}
		}
		m.CanResize = m.Resizable == nil || *m.Resizable
		if m.Title == "" {
			m.Title = m.ID
		}

		r.byID[m.ID] = len(r.manifests)
		r.manifests = append(r.manifests, m)
		r.factories[m.ID] = f
	}
	return r, nil
}

// Lookup returns the manifest of appID
func (r *Registry) Lookup(appID string) (Manifest, bool) {
	i, ok := r.byID[appID]
	if !ok {
		return Manifest{}, false
	}
	return r.manifests[i], true
}

// Manifests returns every manifest in table order
func (r *Registry) Manifests() []Manifest {
	return append([]Manifest(nil), r.manifests...)
}

// DockApps returns the manifests shown in the dock, in dock order
func (r *Registry) DockApps() []Manifest {
	var out []Manifest
	for _, m := range r.manifests {
		if m.Dock {
			out = append(out, m)
		}
	}
	return out
}

// Title returns the window title for appID
func (r *Registry) Title(appID string) string {
	if m, ok := r.Lookup(appID); ok {
		return m.Title
	}
	return appID
}

func (r *Registry) DefaultSize(appID string) types.Size {
	if m, ok := r.Lookup(appID); ok {
		return m.Initial
	}
	return FallbackSize
}

func (r *Registry) DefaultResizable(appID string) bool {
	if m, ok := r.Lookup(appID); ok {
		return m.CanResize
	}
	return true
}

func (r *Registry) DefaultFullscreen(appID string) bool {
	if m, ok := r.Lookup(appID); ok {
		return m.Fullscreen
	}
	return false
}

// Mount builds the application for win. Unknown app ids get an empty placeholder.
func (r *Registry) Mount(host Host, win types.WindowRecord) Application {
	if f, ok := r.factories[win.AppID]; ok {
		if app := f(host, win); app != nil {
			return app
		}
	}
	return placeholder{appID: win.AppID}
}
