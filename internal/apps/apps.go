package apps

import (
	"embed"
	"fmt"
	"html"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/microcosm-cc/bluemonday"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/registry"
	"github.com/GriffinCanCode/DeskShell/backend/internal/providers/songs"
)

//go:embed content/*.yaml
var content embed.FS

// textPolicy strips markup from anything a visitor types
var textPolicy = bluemonday.StrictPolicy()

// Factories binds every application id to its constructor
func Factories(catalog *songs.Catalog) map[string]registry.Factory {
	return map[string]registry.Factory{
		"notes":      newNotes,
		"calendar":   newCalendar,
		"calculator": newCalculator,
		"contacts":   newContacts,
		"terminal":   newTerminal,
		"dateien":    newDateien,
		"photos":     newPhotos,
		"messages":   newMessages,
		"spotify":    spotifyFactory(catalog),
	}
}

func loadContent(name string, out any) {
	data, err := content.ReadFile("content/" + name)
	if err != nil {
		panic(fmt.Sprintf("apps: %s: %v", name, err))
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		panic(fmt.Sprintf("apps: %s: %v", name, err))
	}
}

// clean removes markup and surrounding space from user input
func clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

func param(params map[string]string, key string) (string, error) {
	v, ok := params[key]
	if !ok || strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("%w: %s is required", registry.ErrInvalidParams, key)
	}
	return v, nil
}

func unknownAction(app, action string) error {
	return fmt.Errorf("%w: %s does not support %q", registry.ErrUnknownAction, app, action)
}
