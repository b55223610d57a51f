package apps

import (
	"fmt"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/registry"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

// HintContact is the contact whose card carries the A clue
const HintContact = "anna"

// Contact is one address book card
type Contact struct {
	ID     string `yaml:"id" json:"id"`
	Name   string `yaml:"name" json:"name"`
	Avatar string `yaml:"avatar" json:"avatar"`
	Email  string `yaml:"email" json:"email,omitempty"`
	Phone  string `yaml:"phone" json:"phone,omitempty"`
	City   string `yaml:"city" json:"city,omitempty"`
	Notes  string `yaml:"notes" json:"notes,omitempty"`
}

type contacts struct {
	host     registry.Host
	list     []Contact
	selected string
}

func newContacts(host registry.Host, _ types.WindowRecord) registry.Application {
	var book struct {
		Contacts []Contact `yaml:"contacts"`
	}
	loadContent("contacts.yaml", &book)

	c := &contacts{host: host, list: book.Contacts}
	if len(c.list) > 0 {
		c.open(c.list[0].ID)
	}
	return c
}

func (c *contacts) open(id string) {
	c.selected = id
	if id == HintContact {
		c.host.Puzzle().MarkAFound()
	}
}

func (c *contacts) Handle(action string, params map[string]string) error {
	if action != "select" {
		return unknownAction("contacts", action)
	}
	id, err := param(params, "id")
	if err != nil {
		return err
	}
	for _, ct := range c.list {
		if ct.ID == id {
			c.open(id)
			return nil
		}
	}
	return fmt.Errorf("%w: no contact %q", registry.ErrInvalidParams, id)
}

func (c *contacts) Render() types.View {
	view := types.View{
		"kind":     "contacts",
		"contacts": append([]Contact{}, c.list...),
	}
	for _, ct := range c.list {
		if ct.ID == c.selected {
			view["selected"] = ct
		}
	}
	return view
}
