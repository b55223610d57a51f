package apps

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/registry"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

// HintNote is the note whose acrostic spells the L clue
const HintNote = "lernplan"

// Note is one entry in the Notes app
type Note struct {
	ID      string `yaml:"id" json:"id"`
	Title   string `yaml:"title" json:"title"`
	Date    string `yaml:"date" json:"date"`
	Content string `yaml:"content" json:"content"`
}

type notes struct {
	host     registry.Host
	list     []Note
	selected string
	seq      int
}

func newNotes(host registry.Host, _ types.WindowRecord) registry.Application {
	var book struct {
		Notes []Note `yaml:"notes"`
	}
	loadContent("notes.yaml", &book)

	n := &notes{host: host, list: book.Notes}
	if len(n.list) > 0 {
		n.open(n.list[0].ID)
	}
	return n
}

func (n *notes) index(id string) int {
	return slices.IndexFunc(n.list, func(x Note) bool { return x.ID == id })
}

func (n *notes) open(id string) {
	n.selected = id
	if id == HintNote {
		n.host.Puzzle().MarkLFound()
	}
}

func (n *notes) Handle(action string, params map[string]string) error {
	switch action {
	case "select":
		id, err := param(params, "id")
		if err != nil {
			return err
		}
		if n.index(id) < 0 {
			return fmt.Errorf("%w: no note %q", registry.ErrInvalidParams, id)
		}
		n.open(id)
		return nil

	case "create":
		n.seq++
		note := Note{
			ID:    "note-" + strconv.Itoa(n.seq),
			Title: "Neue Notiz",
			Date:  "Heute " + n.host.Now().Format("15:04"),
		}
		// new notes sit on top
		n.list = append([]Note{note}, n.list...)
		n.selected = note.ID
		return nil

	case "update":
		id, err := param(params, "id")
		if err != nil {
			return err
		}
		i := n.index(id)
		if i < 0 {
			return fmt.Errorf("%w: no note %q", registry.ErrInvalidParams, id)
		}
		if title, ok := params["title"]; ok {
			if title = clean(title); title != "" {
				n.list[i].Title = title
			}
		}
		if content, ok := params["content"]; ok {
			n.list[i].Content = clean(content)
		}
		n.list[i].Date = "Heute " + n.host.Now().Format("15:04")
		return nil

	case "delete":
		id, err := param(params, "id")
		if err != nil {
			return err
		}
		i := n.index(id)
		if i < 0 {
			return fmt.Errorf("%w: no note %q", registry.ErrInvalidParams, id)
		}
		n.list = slices.Delete(n.list, i, i+1)
		if n.selected == id {
			n.selected = ""
			if len(n.list) > 0 {
				n.open(n.list[0].ID)
			}
		}
		return nil
	}
	return unknownAction("notes", action)
}

func (n *notes) Render() types.View {
	view := types.View{
		"kind":  "notes",
		"notes": append([]Note{}, n.list...),
	}
	if i := n.index(n.selected); i >= 0 {
		view["selected"] = n.list[i]
	}
	return view
}
