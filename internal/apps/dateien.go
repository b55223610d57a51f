package apps

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/registry"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/window"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

var photoKeyPattern = regexp.MustCompile(`(?i)PHOTO_KEY:\s*(.+)`)

var errNoPhotoKey = errors.New("selected file has no photo key")

// PhotoKey extracts the PHOTO_KEY locator from file content
func PhotoKey(content string) (string, bool) {
	m := photoKeyPattern.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	key := strings.TrimSpace(m[1])
	return key, key != ""
}

type dateien struct {
	host     registry.Host
	tree     *Tree
	dir      []string
	selected *Node
	results  []string
	pattern  string
}

func newDateien(host registry.Host, win types.WindowRecord) registry.Application {
	d := &dateien{host: host, tree: FileTree()}
	if len(win.InitialPath) > 0 {
		if _, ok := d.tree.Items(win.InitialPath, d.archiveUnlocked()); ok {
			d.dir = append([]string(nil), win.InitialPath...)
		}
	}
	return d
}

func (d *dateien) archiveUnlocked() bool {
	return d.host.Puzzle().ArchiveUnlocked()
}

func (d *dateien) items() []Node {
	items, ok := d.tree.Items(d.dir, d.archiveUnlocked())
	if !ok {
		// the folder vanished, e.g. ARCHIV after a reset
		d.dir = nil
		d.selected = nil
		items = d.tree.Root(d.archiveUnlocked())
	}
	return items
}

// Refresh consumes the file deep link. A bare name is looked up at the top
// level, a path navigates to its folder and selects the file. The link is
// cleared whether or not it resolves.
func (d *dateien) Refresh() {
	link, ok := d.host.Puzzle().File.Take()
	if !ok {
		return
	}
	d.reveal(link)
}

func (d *dateien) reveal(link string) bool {
	parts := splitPath(link)
	if len(parts) == 0 {
		return false
	}
	dir, name := parts[:len(parts)-1], parts[len(parts)-1]

	items, ok := d.tree.Items(dir, d.archiveUnlocked())
	if !ok {
		return false
	}
	d.dir = append([]string(nil), dir...)
	d.selected = nil

	n, ok := find(items, name)
	if !ok || n.IsDir() {
		return false
	}
	d.selected = &n
	return true
}

func (d *dateien) Handle(action string, params map[string]string) error {
	switch action {
	case "open":
		name, err := param(params, "name")
		if err != nil {
			return err
		}
		n, ok := find(d.items(), name)
		if !ok {
			return fmt.Errorf("%w: no item %q", registry.ErrInvalidParams, name)
		}
		if n.IsDir() {
			d.dir = append(d.dir, name)
			d.selected = nil
			return nil
		}
		d.selected = &n
		return nil

	case "up":
		if len(d.dir) > 0 {
			d.dir = d.dir[:len(d.dir)-1]
		}
		d.selected = nil
		return nil

	case "goto":
		dir := splitPath(params["path"])
		if _, ok := d.tree.Items(dir, d.archiveUnlocked()); !ok {
			return fmt.Errorf("%w: no folder %q", registry.ErrInvalidParams, params["path"])
		}
		d.dir = dir
		d.selected = nil
		return nil

	case "close_preview":
		d.selected = nil
		return nil

	case "search":
		pattern, err := param(params, "pattern")
		if err != nil {
			return err
		}
		results, err := d.tree.Glob(pattern, d.archiveUnlocked())
		if err != nil {
			return fmt.Errorf("%w: %v", registry.ErrInvalidParams, err)
		}
		d.pattern = pattern
		d.results = results
		return nil

	case "reveal":
		p, err := param(params, "path")
		if err != nil {
			return err
		}
		if !d.reveal(p) {
			return fmt.Errorf("%w: no file %q", registry.ErrInvalidParams, p)
		}
		return nil

	case "open_in_photos":
		return d.openInPhotos()
	}
	return unknownAction("dateien", action)
}

// openInPhotos hands the selected file's photo key to the photos app and
// leaves a link back to the file
func (d *dateien) openInPhotos() error {
	if d.selected == nil {
		return fmt.Errorf("%w: no file selected", registry.ErrInvalidParams)
	}
	key, ok := PhotoKey(d.selected.Content)
	if !ok {
		return fmt.Errorf("%w: %w", registry.ErrInvalidParams, errNoPhotoKey)
	}

	pz := d.host.Puzzle()
	pz.Photo.Put(key)
	pz.File.Put(path.Join(append(append([]string(nil), d.dir...), d.selected.Name)...))
	d.host.Launch("photos", window.Options{})
	return nil
}

func (d *dateien) Render() types.View {
	items := d.items()
	list := make([]types.View, 0, len(items))
	for _, n := range items {
		entry := types.View{"name": n.Name, "type": "file"}
		if n.IsDir() {
			entry["type"] = "folder"
		} else {
			entry["kind"] = FileKind(n.Name)
		}
		list = append(list, entry)
	}

	view := types.View{
		"kind":  "dateien",
		"path":  append([]string{}, d.dir...),
		"items": list,
	}
	if d.selected != nil {
		sel := types.View{
			"name":    d.selected.Name,
			"kind":    FileKind(d.selected.Name),
			"content": d.selected.Content,
			"mime":    ContentType(*d.selected),
		}
		if d.selected.URL != "" {
			sel["url"] = d.selected.URL
		}
		if key, ok := PhotoKey(d.selected.Content); ok {
			sel["photo_key"] = key
		}
		view["selected"] = sel
	}
	if d.pattern != "" {
		view["search"] = types.View{"pattern": d.pattern, "results": append([]string{}, d.results...)}
	}
	return view
}
