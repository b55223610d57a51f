package apps

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/registry"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/window"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

// Album is a named list of photo URLs
type Album struct {
	Name   string
	Photos []string
}

// Albums is the photo library in display order
var Albums = []Album{
	{Name: "Redaktion", Photos: series("redaktion", "redaktion", ".png", 1, 2, 3, 4, 5, 6, 7)},
	{Name: "Arbeitsplatz", Photos: series("arbeitsplatz", "arbeitsplatz", ".png", 1, 2, 3, 4, 5, 6, 7)},
	{Name: "Privat", Photos: append(
		series("privat", "privat", ".png", 1, 2, 3, 4, 5, 6),
		series("privat", "privat", ".jpg", 7, 8, 9)...,
	)},
	{Name: "Screenshots", Photos: series("screenshots", "screenshot", ".png", 1, 2, 3, 4, 6, 7, 8, 9)},
}

func series(dir, prefix, ext string, nums ...int) []string {
	out := make([]string, 0, len(nums))
	for _, n := range nums {
		out = append(out, "/media/photos/"+dir+"/"+prefix+strconv.Itoa(n)+ext)
	}
	return out
}

// ResolvePhoto maps an "album/filename" locator to an album and index. The
// album matches case-insensitively; the filename is a case-insensitive
// substring of the photo URL.
func ResolvePhoto(locator string) (album, index int, ok bool) {
	parts := strings.Split(locator, "/")
	if len(parts) < 2 {
		return 0, 0, false
	}
	name := strings.ToLower(strings.Join(parts[1:], "/"))
	if name == "" {
		return 0, 0, false
	}

	for ai, a := range Albums {
		if !strings.EqualFold(a.Name, parts[0]) {
			continue
		}
		for pi, url := range a.Photos {
			if strings.Contains(strings.ToLower(url), name) {
				return ai, pi, true
			}
		}
		return 0, 0, false
	}
	return 0, 0, false
}

type photos struct {
	host     registry.Host
	album    int
	selected int
	backLink string
}

func newPhotos(host registry.Host, _ types.WindowRecord) registry.Application {
	return &photos{host: host, selected: -1}
}

// Refresh consumes the photo deep link. When it resolves, the file link
// left by the sender is kept as a way back.
func (p *photos) Refresh() {
	pz := p.host.Puzzle()
	link, ok := pz.Photo.Take()
	if !ok {
		return
	}
	album, index, ok := ResolvePhoto(link)
	if !ok {
		return
	}
	p.album, p.selected = album, index
	p.backLink, _ = pz.File.Peek()
}

func (p *photos) Handle(action string, params map[string]string) error {
	switch action {
	case "album":
		name, err := param(params, "name")
		if err != nil {
			return err
		}
		for i, a := range Albums {
			if strings.EqualFold(a.Name, name) {
				p.album, p.selected = i, -1
				return nil
			}
		}
		return fmt.Errorf("%w: no album %q", registry.ErrInvalidParams, name)

	case "select":
		raw, err := param(params, "index")
		if err != nil {
			return err
		}
		i, err := strconv.Atoi(raw)
		if err != nil || i < 0 || i >= len(Albums[p.album].Photos) {
			return fmt.Errorf("%w: index %q out of range", registry.ErrInvalidParams, raw)
		}
		p.selected = i
		return nil

	case "next":
		if p.selected >= 0 && p.selected < len(Albums[p.album].Photos)-1 {
			p.selected++
		}
		return nil

	case "prev":
		if p.selected > 0 {
			p.selected--
		}
		return nil

	case "close":
		p.selected = -1
		return nil

	case "jump_to_file":
		if p.backLink == "" {
			return fmt.Errorf("%w: no file to return to", registry.ErrInvalidParams)
		}
		p.host.Puzzle().File.Put(p.backLink)
		p.backLink = ""
		p.host.Launch("dateien", window.Options{})
		return nil
	}
	return unknownAction("photos", action)
}

func (p *photos) Render() types.View {
	names := make([]string, 0, len(Albums))
	for _, a := range Albums {
		names = append(names, a.Name)
	}
	album := Albums[p.album]

	view := types.View{
		"kind":   "photos",
		"albums": names,
		"album":  album.Name,
		"photos": append([]string{}, album.Photos...),
	}
	if p.selected >= 0 {
		view["selected"] = types.View{"index": p.selected, "url": album.Photos[p.selected]}
	}
	if p.backLink != "" {
		view["back_link"] = p.backLink
	}
	return view
}
