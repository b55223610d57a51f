package apps

import (
	"fmt"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/registry"
	"github.com/GriffinCanCode/DeskShell/backend/internal/providers/songs"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

// HintSong is the track that carries the U clue
const HintSong = "universe"

type spotify struct {
	host     registry.Host
	catalog  *songs.Catalog
	selected *songs.Song
	playing  bool
}

func spotifyFactory(catalog *songs.Catalog) registry.Factory {
	return func(host registry.Host, _ types.WindowRecord) registry.Application {
		return &spotify{host: host, catalog: catalog}
	}
}

func (s *spotify) library() []songs.Song {
	if s.catalog == nil {
		return songs.Builtin()
	}
	return s.catalog.Songs()
}

func (s *spotify) lookup(id string) (songs.Song, bool) {
	for _, song := range s.library() {
		if song.ID == id {
			return song, true
		}
	}
	return songs.Song{}, false
}

func (s *spotify) Handle(action string, params map[string]string) error {
	switch action {
	case "select":
		id, err := param(params, "id")
		if err != nil {
			return err
		}
		song, ok := s.lookup(id)
		if !ok {
			return fmt.Errorf("%w: no song %q", registry.ErrInvalidParams, id)
		}
		s.selected = &song
		s.playing = song.AudioURL != ""
		if song.ID == HintSong {
			s.host.Puzzle().MarkUFound()
		}
		return nil

	case "play":
		if s.selected == nil || s.selected.AudioURL == "" {
			return fmt.Errorf("%w: nothing playable selected", registry.ErrInvalidParams)
		}
		s.playing = true
		return nil

	case "pause":
		s.playing = false
		return nil
	}
	return unknownAction("spotify", action)
}

func (s *spotify) Render() types.View {
	view := types.View{
		"kind":    "spotify",
		"songs":   s.library(),
		"playing": s.playing,
	}
	if s.selected != nil {
		view["selected"] = *s.selected
	}
	return view
}
