package apps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/registry"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

func TestResolvePhoto(t *testing.T) {
	tests := []struct {
		name    string
		locator string
		album   int
		index   int
		ok      bool
	}{
		{"exact", "arbeitsplatz/arbeitsplatz7.png", 1, 6, true},
		{"album case", "PRIVAT/privat8", 2, 7, true},
		{"substring", "screenshots/screenshot6", 3, 4, true},
		{"no filename", "redaktion", 0, 0, false},
		{"empty filename", "redaktion/", 0, 0, false},
		{"unknown album", "urlaub/privat1", 0, 0, false},
		{"unknown photo", "privat/privat42", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			album, index, ok := ResolvePhoto(tt.locator)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.album, album)
				assert.Equal(t, tt.index, index)
			}
		})
	}
}

func TestPhotosBrowse(t *testing.T) {
	h := newHost()
	app := mount(t, h, "photos", types.WindowRecord{})

	assert.Equal(t, "Redaktion", app.Render()["album"])
	assert.Nil(t, app.Render()["selected"])

	require.NoError(t, handle(t, app, "album", map[string]string{"name": "privat"}))
	require.NoError(t, handle(t, app, "select", map[string]string{"index": "8"}))
	require.NoError(t, handle(t, app, "next", nil))
	sel := app.Render()["selected"].(types.View)
	assert.Equal(t, 8, sel["index"])

	require.NoError(t, handle(t, app, "prev", nil))
	sel = app.Render()["selected"].(types.View)
	assert.Equal(t, 7, sel["index"])
	assert.Equal(t, "/media/photos/privat/privat8.jpg", sel["url"])

	require.NoError(t, handle(t, app, "close", nil))
	assert.Nil(t, app.Render()["selected"])

	assert.ErrorIs(t, handle(t, app, "select", map[string]string{"index": "99"}), registry.ErrInvalidParams)
	assert.ErrorIs(t, handle(t, app, "album", map[string]string{"name": "urlaub"}), registry.ErrInvalidParams)
}

func TestPhotosDeepLinkAndBackLink(t *testing.T) {
	h := newHost()
	app := mount(t, h, "photos", types.WindowRecord{})

	h.puzzle.Photo.Put("arbeitsplatz/arbeitsplatz7.png")
	h.puzzle.File.Put(gespraech)
	app.(registry.Refresher).Refresh()

	view := app.Render()
	assert.Equal(t, "Arbeitsplatz", view["album"])
	assert.Equal(t, 6, view["selected"].(types.View)["index"])
	assert.Equal(t, gespraech, view["back_link"])

	_, ok := h.puzzle.Photo.Peek()
	assert.False(t, ok)

	h.puzzle.File.Clear()
	require.NoError(t, handle(t, app, "jump_to_file", nil))
	file, ok := h.puzzle.File.Peek()
	require.True(t, ok)
	assert.Equal(t, gespraech, file)
	assert.Equal(t, []string{"dateien"}, h.launched)

	assert.ErrorIs(t, handle(t, app, "jump_to_file", nil), registry.ErrInvalidParams)
}

func TestPhotosDropsUnresolvedLink(t *testing.T) {
	h := newHost()
	app := mount(t, h, "photos", types.WindowRecord{})

	h.puzzle.Photo.Put("nowhere/nothing.png")
	app.(registry.Refresher).Refresh()

	_, ok := h.puzzle.Photo.Peek()
	assert.False(t, ok)
	assert.Equal(t, "Redaktion", app.Render()["album"])
	assert.Nil(t, app.Render()["back_link"])
}

func TestFileToPhotoRoundTrip(t *testing.T) {
	h := newHost()
	files := mount(t, h, "dateien", types.WindowRecord{})
	pics := mount(t, h, "photos", types.WindowRecord{})

	require.NoError(t, handle(t, files, "reveal", map[string]string{"path": gespraech}))
	require.NoError(t, handle(t, files, "open_in_photos", nil))

	// front-to-back: photos sits on top after launching
	pics.(registry.Refresher).Refresh()
	files.(registry.Refresher).Refresh()
	assert.Equal(t, gespraech, pics.Render()["back_link"])

	require.NoError(t, handle(t, files, "up", nil))
	require.NoError(t, handle(t, pics, "jump_to_file", nil))
	pics.(registry.Refresher).Refresh()
	files.(registry.Refresher).Refresh()
	assert.Equal(t, "Gespraech.txt", selectedName(t, files))
}
