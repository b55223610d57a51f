package shell

import (
	"errors"
	"strings"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/window"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

const (
	// ArchiveIcon is the icon revealed by the vault
	ArchiveIcon = "ARCHIV"
	// Codeword opens the archive
	Codeword = "ZEITSPRUNG"
	// WrongCodewordMessage is shown under the codeword field
	WrongCodewordMessage = "Falsches Codewort."

	filesApp = "dateien"
)

var (
	ErrUnknownIcon    = errors.New("unknown desktop icon")
	ErrWrongCodeword  = errors.New("wrong codeword")
	ErrArchiveOffline = errors.New("archive overlay is not open")
)

// IconKind distinguishes desktop icons
type IconKind string

const (
	IconFolder  IconKind = "folder"
	IconFile    IconKind = "file"
	IconArchive IconKind = "archive"
)

// Icon is a static desktop icon
type Icon struct {
	Name     string         `json:"name"`
	Kind     IconKind       `json:"kind"`
	Position types.Position `json:"position"`
	Locked   bool           `json:"locked,omitempty"`
}

var desktopFolders = []Icon{
	{Name: "REDAKTION", Position: types.Position{X: 30, Y: 70}},
	{Name: "QUELLEN", Position: types.Position{X: 130, Y: 70}},
	{Name: "BILDER", Position: types.Position{X: 230, Y: 70}},
	{Name: "AUDIO", Position: types.Position{X: 330, Y: 70}},
	{Name: "DOKUMENTE", Position: types.Position{X: 430, Y: 70}},
	{Name: "ALT", Position: types.Position{X: 530, Y: 70}},
	{Name: "TRAVELS", Position: types.Position{X: 30, Y: 170}},
	{Name: "FRIENDS", Position: types.Position{X: 130, Y: 170}},
	{Name: "FINANZEN", Position: types.Position{X: 230, Y: 170}},
	{Name: "IDEEN", Position: types.Position{X: 330, Y: 170}},
	{Name: "RANDOM", Position: types.Position{X: 430, Y: 170}},
	{Name: "BACKUP_MISC", Position: types.Position{X: 530, Y: 170}},
}

var desktopFiles = []string{"TODO.txt", "NOTIZ.txt", "ENTWURF.txt", "idee_3am.md", "erinnerung.txt"}

// Icons lists the desktop icons; ARCHIV appears once the vault is unlocked
func (s *Shell) Icons() []Icon {
	icons := make([]Icon, 0, len(desktopFolders)+len(desktopFiles)+1)
	for _, f := range desktopFolders {
		f.Kind = IconFolder
		icons = append(icons, f)
	}
	for i, name := range desktopFiles {
		icons = append(icons, Icon{
			Name:     name,
			Kind:     IconFile,
			Position: types.Position{X: 30 + (i%6)*100, Y: 270 + (i/6)*100},
		})
	}

	st := s.puzzle.Snapshot()
	if st.VaultUnlocked {
		icons = append(icons, Icon{
			Name:     ArchiveIcon,
			Kind:     IconArchive,
			Position: types.Position{X: 530, Y: 270},
			Locked:   !st.ArchiveUnlocked,
		})
	}
	return icons
}

// OpenIcon handles a double-click on a desktop icon
func (s *Shell) OpenIcon(name string) error {
	if name == ArchiveIcon {
		return s.openArchive()
	}
	for _, f := range desktopFolders {
		if f.Name == name {
			s.windows.Create(filesApp, window.Options{InitialPath: []string{name}})
			return nil
		}
	}
	for _, f := range desktopFiles {
		if f == name {
			s.puzzle.File.Put(name)
			s.windows.Create(filesApp, window.Options{})
			return nil
		}
	}
	return ErrUnknownIcon
}

func (s *Shell) openArchive() error {
	if !s.puzzle.VaultUnlocked() {
		return ErrUnknownIcon
	}
	if !s.puzzle.ArchiveUnlocked() {
		s.mu.Lock()
		s.archiveOverlay = true
		s.archiveError = ""
		s.mu.Unlock()
		return nil
	}
	s.windows.Create(filesApp, window.Options{InitialPath: []string{ArchiveIcon}})
	return nil
}

// ArchiveOverlay is the state of the codeword prompt
type ArchiveOverlay struct {
	Open  bool   `json:"open"`
	Error string `json:"error,omitempty"`
}

// Archive returns the codeword prompt state
func (s *Shell) Archive() ArchiveOverlay {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ArchiveOverlay{Open: s.archiveOverlay, Error: s.archiveError}
}

// SubmitCodeword checks the archive codeword. A match unlocks the archive
// and closes the prompt; a miss keeps it open with an error.
func (s *Shell) SubmitCodeword(word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.archiveOverlay {
		return ErrArchiveOffline
	}
	if strings.ToUpper(strings.TrimSpace(word)) != Codeword {
		s.archiveError = WrongCodewordMessage
		return ErrWrongCodeword
	}
	s.puzzle.UnlockArchive()
	s.archiveOverlay = false
	s.archiveError = ""
	return nil
}

// CloseArchiveOverlay dismisses the codeword prompt
func (s *Shell) CloseArchiveOverlay() {
	s.mu.Lock()
	s.archiveOverlay = false
	s.archiveError = ""
	s.mu.Unlock()
}
