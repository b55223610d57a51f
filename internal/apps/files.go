package apps

import (
	"path"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gabriel-vasile/mimetype"
)

// ArchiveFolder is the root folder revealed by the archive codeword
const ArchiveFolder = "ARCHIV"

// Node is a file or folder of the virtual tree. A node with children, or
// without content and url, is a folder.
type Node struct {
	Name     string `yaml:"name"`
	Content  string `yaml:"content"`
	URL      string `yaml:"url"`
	Children []Node `yaml:"children"`
}

// IsDir reports whether the node is a folder
func (n Node) IsDir() bool {
	return len(n.Children) > 0 || (n.Content == "" && n.URL == "")
}

// Tree is the read-only file system shown by Dateien
type Tree struct {
	Folders []Node `yaml:"folders"`
	Archive []Node `yaml:"archive"`
	Files   []Node `yaml:"files"`
}

var loadTree = sync.OnceValue(func() *Tree {
	var t Tree
	loadContent("files.yaml", &t)
	return &t
})

// FileTree returns the embedded tree
func FileTree() *Tree {
	return loadTree()
}

// Root lists the top level: folders, ARCHIV when unlocked, then loose files
func (t *Tree) Root(archiveUnlocked bool) []Node {
	out := make([]Node, 0, len(t.Folders)+len(t.Files)+1)
	out = append(out, t.Folders...)
	if archiveUnlocked {
		out = append(out, Node{Name: ArchiveFolder, Children: t.Archive})
	}
	return append(out, t.Files...)
}

// Items lists the folder at dir. The second result is false when any
// segment is missing or hidden.
func (t *Tree) Items(dir []string, archiveUnlocked bool) ([]Node, bool) {
	current := t.Root(archiveUnlocked)
	for _, name := range dir {
		next, ok := find(current, name)
		if !ok || !next.IsDir() {
			return nil, false
		}
		current = next.Children
	}
	return current, true
}

// Lookup resolves a slash-separated path to a node
func (t *Tree) Lookup(p string, archiveUnlocked bool) (Node, bool) {
	parts := splitPath(p)
	if len(parts) == 0 {
		return Node{}, false
	}
	items, ok := t.Items(parts[:len(parts)-1], archiveUnlocked)
	if !ok {
		return Node{}, false
	}
	return find(items, parts[len(parts)-1])
}

// Glob returns the paths of all files matching a doublestar pattern
func (t *Tree) Glob(pattern string, archiveUnlocked bool) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}

	var matches []string
	var walk func(prefix string, nodes []Node)
	walk = func(prefix string, nodes []Node) {
		for _, n := range nodes {
			p := path.Join(prefix, n.Name)
			if n.IsDir() {
				walk(p, n.Children)
				continue
			}
			if ok, _ := doublestar.Match(pattern, p); ok {
				matches = append(matches, p)
			}
		}
	}
	walk("", t.Root(archiveUnlocked))
	return matches, nil
}

func find(nodes []Node, name string) (Node, bool) {
	for _, n := range nodes {
		if n.Name == name {
			return n, true
		}
	}
	return Node{}, false
}

func splitPath(p string) []string {
	var out []string
	for _, part := range strings.Split(p, "/") {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// FileKind groups a file by extension for its icon
func FileKind(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".mp4", ".mov", ".avi":
		return "video"
	case ".jpg", ".jpeg", ".png", ".gif":
		return "image"
	case ".mp3", ".m4a", ".wav":
		return "audio"
	case ".zip", ".tar", ".gz":
		return "archive"
	case ".pdf":
		return "pdf"
	case ".docx", ".doc":
		return "document"
	case ".md":
		return "markdown"
	default:
		return "text"
	}
}

// ContentType sniffs the MIME type of inline file content
func ContentType(n Node) string {
	if n.Content == "" {
		return ""
	}
	return mimetype.Detect([]byte(n.Content)).String()
}
