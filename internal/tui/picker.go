package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nishq/lanbeam/internal/core"
)

// filePicker is the multi-select modal for choosing files to send. It lists
// one directory (no tree walking), filters by fuzzy match, and hands back
// the selection wholesale on submit.
type filePicker struct {
	dir      string
	items    []core.FileRef
	filtered []core.FileRef
	query    string
	cursor   int
	selected map[string]bool
}

type pickerAction int

const (
	pickerNone pickerAction = iota
	pickerToggled
	pickerSubmitted
	pickerCancelled
)

// newFilePicker lists the regular files in dir, preselecting current.
func newFilePicker(dir string, current []core.FileRef) (*filePicker, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	p := &filePicker{dir: dir, selected: make(map[string]bool)}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		p.items = append(p.items, core.FileRef{Name: e.Name(), Path: filepath.Join(dir, e.Name())})
	}
	sort.Slice(p.items, func(i, j int) bool { return p.items[i].Name < p.items[j].Name })
	for _, f := range current {
		p.selected[f.Path] = true
	}
	p.rebuildFiltered()
	return p, nil
}

// Selection returns the chosen files in listing order.
func (p *filePicker) Selection() []core.FileRef {
	var out []core.FileRef
	for _, it := range p.items {
		if p.selected[it.Path] {
			out = append(out, it)
		}
	}
	return out
}

func (p *filePicker) HandleKey(keyName string) pickerAction {
	switch keyName {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.filtered)-1 {
			p.cursor++
		}
	case " ", "space":
		if p.cursor < len(p.filtered) {
			path := p.filtered[p.cursor].Path
			if p.selected[path] {
				delete(p.selected, path)
			} else {
				p.selected[path] = true
			}
			return pickerToggled
		}
	case "enter":
		return pickerSubmitted
	case "esc":
		return pickerCancelled
	case "backspace":
		if len(p.query) > 0 {
			p.query = p.query[:len(p.query)-1]
			p.rebuildFiltered()
		}
	default:
		if len(keyName) == 1 && keyName[0] >= 32 && keyName[0] < 127 {
			p.query += keyName
			p.rebuildFiltered()
		}
	}
	return pickerNone
}

func (p *filePicker) rebuildFiltered() {
	q := strings.ToLower(strings.TrimSpace(p.query))
	p.filtered = p.filtered[:0]
	for _, it := range p.items {
		if q == "" || fuzzyMatch(strings.ToLower(it.Name), q) {
			p.filtered = append(p.filtered, it)
		}
	}
	if p.cursor >= len(p.filtered) {
		p.cursor = len(p.filtered) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// fuzzyMatch reports whether every query byte appears in label in order.
func fuzzyMatch(label, query string) bool {
	from := 0
	for i := 0; i < len(query); i++ {
		j := strings.IndexByte(label[from:], query[i])
		if j < 0 {
			return false
		}
		from += j + 1
	}
	return true
}
