package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"geosketch/internal/geom"
	"geosketch/internal/logging"
	"geosketch/internal/overlay"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		m.statusErr = true
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() || !geom.Importable(e.Name()) {
			continue
		}
		name := e.Name()
		items = append(items, fileItem{
			title: name,
			desc:  strings.ToLower(filepath.Ext(name)),
			path:  filepath.Join(m.cwd, name),
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
}

// loadPath imports a file's shapes as if they had been drawn, one record at a
// time, so each lands in the stored document.
func (m *Model) loadPath(p string) {
	recs, err := geom.LoadFile(p)
	if err != nil {
		m.fail("import "+filepath.Base(p), err)
		return
	}
	added, failed := 0, 0
	for _, rec := range recs {
		o := overlay.FromRecord(rec)
		if o == nil {
			failed++
			continue
		}
		m.group.Add(o)
		if _, err := m.svc.AddShape(m.ctx, o); err != nil {
			m.group.Remove(o)
			failed++
			logging.GetFromContext(m.ctx).Warn("import skipped shape", "path", p, "kind", rec.Kind().String(), "err", err.Error())
			continue
		}
		added++
	}
	m.fitToGroup()
	m.setStatus("imported %s  added=%d", filepath.Base(p), added)
	if failed > 0 {
		m.status += fmt.Sprintf("  failed=%d", failed)
		m.statusErr = true
	}
}
