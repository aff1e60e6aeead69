package tui

import (
	"context"
	"fmt"
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"geosketch/internal/annotate"
	"geosketch/internal/geom"
	"geosketch/internal/overlay"
)

// Options sets the initial viewport.
type Options struct {
	Center geom.LatLng
	// Span is the longitude range across the map, in degrees.
	Span float64
}

type Model struct {
	ctx   context.Context
	svc   *annotate.Service
	group *overlay.Group

	width  int
	height int

	showSidebar bool
	helpVisible bool

	// viewport
	center geom.LatLng
	span   float64

	// cursor cell inside the map
	curX int
	curY int

	status    string
	statusErr bool

	// drawing
	tool    geom.Kind
	pending []geom.LatLng

	// marker naming prompt
	naming *overlay.Overlay
	ti     textinput.Model

	// vertex editing
	editing *overlay.Overlay
	editIdx int

	// File explorer (import)
	cwd   string
	l     list.Model
	items []list.Item

	// layers table
	showLayers bool
	tbl        table.Model
	tblRows    []*overlay.Overlay
}

// New builds the drawing surface and materializes the stored document into it.
func New(ctx context.Context, svc *annotate.Service, opts Options) Model {
	if opts.Span <= 0 {
		opts.Span = 20
	}
	m := Model{
		ctx:         ctx,
		svc:         svc,
		group:       overlay.NewGroup(),
		helpVisible: true,
		center:      opts.Center,
		span:        opts.Span,
		editIdx:     -1,
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Import"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// marker name prompt
	m.ti = textinput.New()
	m.ti.Placeholder = "marker name"
	m.ti.CharLimit = 80
	m.ti.Width = 32
	// layers table setup
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)

	doc := svc.LoadInto(ctx, m.group)
	if m.group.Len() > 0 {
		m.fitToGroup()
	}
	m.status = fmt.Sprintf("loaded %d shapes  markers=%d poly=%d lines=%d rect=%d circles=%d",
		doc.Len(), len(doc.Markers), len(doc.Polygons), len(doc.Polylines), len(doc.Rectangles), len(doc.Circles))
	m.refreshDir()
	return m
}

// NewWithPath imports a file's shapes at launch.
func NewWithPath(ctx context.Context, svc *annotate.Service, opts Options, path string) Model {
	m := New(ctx, svc, opts)
	m.loadPath(path)
	return m
}

// Group exposes the live overlays.
func (m Model) Group() *overlay.Group { return m.group }

func (m Model) Init() tea.Cmd { return nil }
