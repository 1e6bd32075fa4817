// Package panel implements the selectable list and detail pattern shared by
// the list-based portfolio sections. A Panel is built per request from the
// current collection and the selection the client sent back.
package panel

import (
	"html/template"
)

// State is the lifecycle state of a Panel.
type State int

const (
	// StateLoading means the backing collection has not arrived yet.
	StateLoading State = iota
	// StateEmpty means the collection arrived and has no entries.
	StateEmpty
	// StateLoaded means there is at least one entry and a selected index.
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEmpty:
		return "empty"
	case StateLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// Renderer turns an item into its list label and its detail markup.
type Renderer[T any] struct {
	Label  func(T) string
	Detail func(T) (template.HTML, error)
}

// Config identifies a panel on the page.
type Config struct {
	// ID is the section key, used for element ids and fragment URLs.
	ID string
	// Title labels the section for assistive technology.
	Title        string
	InitialIndex int
	// Identity names the collection the selection belongs to. When it
	// changes the selection resets to the first entry.
	Identity string
}

// Panel tracks a single selected index over an ordered collection.
type Panel[T any] struct {
	cfg      Config
	render   Renderer[T]
	items    []T
	loaded   bool
	selected int
	identity string
}

// New returns a panel over a loaded collection.
func New[T any](cfg Config, r Renderer[T], items []T) *Panel[T] {
	return &Panel[T]{
		cfg:      cfg,
		render:   r,
		items:    items,
		loaded:   true,
		selected: cfg.InitialIndex,
		identity: cfg.Identity,
	}
}

// NewLoading returns a panel whose collection is still being fetched.
func NewLoading[T any](cfg Config, r Renderer[T]) *Panel[T] {
	return &Panel[T]{
		cfg:      cfg,
		render:   r,
		selected: cfg.InitialIndex,
	}
}

// State reports the current lifecycle state.
func (p *Panel[T]) State() State {
	switch {
	case !p.loaded:
		return StateLoading
	case len(p.items) == 0:
		return StateEmpty
	default:
		return StateLoaded
	}
}

// Selected returns the selected index. It may be out of range after the
// collection shrank; View renders that as "no details".
func (p *Panel[T]) Selected() int {
	return p.selected
}

// Select makes index the active entry when it is in range. Out of range
// indices leave the selection untouched. It reports whether the selection
// was applied.
func (p *Panel[T]) Select(index int) bool {
	if index < 0 || index >= len(p.items) {
		return false
	}
	p.selected = index
	return true
}

// SetItems replaces the collection. A different identity resets the selection
// to 0; the same identity keeps the current index even if it no longer points
// at an entry.
func (p *Panel[T]) SetItems(items []T, identity string) {
	if identity != p.identity {
		p.selected = 0
	}
	p.items = items
	p.identity = identity
	p.loaded = true
}

// Restore re-applies a selection held by the client. A stale identity resets
// the selection to 0 and reports false. A matching or empty identity keeps
// index as given.
func (p *Panel[T]) Restore(index int, identity string) bool {
	if identity != "" && identity != p.identity {
		p.selected = 0
		return false
	}
	p.selected = index
	return true
}

// View renders the panel into its template model. The detail renderer is only
// called for an in-range selection.
func (p *Panel[T]) View() View {
	v := View{
		ID:       p.cfg.ID,
		Title:    p.cfg.Title,
		State:    p.State(),
		Selected: p.selected,
		Identity: p.identity,
	}
	if v.State != StateLoaded {
		return v
	}

	v.Entries = make([]Entry, 0, len(p.items))
	for i, item := range p.items {
		v.Entries = append(v.Entries, Entry{
			Index:    i,
			Label:    p.render.Label(item),
			Selected: i == p.selected,
		})
	}

	if p.selected < 0 || p.selected >= len(p.items) {
		return v
	}

	detail, err := p.render.Detail(p.items[p.selected])
	if err != nil {
		v.DetailErr = err
		return v
	}
	v.Detail = detail
	v.HasDetail = true
	return v
}

// View is the template model for one panel.
type View struct {
	ID        string
	Title     string
	State     State
	Selected  int
	Identity  string
	Entries   []Entry
	Detail    template.HTML
	HasDetail bool
	DetailErr error
}

// Busy reports whether the section should be marked aria-busy.
func (v View) Busy() bool {
	return v.State == StateLoading
}

// Empty reports whether the single "no data" placeholder replaces the list
// and detail regions.
func (v View) Empty() bool {
	return v.State == StateEmpty
}

// Entry is one list item.
type Entry struct {
	Index    int
	Label    string
	Selected bool
}
