// Package sections binds the list-based parts of the portfolio document to
// selectable panels.
package sections

import (
	"github.com/Zachkp/folio/internal/card"
	"github.com/Zachkp/folio/internal/logging"
	"github.com/Zachkp/folio/internal/panel"
	"github.com/Zachkp/folio/internal/portfolio"
	"github.com/Zachkp/folio/internal/view"
)

// Order is the display order of the panels on the page.
var Order = []string{
	portfolio.SectionExperiences,
	portfolio.SectionProjects,
	portfolio.SectionEducations,
	portfolio.SectionCertificates,
	portfolio.SectionSkills,
}

var titles = map[string]string{
	portfolio.SectionExperiences:  "Experience",
	portfolio.SectionProjects:     "Projects",
	portfolio.SectionEducations:   "Education",
	portfolio.SectionCertificates: "Certificates",
	portfolio.SectionSkills:       "Skills",
}

// Known reports whether name is a list section.
func Known(name string) bool {
	_, ok := titles[name]
	return ok
}

// Selection is the panel state sent back by the client.
type Selection struct {
	// Index is the entry that was activated.
	Index int
	// Selected is the selection the client was showing.
	Selected int
	// Identity is the collection fingerprint the client was showing.
	Identity string
	// Key is the keyboard key, empty for pointer activation.
	Key string
}

func (s Selection) event() panel.Event {
	if s.Key == "" {
		return panel.Click()
	}
	return panel.Key(s.Key)
}

// Builder renders panels for one snapshot.
type Builder struct {
	Renderer *view.Renderer
	Images   card.ImageResolver
	Log      *logging.Logger
}

// All returns every present section in display order. A nil snapshot yields
// loading panels.
func (b *Builder) All(snap *portfolio.Snapshot) []panel.View {
	views := make([]panel.View, 0, len(Order))
	for _, name := range Order {
		if v, ok := b.Panel(name, snap, nil); ok {
			views = append(views, v)
		}
	}
	return views
}

// Panel renders the named section. It reports false when the section is
// unknown or absent from a loaded document.
func (b *Builder) Panel(name string, snap *portfolio.Snapshot, sel *Selection) (panel.View, bool) {
	if !Known(name) {
		return panel.View{}, false
	}
	cfg := panel.Config{ID: name, Title: titles[name], Identity: snap.Version(name)}

	var data *portfolio.Data
	if snap != nil {
		data = snap.Data
	}

	switch name {
	case portfolio.SectionExperiences:
		return build(b, cfg, panel.Renderer[portfolio.Experience]{
			Label:  func(e portfolio.Experience) string { return e.Company },
			Detail: cardDetail(b, experienceRecord),
		}, field(data, func(d *portfolio.Data) portfolio.Optional[[]portfolio.Experience] { return d.Experiences }), sel)
	case portfolio.SectionProjects:
		return build(b, cfg, panel.Renderer[portfolio.Project]{
			Label:  func(p portfolio.Project) string { return p.Title },
			Detail: cardDetail(b, projectRecord),
		}, field(data, func(d *portfolio.Data) portfolio.Optional[[]portfolio.Project] { return d.Projects }), sel)
	case portfolio.SectionEducations:
		return build(b, cfg, panel.Renderer[portfolio.Education]{
			Label:  func(e portfolio.Education) string { return e.Institution },
			Detail: cardDetail(b, educationRecord),
		}, field(data, func(d *portfolio.Data) portfolio.Optional[[]portfolio.Education] { return d.Educations }), sel)
	case portfolio.SectionCertificates:
		return build(b, cfg, panel.Renderer[portfolio.Certificate]{
			Label:  func(c portfolio.Certificate) string { return c.Title },
			Detail: cardDetail(b, certificateRecord),
		}, field(data, func(d *portfolio.Data) portfolio.Optional[[]portfolio.Certificate] { return d.Certificates }), sel)
	default:
		return build(b, cfg, panel.Renderer[portfolio.SkillCategory]{
			Label:  func(s portfolio.SkillCategory) string { return s.Category },
			Detail: b.skillDetail,
		}, field(data, func(d *portfolio.Data) portfolio.Optional[[]portfolio.SkillCategory] { return d.Skills }), sel)
	}
}

// loadState distinguishes "still loading" from a loaded document.
type loadState[T any] struct {
	loaded bool
	list   portfolio.Optional[[]T]
}

func field[T any](d *portfolio.Data, get func(*portfolio.Data) portfolio.Optional[[]T]) loadState[T] {
	if d == nil {
		return loadState[T]{}
	}
	return loadState[T]{loaded: true, list: get(d)}
}

func build[T any](b *Builder, cfg panel.Config, r panel.Renderer[T], src loadState[T], sel *Selection) (panel.View, bool) {
	if !src.loaded {
		return panel.NewLoading(cfg, r).View(), true
	}
	items, ok := src.list.Get()
	if !ok {
		return panel.View{}, false
	}

	p := panel.New(cfg, r, items)
	if sel != nil && p.Restore(sel.Selected, sel.Identity) {
		p.Activate(sel.Index, sel.event())
	}

	v := p.View()
	if v.DetailErr != nil {
		b.Log.Error(v.DetailErr, "failed to render panel detail", "section", cfg.ID, "index", v.Selected)
	}
	return v, true
}
