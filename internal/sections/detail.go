package sections

import (
	"html/template"

	"github.com/Zachkp/folio/internal/card"
	"github.com/Zachkp/folio/internal/portfolio"
	"github.com/Zachkp/folio/internal/view"
)

func cardDetail[T any](b *Builder, toRecord func(T) card.Record) func(T) (template.HTML, error) {
	return func(item T) (template.HTML, error) {
		return b.Renderer.Fragment("card", card.New(toRecord(item), b.Images))
	}
}

func experienceRecord(e portfolio.Experience) card.Record {
	title := e.Position
	if title == "" {
		title = e.Company
	}
	return card.Record{
		Title:       title,
		Subtitle:    e.Company,
		Meta:        e.Duration,
		Tags:        e.Technologies,
		Description: e.Description,
		Image:       e.Image,
		ImageAlt:    e.Company,
		Links:       []card.Link{{Label: view.Copy("company"), Href: e.Link}},
	}
}

func projectRecord(p portfolio.Project) card.Record {
	return card.Record{
		Title:       p.Title,
		Tags:        p.Technologies,
		Description: p.Description,
		Image:       p.Image,
		Links: []card.Link{
			{Label: view.Copy("project"), Href: p.ProjectLink},
			{Label: view.Copy("source"), Href: p.GithubLink},
		},
	}
}

func educationRecord(e portfolio.Education) card.Record {
	title := e.Degree
	if title == "" {
		title = e.Institution
	}
	return card.Record{
		Title:       title,
		Subtitle:    e.Institution,
		Meta:        e.Duration,
		Description: e.Description,
		Image:       e.Image,
		ImageAlt:    e.Institution,
	}
}

func certificateRecord(c portfolio.Certificate) card.Record {
	return card.Record{
		Title:       c.Title,
		Subtitle:    c.Issuer,
		Meta:        c.Date,
		Description: c.Description,
		Image:       c.Image,
		Links:       []card.Link{{Label: view.Copy("credential"), Href: c.CredentialLink}},
	}
}

// skillView is the model for the "skill-detail" template.
type skillView struct {
	Category    string
	Description string
	Skills      []string
	Image       *card.Image
}

func (b *Builder) skillDetail(s portfolio.SkillCategory) (template.HTML, error) {
	v := skillView{
		Category:    s.Category,
		Description: s.Description,
		Skills:      card.SplitTags(s.Skills),
	}
	if src := b.Images.Resolve(s.Image); src != "" {
		v.Image = &card.Image{Src: src, Alt: s.Category}
	}
	return b.Renderer.Fragment("skill-detail", v)
}
