package portfolio

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// Warning describes an entry dropped or adjusted while normalizing.
type Warning struct {
	Section string
	Index   int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s[%d]: %s", w.Section, w.Index, w.Message)
}

// Normalize trims every string field and drops collection entries that lack
// their display label. Array order is preserved. Absent fields stay absent.
func Normalize(d *Data) []Warning {
	if d == nil {
		return nil
	}

	var warnings []Warning
	collect := func(ws []Warning) { warnings = append(warnings, ws...) }

	if about, ok := d.About.Get(); ok {
		trimAll(&about.Name, &about.Title, &about.Description, &about.Image, &about.ResumeLink)
		d.About = Some(about)
	}

	var ws []Warning
	d.Skills, ws = normalizeList(SectionSkills, d.Skills, func(s *SkillCategory) {
		trimAll(&s.ID, &s.Category, &s.Skills, &s.Description, &s.Image)
	})
	collect(ws)
	d.Experiences, ws = normalizeList(SectionExperiences, d.Experiences, func(e *Experience) {
		trimAll(&e.ID, &e.Company, &e.Position, &e.Duration, &e.Description, &e.Technologies, &e.Image, &e.Link)
	})
	collect(ws)
	d.Projects, ws = normalizeList(SectionProjects, d.Projects, func(p *Project) {
		trimAll(&p.ID, &p.Title, &p.Description, &p.Technologies, &p.Image, &p.ProjectLink, &p.GithubLink)
	})
	collect(ws)
	d.Educations, ws = normalizeList(SectionEducations, d.Educations, func(e *Education) {
		trimAll(&e.ID, &e.Institution, &e.Degree, &e.Duration, &e.Description, &e.Image)
	})
	collect(ws)
	d.Certificates, ws = normalizeList(SectionCertificates, d.Certificates, func(c *Certificate) {
		trimAll(&c.ID, &c.Title, &c.Issuer, &c.Date, &c.Description, &c.Image, &c.CredentialLink)
	})
	collect(ws)
	d.LeftSides, ws = normalizeList("leftSides", d.LeftSides, trimLink)
	collect(ws)
	d.Headers, ws = normalizeList("headers", d.Headers, trimLink)
	collect(ws)

	if contact, ok := d.Contacts.Get(); ok {
		trimAll(&contact.Email, &contact.Phone, &contact.Location, &contact.Message)
		d.Contacts = Some(contact)
	}

	if footer, ok := d.Footer.Get(); ok {
		footer.Text = strings.TrimSpace(footer.Text)
		links, fws := normalizeList("footer.links", Some(footer.Links), trimLink)
		footer.Links = links.OrZero()
		collect(fws)
		d.Footer = Some(footer)
	}

	return warnings
}

func normalizeList[T any](section string, list Optional[[]T], trim func(*T)) (Optional[[]T], []Warning) {
	items, ok := list.Get()
	if !ok {
		return list, nil
	}

	var warnings []Warning
	kept := make([]T, 0, len(items))
	for i := range items {
		item := items[i]
		trim(&item)
		if err := validatorInstance().Struct(item); err != nil {
			warnings = append(warnings, Warning{Section: section, Index: i, Message: describe(err)})
			continue
		}
		kept = append(kept, item)
	}
	return Some(kept), warnings
}

func describe(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fmt.Sprintf("dropped: %s is %s", fieldErrs[0].Field(), fieldErrs[0].Tag())
	}
	return "dropped: " + err.Error()
}

func trimLink(l *Link) {
	trimAll(&l.Label, &l.Href, &l.Icon)
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
