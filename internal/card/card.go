// Package card builds the detail view shown for one selected record.
package card

import (
	"strings"
)

// maxLinks is the number of action buttons a card renders.
const maxLinks = 2

// Record is the raw input for a card. Only Title is required.
type Record struct {
	Title       string
	Subtitle    string
	Meta        string
	Tags        string
	Description string
	Image       string
	ImageAlt    string
	Links       []Link
}

// Link is an external action rendered as a button.
type Link struct {
	Label string
	Href  string
}

// Image is a resolved image source.
type Image struct {
	Src string
	Alt string
}

// Card is the view model consumed by the "card" template.
type Card struct {
	Title       string
	Subtitle    string
	Meta        string
	Tags        []string
	Description string
	Image       *Image
	Links       []Link
}

// HasImage reports whether an image region should be rendered.
func (c Card) HasImage() bool {
	return c.Image != nil
}

// New builds a Card from r. Empty links are skipped and at most two are kept.
// An empty image path yields no image region.
func New(r Record, images ImageResolver) Card {
	c := Card{
		Title:       strings.TrimSpace(r.Title),
		Subtitle:    strings.TrimSpace(r.Subtitle),
		Meta:        strings.TrimSpace(r.Meta),
		Tags:        SplitTags(r.Tags),
		Description: strings.TrimSpace(r.Description),
	}

	if src := images.Resolve(r.Image); src != "" {
		alt := r.ImageAlt
		if alt == "" {
			alt = c.Title
		}
		c.Image = &Image{Src: src, Alt: alt}
	}

	for _, l := range r.Links {
		if len(c.Links) == maxLinks {
			break
		}
		href := strings.TrimSpace(l.Href)
		if href == "" {
			continue
		}
		c.Links = append(c.Links, Link{Label: l.Label, Href: href})
	}

	return c
}

// SplitTags splits a comma-separated list, trimming each tag and dropping
// empty ones. Order is preserved.
func SplitTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
