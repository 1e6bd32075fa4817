package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "trailing separator", in: "React, Node, ", want: []string{"React", "Node"}},
		{name: "inner blanks", in: " Go ,, ,SQL", want: []string{"Go", "SQL"}},
		{name: "single", in: "Docker", want: []string{"Docker"}},
		{name: "empty", in: "", want: nil},
		{name: "only commas", in: " , ,", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTags(tt.in))
		})
	}
}

func TestSplitTagsIdempotent(t *testing.T) {
	once := SplitTags("React, Node, ")
	joined := ""
	for i, tag := range once {
		if i > 0 {
			joined += ","
		}
		joined += tag
	}
	assert.Equal(t, once, SplitTags(joined))
}

func TestImageResolver(t *testing.T) {
	r := ImageResolver{BaseURL: "https://x.test"}

	assert.Equal(t, "https://x.test/uploads/a.png", r.Resolve("/uploads/a.png"))
	assert.Equal(t, "https://cdn.test/b.png", r.Resolve("https://cdn.test/b.png"))
	assert.Equal(t, "/static/c.png", r.Resolve("/static/c.png"))
	assert.Equal(t, "", r.Resolve("  "))

	trailing := ImageResolver{BaseURL: "https://x.test/", Prefix: "/media"}
	assert.Equal(t, "https://x.test/media/d.png", trailing.Resolve("/media/d.png"))
	assert.Equal(t, "/uploads/a.png", trailing.Resolve("/uploads/a.png"))
}

func TestNewCard(t *testing.T) {
	c := New(Record{
		Title:       " Mail TUI ",
		Tags:        "Go, Bubbletea, ",
		Description: "A terminal email client.",
		Image:       "/uploads/mail.png",
		Links: []Link{
			{Label: "Live", Href: ""},
			{Label: "Source", Href: "https://github.com/Zachkp/mail"},
			{Label: "Docs", Href: "https://docs.test"},
			{Label: "Extra", Href: "https://extra.test"},
		},
	}, ImageResolver{BaseURL: "https://api.test"})

	assert.Equal(t, "Mail TUI", c.Title)
	assert.Equal(t, []string{"Go", "Bubbletea"}, c.Tags)
	require.True(t, c.HasImage())
	assert.Equal(t, "https://api.test/uploads/mail.png", c.Image.Src)
	assert.Equal(t, "Mail TUI", c.Image.Alt)
	require.Len(t, c.Links, 2)
	assert.Equal(t, "Source", c.Links[0].Label)
	assert.Equal(t, "Docs", c.Links[1].Label)
}

func TestNewCardWithoutImage(t *testing.T) {
	c := New(Record{Title: "Bare"}, ImageResolver{})
	assert.False(t, c.HasImage())
	assert.Empty(t, c.Links)
	assert.Empty(t, c.Tags)
}
