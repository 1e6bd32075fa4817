// Package theme holds the light/dark preference for one visitor and the color
// tokens derived from it.
package theme

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// StorageKey is the key the preference is persisted under.
const StorageKey = "isDarkMode"

// Store persists the dark-mode flag.
type Store interface {
	// Load returns the stored flag and whether one was stored.
	Load(ctx context.Context) (dark bool, found bool, err error)
	Save(ctx context.Context, dark bool) error
}

// Context is the theme state handed to every view. Dark mode is the default
// when nothing was persisted.
type Context struct {
	dark  bool
	store Store
}

// Init reads the persisted preference. A store error leaves the default in
// place and is returned alongside a usable Context.
func Init(ctx context.Context, store Store) (*Context, error) {
	c := &Context{dark: true, store: store}
	if store == nil {
		return c, nil
	}

	dark, found, err := store.Load(ctx)
	if err != nil {
		return c, errors.Wrap(err, "load theme preference")
	}
	if found {
		c.dark = dark
	}
	return c, nil
}

// Dark reports whether dark mode is active.
func (c *Context) Dark() bool {
	return c.dark
}

// Name is "dark" or "light".
func (c *Context) Name() string {
	if c.dark {
		return "dark"
	}
	return "light"
}

// Toggle flips the preference and persists the new value.
func (c *Context) Toggle(ctx context.Context) error {
	c.dark = !c.dark
	if c.store == nil {
		return nil
	}
	return errors.Wrap(c.store.Save(ctx, c.dark), "save theme preference")
}

// Tokens returns the color tokens for the active mode.
func (c *Context) Tokens() Tokens {
	if c.dark {
		return darkTokens
	}
	return lightTokens
}

// Tokens are the colors mirrored into CSS custom properties.
type Tokens struct {
	Background string
	Surface    string
	Text       string
	Muted      string
	Accent     string
	Border     string
}

var (
	darkTokens = Tokens{
		Background: "#0f172a",
		Surface:    "#1e293b",
		Text:       "#e2e8f0",
		Muted:      "#94a3b8",
		Accent:     "#38bdf8",
		Border:     "#334155",
	}
	lightTokens = Tokens{
		Background: "#f8fafc",
		Surface:    "#ffffff",
		Text:       "#0f172a",
		Muted:      "#475569",
		Accent:     "#0284c7",
		Border:     "#cbd5e1",
	}
)

// CSS renders the tokens as a :root rule.
func (t Tokens) CSS() template.CSS {
	var b strings.Builder
	b.WriteString(":root{")
	for _, kv := range [][2]string{
		{"--color-bg", t.Background},
		{"--color-surface", t.Surface},
		{"--color-text", t.Text},
		{"--color-muted", t.Muted},
		{"--color-accent", t.Accent},
		{"--color-border", t.Border},
	} {
		fmt.Fprintf(&b, "%s:%s;", kv[0], kv[1])
	}
	b.WriteString("}")
	return template.CSS(b.String())
}

// MemoryStore keeps the flag in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	value *bool
}

// Load implements Store.
func (s *MemoryStore) Load(context.Context) (bool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.value == nil {
		return false, false, nil
	}
	return *s.value, true, nil
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, dark bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = &dark
	return nil
}
