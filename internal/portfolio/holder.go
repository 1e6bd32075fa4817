package portfolio

import (
	"context"
	"sync/atomic"
	"time"
)

// Snapshot is one loaded, normalized document. It is never mutated after
// being published by a Holder.
type Snapshot struct {
	Data     *Data
	Versions map[string]string
	Warnings []Warning
	LoadedAt time.Time
	Source   string
}

// Version returns the fingerprint of the named section's collection.
func (s *Snapshot) Version(section string) string {
	if s == nil {
		return ""
	}
	return s.Versions[section]
}

// Holder keeps the process-wide document. Readers see either no document or a
// complete one; replacement is atomic.
type Holder struct {
	current atomic.Pointer[Snapshot]
}

// Snapshot returns the current document, if any.
func (h *Holder) Snapshot() (*Snapshot, bool) {
	s := h.current.Load()
	return s, s != nil
}

// Loaded reports whether a document has been published.
func (h *Holder) Loaded() bool {
	return h.current.Load() != nil
}

// Load fetches from src, normalizes and publishes the result. On error the
// previous document stays in place.
func (h *Holder) Load(ctx context.Context, src Source) (*Snapshot, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return h.publish(data, src.String()), nil
}

// Set normalizes d and publishes it.
func (h *Holder) Set(d *Data) *Snapshot {
	return h.publish(d, "")
}

func (h *Holder) publish(d *Data, source string) *Snapshot {
	if d == nil {
		d = &Data{}
	}
	warnings := Normalize(d)

	snap := &Snapshot{
		Data:     d,
		Warnings: warnings,
		LoadedAt: time.Now(),
		Source:   source,
		Versions: map[string]string{
			SectionSkills:       Fingerprint(d.Skills),
			SectionExperiences:  Fingerprint(d.Experiences),
			SectionProjects:     Fingerprint(d.Projects),
			SectionEducations:   Fingerprint(d.Educations),
			SectionCertificates: Fingerprint(d.Certificates),
		},
	}
	h.current.Store(snap)
	return snap
}
