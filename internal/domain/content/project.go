// Package content holds the portfolio content model: the project collection
// and the singleton about record, together with the draft merge rules used by
// the admin edit flow.
package content

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/portfolio/backend/internal/domain/shared"
)

// Project is one portfolio entry. Field names mirror the persisted JSON
// exactly; mediaUrl and mediaType are always serialized (as null when unset)
// so the stored document stays diffable across edits.
type Project struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	TitleURL     string   `json:"titleUrl"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Date         string   `json:"date"`
	MediaURL     *string  `json:"mediaUrl"`
	MediaType    *string  `json:"mediaType"`
}

// NewProjectID derives a collection-unique id from the creation instant.
// Ids are Unix milliseconds in decimal, matching every id already present in
// stores written by earlier versions of this system.
func NewProjectID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

// AssignID gives the project a collection-unique id. A caller-supplied id is
// kept if free; a missing id is derived from now and bumped millisecond by
// millisecond past any collision. Must run under the store's writer lock so
// two concurrent creates cannot race to the same id.
func AssignID(p *Project, existing []Project, now time.Time) error {
	taken := make(map[string]struct{}, len(existing))
	for i := range existing {
		taken[existing[i].ID] = struct{}{}
	}
	if p.ID != "" {
		if _, dup := taken[p.ID]; dup {
			return shared.NewDomainError("INVALID_INPUT", "Project id already exists")
		}
		return nil
	}
	for ms := now.UnixMilli(); ; ms++ {
		id := strconv.FormatInt(ms, 10)
		if _, dup := taken[id]; !dup {
			p.ID = id
			return nil
		}
	}
}

// Validate checks the required fields and the media pairing invariant.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Project title is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Project description is required")
	}
	if strings.TrimSpace(p.Date) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Project date is required")
	}
	if (p.MediaURL == nil) != (p.MediaType == nil) {
		return shared.NewDomainError("INVALID_INPUT", "mediaUrl and mediaType must be set or cleared together")
	}
	return nil
}

// Sanitize strips blank technology entries and exact-match duplicates,
// keeping first-occurrence order.
func (p *Project) Sanitize() {
	p.Technologies = NormalizeTechnologies(p.Technologies)
}

// SetMedia sets or clears both media fields together.
func (p *Project) SetMedia(url, mediaType string) {
	if url == "" {
		p.MediaURL = nil
		p.MediaType = nil
		return
	}
	p.MediaURL = &url
	p.MediaType = &mediaType
}

// Clone returns an independent copy, so drafts never alias the stored record.
func (p *Project) Clone() Project {
	out := *p
	if p.Technologies != nil {
		out.Technologies = append([]string(nil), p.Technologies...)
	}
	if p.MediaURL != nil {
		u := *p.MediaURL
		out.MediaURL = &u
	}
	if p.MediaType != nil {
		t := *p.MediaType
		out.MediaType = &t
	}
	return out
}

// NormalizeTechnologies removes blank entries and case-sensitive duplicates.
func NormalizeTechnologies(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

// Field carries the tri-state a JSON draft needs for merge semantics: a key
// can be absent (keep the stored value), null (clear it), or set.
type Field[T any] struct {
	Present bool
	Valid   bool
	Value   T
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked for keys that
// appear in the document, so Present is true whenever it runs.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Present = true
	if string(data) == "null" {
		f.Valid = false
		var zero T
		f.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &f.Value); err != nil {
		return err
	}
	f.Valid = true
	return nil
}

// Set marks the field as present with a value. Used by callers constructing
// drafts programmatically rather than from JSON.
func (f *Field[T]) Set(v T) {
	f.Present = true
	f.Valid = true
	f.Value = v
}

// Clear marks the field as explicitly null.
func (f *Field[T]) Clear() {
	f.Present = true
	f.Valid = false
	var zero T
	f.Value = zero
}

// Draft is a partial project used by update operations. Whole-record
// replacement happens at the repository level; the draft only decides which
// fields of the replacement differ from the stored record.
type Draft struct {
	Title        Field[string]   `json:"title"`
	TitleURL     Field[string]   `json:"titleUrl"`
	Description  Field[string]   `json:"description"`
	Technologies Field[[]string] `json:"technologies"`
	Date         Field[string]   `json:"date"`
	MediaURL     Field[string]   `json:"mediaUrl"`
	MediaType    Field[string]   `json:"mediaType"`
}

// Apply merges the draft into a copy of the stored record: absent fields keep
// their prior values, null fields are cleared, set fields are replaced. The
// result is re-sanitized and validated before it is returned.
func (d Draft) Apply(p *Project) error {
	if d.Title.Present {
		p.Title = d.Title.Value
	}
	if d.TitleURL.Present {
		p.TitleURL = d.TitleURL.Value
	}
	if d.Description.Present {
		p.Description = d.Description.Value
	}
	if d.Date.Present {
		p.Date = d.Date.Value
	}
	if d.Technologies.Present {
		p.Technologies = d.Technologies.Value
	}
	if d.MediaURL.Present || d.MediaType.Present {
		if d.MediaURL.Valid != d.MediaType.Valid {
			return shared.NewDomainError("INVALID_INPUT", "mediaUrl and mediaType must be set or cleared together")
		}
		if d.MediaURL.Valid {
			p.SetMedia(d.MediaURL.Value, d.MediaType.Value)
		} else {
			p.SetMedia("", "")
		}
	}
	p.Sanitize()
	return p.Validate()
}
