package content

import (
	"context"
	"io"
	"strings"

	mediaapp "github.com/portfolio/backend/internal/application/media"
	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SessionState is the edit session lifecycle state.
type SessionState string

const (
	// StateViewing means no draft is open.
	StateViewing SessionState = "viewing"
	// StateEditing means a draft is open and accepting mutations.
	StateEditing SessionState = "editing"
	// StateSaving means a save is in flight; mutations are rejected.
	StateSaving SessionState = "saving"
)

// EditSession drives one admin's edit flow over a single project: snapshot
// the stored record into a draft, mutate the draft, then save or cancel.
// Media attachment is the one exception to draft isolation: an uploaded
// blob's reference is persisted immediately so an abandoned edit cannot
// orphan an expensive upload.
//
// Sessions are single-owner and not safe for concurrent use.
type EditSession struct {
	projects *ProjectService
	uploads  *mediaapp.UploadService
	logger   *zap.Logger

	state       SessionState
	draft       content.Project
	creating    bool
	pendingTech string
}

// EditSessionOption is a functional option for configuring EditSession
type EditSessionOption func(*EditSession)

// WithSessionLogger sets a custom logger for EditSession
func WithSessionLogger(logger *zap.Logger) EditSessionOption {
	return func(s *EditSession) {
		s.logger = logger
	}
}

// NewEditSession creates a new EditSession in the viewing state.
func NewEditSession(projects *ProjectService, uploads *mediaapp.UploadService, opts ...EditSessionOption) *EditSession {
	s := &EditSession{
		projects: projects,
		uploads:  uploads,
		logger:   zap.NewNop(),
		state:    StateViewing,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle state.
func (s *EditSession) State() SessionState {
	return s.state
}

// Draft returns a copy of the working draft.
func (s *EditSession) Draft() content.Project {
	return s.draft.Clone()
}

// PendingTech returns the uncommitted technology input buffer.
func (s *EditSession) PendingTech() string {
	return s.pendingTech
}

// Edit opens a draft over the given stored record. The draft is an
// independent copy; stored content is untouched until Save.
func (s *EditSession) Edit(stored content.Project) error {
	if s.state == StateSaving {
		return shared.NewDomainError("INVALID_INPUT", "Cannot start editing while a save is in flight")
	}
	s.draft = stored.Clone()
	s.creating = stored.ID == ""
	s.pendingTech = ""
	s.state = StateEditing
	return nil
}

func (s *EditSession) mutable() error {
	if s.state != StateEditing {
		return shared.NewDomainError("INVALID_INPUT", "No draft is open for editing")
	}
	return nil
}

// SetTitle updates the draft title.
func (s *EditSession) SetTitle(title string) error {
	if err := s.mutable(); err != nil {
		return err
	}
	s.draft.Title = title
	return nil
}

// SetTitleURL updates the draft title link.
func (s *EditSession) SetTitleURL(url string) error {
	if err := s.mutable(); err != nil {
		return err
	}
	s.draft.TitleURL = url
	return nil
}

// SetDescription updates the draft description.
func (s *EditSession) SetDescription(description string) error {
	if err := s.mutable(); err != nil {
		return err
	}
	s.draft.Description = description
	return nil
}

// SetDate updates the draft date.
func (s *EditSession) SetDate(date string) error {
	if err := s.mutable(); err != nil {
		return err
	}
	s.draft.Date = date
	return nil
}

// SetPendingTech fills the technology input buffer without touching the
// draft's committed tags.
func (s *EditSession) SetPendingTech(input string) error {
	if err := s.mutable(); err != nil {
		return err
	}
	s.pendingTech = input
	return nil
}

// CommitPendingTech appends the buffered tag to the draft and clears the
// buffer. Blank input is ignored; an exact duplicate clears the buffer
// without adding a second copy.
func (s *EditSession) CommitPendingTech() error {
	if err := s.mutable(); err != nil {
		return err
	}
	tag := strings.TrimSpace(s.pendingTech)
	s.pendingTech = ""
	if tag == "" {
		return nil
	}
	s.draft.Technologies = content.NormalizeTechnologies(append(s.draft.Technologies, tag))
	return nil
}

// RemoveTech drops one committed tag from the draft.
func (s *EditSession) RemoveTech(tag string) error {
	if err := s.mutable(); err != nil {
		return err
	}
	kept := make([]string, 0, len(s.draft.Technologies))
	for _, t := range s.draft.Technologies {
		if t != tag {
			kept = append(kept, t)
		}
	}
	s.draft.Technologies = kept
	return nil
}

// AttachMedia uploads the payload through the media pipeline, sets the
// draft's media reference, and, when the draft shadows a stored record,
// persists the two media fields immediately. Other draft fields stay
// unsaved.
func (s *EditSession) AttachMedia(ctx context.Context, filename, contentType string, size int64, r io.Reader) error {
	if err := s.mutable(); err != nil {
		return err
	}
	stored, err := s.uploads.Store(ctx, filename, contentType, size, r)
	if err != nil {
		return err
	}
	s.draft.SetMedia(stored.URL, string(stored.Kind))

	if s.creating {
		return nil
	}
	var partial content.Draft
	partial.MediaURL.Set(stored.URL)
	partial.MediaType.Set(string(stored.Kind))
	if _, err := s.projects.Update(ctx, s.draft.ID, partial); err != nil {
		s.logger.Warn("media uploaded but reference not persisted",
			zap.String("id", s.draft.ID),
			zap.String("url", stored.URL),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// ClearMedia clears both media fields of the draft together.
func (s *EditSession) ClearMedia() error {
	if err := s.mutable(); err != nil {
		return err
	}
	s.draft.SetMedia("", "")
	return nil
}

// Save persists the draft. On success the session returns to viewing; on
// failure it returns to editing with the draft intact so the admin can fix
// the input and retry.
func (s *EditSession) Save(ctx context.Context) ([]content.Project, error) {
	if err := s.mutable(); err != nil {
		return nil, err
	}
	s.state = StateSaving

	var (
		projects []content.Project
		err      error
	)
	if s.creating {
		projects, err = s.projects.Create(ctx, s.draft)
	} else {
		projects, err = s.projects.Update(ctx, s.draft.ID, draftOf(s.draft))
	}
	if err != nil {
		s.state = StateEditing
		return nil, err
	}

	s.state = StateViewing
	s.draft = content.Project{}
	s.pendingTech = ""
	return projects, nil
}

// Cancel discards the draft and returns to viewing. Media already attached
// to a stored record stays persisted.
func (s *EditSession) Cancel() {
	if s.state == StateSaving {
		return
	}
	s.draft = content.Project{}
	s.pendingTech = ""
	s.state = StateViewing
}

// draftOf converts a full working copy into a whole-record draft.
func draftOf(p content.Project) content.Draft {
	var d content.Draft
	d.Title.Set(p.Title)
	d.TitleURL.Set(p.TitleURL)
	d.Description.Set(p.Description)
	d.Technologies.Set(p.Technologies)
	d.Date.Set(p.Date)
	if p.MediaURL != nil && p.MediaType != nil {
		d.MediaURL.Set(*p.MediaURL)
		d.MediaType.Set(*p.MediaType)
	} else {
		d.MediaURL.Clear()
		d.MediaType.Clear()
	}
	return d
}
