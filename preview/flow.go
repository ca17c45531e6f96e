package preview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hdcinema/linkstream/tool"
	"github.com/hdcinema/linkstream/types"
)

var (
	// ErrNoFiles aborts draft creation: nothing in the index matches.
	ErrNoFiles = errors.New("no files found for query")
	// ErrForbidden rejects any action by a non-owner admin.
	ErrForbidden = errors.New("not your session")
	// ErrExpired means the session no longer exists.
	ErrExpired = errors.New("session expired")
	// ErrBadPoster rejects a poster edit; the edit state survives for retry.
	ErrBadPoster = errors.New("invalid poster url")
	// ErrBadDetails rejects a details edit; the edit state survives for retry.
	ErrBadDetails = errors.New("invalid details format")
	// ErrNoEdit means the admin has no pending field edit.
	ErrNoEdit = errors.New("no pending edit")
	// ErrPublish wraps a failed channel publish. The session is gone either
	// way; the admin must re-run creation.
	ErrPublish = errors.New("publish failed")
)

// Searcher is the read side of the file index the flow needs.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]types.FileRecord, error)
}

// Enricher fetches external metadata for a query. May be nil (no API key).
type Enricher interface {
	Enrich(ctx context.Context, query string) (*types.MetaInfo, error)
}

// LinkMinter persists a permanent deep-link for a query.
type LinkMinter interface {
	Create(query string) (string, error)
}

// Renderer shows the draft to its owning admin. RenderPreview replaces the
// previous preview message, if any, and records the new message on the
// session.
type Renderer interface {
	RenderPreview(s *types.PreviewSession) error
	DeletePreview(s *types.PreviewSession)
}

// Publisher posts the final draft to the redirect channel and returns the
// public URL of the posted message.
type Publisher interface {
	Publish(s *types.PreviewSession) (string, error)
}

// Flow is the preview/confirm state machine over injected collaborators.
type Flow struct {
	store    Store
	idx      Searcher
	enricher Enricher
	links    LinkMinter
	renderer Renderer
	pub      Publisher
	deepLink func(linkID string) string
}

func NewFlow(store Store, idx Searcher, enricher Enricher, links LinkMinter, renderer Renderer, pub Publisher, deepLink func(string) string) *Flow {
	return &Flow{
		store:    store,
		idx:      idx,
		enricher: enricher,
		links:    links,
		renderer: renderer,
		pub:      pub,
		deepLink: deepLink,
	}
}

// CreateDraft verifies the query matches files, mints a permanent link,
// enriches the draft with external metadata when possible, stores the session
// and renders the first preview.
func (f *Flow) CreateDraft(ctx context.Context, adminID int64, query string) (*types.PreviewSession, error) {
	records, err := f.idx.Search(ctx, query, 1)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoFiles
	}

	linkID, err := f.links.Create(query)
	if err != nil {
		return nil, fmt.Errorf("minting permanent link: %w", err)
	}

	s := &types.PreviewSession{
		ID:        strings.ReplaceAll(uuid.NewString(), "-", ""),
		AdminID:   adminID,
		Query:     query,
		LinkID:    linkID,
		DeepLink:  f.deepLink(linkID),
		Title:     tool.DisplayName(query),
		Year:      types.UnknownValue,
		Rating:    types.UnknownValue,
		Genre:     types.UnknownValue,
		Runtime:   types.UnknownValue,
		CreatedAt: time.Now(),
	}

	if f.enricher != nil {
		if info, err := f.enricher.Enrich(ctx, query); err != nil {
			tool.DefaultLogger.Warnf("[Preview] Enrichment failed for %q, using minimal draft: %v", query, err)
		} else {
			s.Title = info.Title
			s.Year = info.Year
			s.Rating = info.Rating
			s.Genre = info.Genre
			s.Runtime = info.Runtime
			s.Poster = info.Poster
		}
	}
	s.Caption = BuildCaption(s.Title, s.Year, s.Rating, s.Genre, s.Runtime)

	f.store.Put(s)
	if err := f.renderer.RenderPreview(s); err != nil {
		tool.DefaultLogger.Warnf("[Preview] Failed to render preview for session %s: %v", s.ID, err)
	}
	return s, nil
}

// BeginEdit marks the admin's next private text message as the payload for
// the chosen field.
func (f *Flow) BeginEdit(sessionID string, adminID int64, field types.EditField) error {
	s, ok := f.store.Get(sessionID)
	if !ok {
		return ErrExpired
	}
	if s.AdminID != adminID {
		return ErrForbidden
	}
	switch field {
	case types.EditPoster, types.EditDetails, types.EditCaption:
	default:
		return fmt.Errorf("unknown edit field %q", field)
	}
	f.store.SetEditState(adminID, &types.EditState{
		SessionID: sessionID,
		Field:     field,
		Since:     time.Now(),
	})
	return nil
}

// ClaimsText reports whether the admin's next text message belongs to a
// pending edit. A dangling state whose session died is dropped on the spot.
func (f *Flow) ClaimsText(adminID int64) (*types.EditState, bool) {
	st, ok := f.store.EditState(adminID)
	if !ok {
		return nil, false
	}
	if _, alive := f.store.Get(st.SessionID); !alive {
		f.store.ClearEditState(adminID)
		return nil, false
	}
	return st, true
}

// ApplyEdit routes the admin's text to the pending field. Returns the updated
// session and an optional non-blocking warning. Validation failures keep the
// edit state so the admin can retry immediately.
func (f *Flow) ApplyEdit(adminID int64, text string) (*types.PreviewSession, string, error) {
	st, ok := f.store.EditState(adminID)
	if !ok {
		return nil, "", ErrNoEdit
	}
	s, ok := f.store.Get(st.SessionID)
	if !ok {
		f.store.ClearEditState(adminID)
		return nil, "", ErrExpired
	}

	var warning string
	switch st.Field {
	case types.EditPoster:
		if !ValidPosterURL(text) {
			return nil, "", ErrBadPoster
		}
		s.Poster = strings.TrimSpace(text)
	case types.EditDetails:
		d, err := ParseDetails(text)
		if err != nil {
			return nil, "", err
		}
		s.Title = d.Title
		s.Year = d.Year
		s.Rating = d.Rating
		s.Genre = d.Genre
		s.Runtime = d.Runtime
		s.Caption = BuildCaption(s.Title, s.Year, s.Rating, s.Genre, s.Runtime)
		warning = d.Warning
	case types.EditCaption:
		s.Caption = text
	default:
		f.store.ClearEditState(adminID)
		return nil, "", ErrNoEdit
	}

	f.store.ClearEditState(adminID)
	f.store.Put(s)
	if err := f.renderer.RenderPreview(s); err != nil {
		tool.DefaultLogger.Warnf("[Preview] Failed to re-render session %s: %v", s.ID, err)
	}
	return s, warning, nil
}

// Confirm publishes the draft. The session is discarded whether or not the
// publish succeeds; a failed publish comes back wrapped in ErrPublish
// together with the now-dead session so the caller can surface the error on
// the preview message.
func (f *Flow) Confirm(sessionID string, adminID int64) (*types.PreviewSession, string, error) {
	s, ok := f.store.Get(sessionID)
	if !ok {
		return nil, "", ErrExpired
	}
	if s.AdminID != adminID {
		return nil, "", ErrForbidden
	}

	postURL, pubErr := f.pub.Publish(s)

	f.store.Delete(sessionID)
	f.store.ClearEditState(adminID)

	if pubErr != nil {
		return s, "", fmt.Errorf("%w: %v", ErrPublish, pubErr)
	}
	return s, postURL, nil
}

// Cancel discards the session and removes its preview message.
func (f *Flow) Cancel(sessionID string, adminID int64) (*types.PreviewSession, error) {
	s, ok := f.store.Get(sessionID)
	if !ok {
		return nil, ErrExpired
	}
	if s.AdminID != adminID {
		return nil, ErrForbidden
	}
	f.store.Delete(sessionID)
	f.store.ClearEditState(adminID)
	f.renderer.DeletePreview(s)
	return s, nil
}
