// Package screens holds the per-collection view controllers — the CLI
// analogue of the browser pages. Each screen owns its fetched list state,
// applies the authorization policy, validates drafts before submitting, and
// reconciles local state with what the server returns. Rendering lives in
// cmd/crmctl; screens never print.
package screens

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"crmctl/internal/policy"
	"crmctl/internal/session"
	"crmctl/pkg/logger"
	"crmctl/pkg/validate"
)

var (
	// ErrForbidden: the policy denies the action for the session's role.
	ErrForbidden = errors.New("screens: action not permitted for this role")

	// ErrAborted: the user declined the confirmation prompt.
	ErrAborted = errors.New("screens: aborted by user")
)

// ValidationError reports draft fields that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Fields[k]))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Resource is the collection surface a screen drives.
type Resource[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, record T) (T, error)
	Update(ctx context.Context, id int64, record T) (T, error)
}

// DeletableResource adds id-addressed deletion.
type DeletableResource[T any] interface {
	Resource[T]
	Delete(ctx context.Context, id int64) error
}

// ListScreen is the shared controller behind every collection page.
type ListScreen[T any] struct {
	name    string
	res     Resource[T]
	sess    session.Session
	id      func(T) int64
	visible func([]T) []T

	records []T
}

func newListScreen[T any](name string, res Resource[T], sess session.Session, id func(T) int64) *ListScreen[T] {
	return &ListScreen[T]{
		name:    name,
		res:     res,
		sess:    sess,
		id:      id,
		visible: func(in []T) []T { return in }, // only tasks override this
	}
}

// Load fetches the collection and replaces the local list atomically.
// On failure the list is left empty — mirroring the loading-cleared state —
// and the error is returned after being logged.
func (s *ListScreen[T]) Load(ctx context.Context) error {
	records, err := s.res.List(ctx)
	if err != nil {
		s.records = nil
		logger.L.Warn().Err(err).Str("screen", s.name).Msg("list failed")
		return err
	}
	s.records = s.visible(records)
	return nil
}

// Records returns the loaded, policy-filtered list.
func (s *ListScreen[T]) Records() []T {
	return s.records
}

// Filtered narrows the already-loaded list locally — no re-fetch.
func (s *ListScreen[T]) Filtered(keep func(T) bool) []T {
	out := make([]T, 0, len(s.records))
	for _, r := range s.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Find returns the loaded record with the given id, for seeding an edit
// draft.
func (s *ListScreen[T]) Find(id int64) (T, bool) {
	for _, r := range s.records {
		if s.id(r) == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Submit validates the draft and either creates (editingID == 0) or
// replaces the record, then reconciles local state with the server's copy.
// A failed write leaves the local list untouched so the user can retry.
func (s *ListScreen[T]) Submit(ctx context.Context, draft T, editingID int64) (T, error) {
	var zero T

	action := policy.ActionCreate
	if editingID != 0 {
		action = policy.ActionEdit
	}
	if !policy.CanMutate(s.sess.Role, action) {
		return zero, ErrForbidden
	}

	if errs := validate.Struct(draft); len(errs) > 0 {
		return zero, &ValidationError{Fields: errs}
	}

	if editingID == 0 {
		created, err := s.res.Create(ctx, draft)
		if err != nil {
			logger.L.Warn().Err(err).Str("screen", s.name).Msg("create failed")
			return zero, err
		}
		s.records = append(s.records, created)
		return created, nil
	}

	updated, err := s.res.Update(ctx, editingID, draft)
	if err != nil {
		logger.L.Warn().Err(err).Str("screen", s.name).Msg("update failed")
		return zero, err
	}
	s.replace(editingID, updated)
	return updated, nil
}

// Delete removes the record after the confirm callback approves — the
// explicit last line of defense against destructive mistakes. The local
// entry is dropped only once the server succeeds.
func (s *ListScreen[T]) Delete(ctx context.Context, id int64, confirm func() bool) error {
	if !policy.CanMutate(s.sess.Role, policy.ActionDelete) {
		return ErrForbidden
	}

	del, ok := s.res.(DeletableResource[T])
	if !ok {
		return fmt.Errorf("screens: %s records cannot be deleted", s.name)
	}

	if confirm != nil && !confirm() {
		return ErrAborted
	}

	if err := del.Delete(ctx, id); err != nil {
		logger.L.Warn().Err(err).Str("screen", s.name).Msg("delete failed")
		return err
	}

	kept := s.records[:0:0]
	for _, r := range s.records {
		if s.id(r) != id {
			kept = append(kept, r)
		}
	}
	s.records = kept
	return nil
}

func (s *ListScreen[T]) replace(id int64, record T) {
	for i, r := range s.records {
		if s.id(r) == id {
			s.records[i] = record
			return
		}
	}
}
