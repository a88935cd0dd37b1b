package api

import (
	"context"
	"fmt"

	"crmctl/pkg/httpx"
)

// Collection provides the generic fetch/create/update operations over one
// named REST collection. The record type carries the wire shape; the
// collection only knows its path.
type Collection[T any] struct {
	client *Client
	path   string
}

// List fetches the full server-visible collection. Role-based narrowing
// (tasks only) happens afterwards in the policy layer, client-side.
func (col Collection[T]) List(ctx context.Context) ([]T, error) {
	resp, err := httpx.Get(col.client.url(col.path)).
		WithContext(ctx).
		Timeout(col.client.timeout).
		Bearer(col.client.token()).
		Send()
	if err != nil {
		return nil, err
	}
	if err := decodeError(resp); err != nil {
		return nil, err
	}

	var out []T
	if err := resp.JSON(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create persists a new record and returns the canonical server copy,
// including its assigned id. The caller appends that copy to local state —
// the draft it sent is transient.
func (col Collection[T]) Create(ctx context.Context, record T) (T, error) {
	var out T

	resp, err := httpx.Post(col.client.url(col.path)).
		WithContext(ctx).
		Timeout(col.client.timeout).
		Bearer(col.client.token()).
		Body(record).
		Send()
	if err != nil {
		return out, err
	}
	if err := decodeError(resp); err != nil {
		return out, err
	}
	if err := resp.JSON(&out); err != nil {
		return out, err
	}
	return out, nil
}

// Update replaces the whole record at id — no partial patching — and
// returns the server's updated copy.
func (col Collection[T]) Update(ctx context.Context, id int64, record T) (T, error) {
	var out T

	resp, err := httpx.Put(col.client.url(fmt.Sprintf("%s/%d", col.path, id))).
		WithContext(ctx).
		Timeout(col.client.timeout).
		Bearer(col.client.token()).
		Body(record).
		Send()
	if err != nil {
		return out, err
	}
	if err := decodeError(resp); err != nil {
		return out, err
	}
	if err := resp.JSON(&out); err != nil {
		return out, err
	}
	return out, nil
}

// DeletableCollection adds id-addressed deletion for the collections whose
// surface supports it (customers, leads, tasks — not sales).
type DeletableCollection[T any] struct {
	Collection[T]
}

// Delete removes the record at id. Success has no body; the caller drops
// the matching local entry.
func (col DeletableCollection[T]) Delete(ctx context.Context, id int64) error {
	resp, err := httpx.Delete(col.client.url(fmt.Sprintf("%s/%d", col.path, id))).
		WithContext(ctx).
		Timeout(col.client.timeout).
		Bearer(col.client.token()).
		Send()
	if err != nil {
		return err
	}
	return decodeError(resp)
}
