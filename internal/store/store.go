// Package store implements the local persistence layer: named collections of
// JSON records behind a small port interface, so callers depend on an
// abstraction rather than a concrete medium. Durability is best-effort; a
// missing or unreadable collection reads as empty and write failures are
// swallowed, which callers must tolerate.
package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Store is the collection port. Implementations guarantee that reading a
// never-written collection fills out with an empty sequence instead of
// failing, and that a single write is applied atomically.
type Store interface {
	// ReadCollection decodes the named collection into out, which must be a
	// pointer to a slice.
	ReadCollection(ctx context.Context, name string, out interface{}) error
	// WriteCollection replaces the named collection with the given records.
	WriteCollection(ctx context.Context, name string, records interface{}) error
}

// Upsert patches the record with the given id inside a collection, or
// appends the patch as a new record when the id is absent.
func Upsert(ctx context.Context, s Store, name, id string, patch map[string]interface{}) error {
	var records []map[string]interface{}
	if err := s.ReadCollection(ctx, name, &records); err != nil {
		return err
	}

	found := false
	for _, record := range records {
		if record["id"] == id {
			for k, v := range patch {
				record[k] = v
			}
			found = true
			break
		}
	}
	if !found {
		record := map[string]interface{}{"id": id}
		for k, v := range patch {
			record[k] = v
		}
		records = append(records, record)
	}

	return s.WriteCollection(ctx, name, records)
}

// RemoveByID deletes the record with the given id from a collection. Removing
// an absent id is a no-op.
func RemoveByID(ctx context.Context, s Store, name, id string) error {
	var records []map[string]interface{}
	if err := s.ReadCollection(ctx, name, &records); err != nil {
		return err
	}

	kept := records[:0]
	for _, record := range records {
		if record["id"] != id {
			kept = append(kept, record)
		}
	}

	return s.WriteCollection(ctx, name, kept)
}

func marshalRecords(records interface{}) ([]byte, error) {
	if records == nil {
		return []byte("[]"), nil
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal collection: %w", err)
	}
	// Normalize nil slices so collections always hold a JSON array.
	if string(payload) == "null" {
		payload = []byte("[]")
	}
	return payload, nil
}

func unmarshalRecords(data []byte, out interface{}) error {
	if len(data) == 0 {
		data = []byte("[]")
	}
	if err := json.Unmarshal(data, out); err != nil {
		// Corrupted medium reads as empty.
		return json.Unmarshal([]byte("[]"), out)
	}
	return nil
}
