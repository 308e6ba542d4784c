// Package store implements the persistent key-value store backing the memo
// registry. Values are serialized as JSON inside a versioned envelope and
// written to a pluggable Medium, so the underlying persistence (a directory of
// files, an in-memory map for tests) can be swapped without touching the
// repository contract.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// SchemaVersion is the current persisted-envelope version. It is incremented
// whenever the stored format changes so that migrations may be done.
const SchemaVersion = 1

// envelope wraps every persisted value with its schema version.
type envelope struct {
	SchemaVersion int             `json:"schema_version"`
	Data          json.RawMessage `json:"data"`
}

// Store provides generic get-with-default/set access over a Medium. It knows
// nothing about memos or departments.
type Store struct {
	medium Medium
	logger *logrus.Logger
}

// NewStore creates a new store over the given medium
func NewStore(medium Medium, logger *logrus.Logger) *Store {
	return &Store{
		medium: medium,
		logger: logger,
	}
}

// Get reads and decodes the value stored under key. A missing key, an
// unparseable value, or an envelope from an unknown schema version all return
// the supplied fallback; Get never fails.
func Get[T any](s *Store, key string, fallback T) T {
	raw, err := s.medium.Read(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.WithError(err).WithField("key", key).Warn("failed to read stored value, using fallback")
		}
		return fallback
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("corrupted stored value, using fallback")
		return fallback
	}

	if env.SchemaVersion != SchemaVersion {
		s.logger.WithFields(logrus.Fields{
			"key":     key,
			"version": env.SchemaVersion,
		}).Warn("unknown schema version, using fallback")
		return fallback
	}

	var value T
	if err := json.Unmarshal(env.Data, &value); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("corrupted stored payload, using fallback")
		return fallback
	}

	return value
}

// Set serializes value and writes it under key. Failures are logged and
// returned but are never fatal; the caller's in-memory state remains the
// source of truth for the session.
func (s *Store) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Error("failed to serialize value")
		return fmt.Errorf("failed to serialize value for %q: %w", key, err)
	}

	raw, err := json.Marshal(envelope{SchemaVersion: SchemaVersion, Data: data})
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Error("failed to serialize envelope")
		return fmt.Errorf("failed to serialize envelope for %q: %w", key, err)
	}

	if err := s.medium.Write(key, raw); err != nil {
		s.logger.WithError(err).WithField("key", key).Error("failed to persist value")
		return fmt.Errorf("failed to persist %q: %w", key, err)
	}

	return nil
}
