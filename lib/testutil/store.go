// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"io/fs"
	"maps"
)

// Write is one recorded attribute write.
type Write struct {
	Store     string
	Attribute string
	Value     string
}

// WriteLog collects writes from one or more stores in call order.
type WriteLog struct {
	Writes []Write
}

// RecordingStore is an in-memory attribute store. It satisfies the
// Read/Write store interface of package cpufreq.
type RecordingStore struct {
	// Name labels the store's writes in the log, e.g. "cpu0".
	Name string

	// Values holds attribute contents. Successful writes replace them.
	Values map[string]string

	// Log receives successful writes. Nil disables recording.
	Log *WriteLog

	// Fail maps an attribute to the error its writes return. A failed
	// write is not recorded and does not change Values.
	Fail map[string]error
}

// NewRecordingStore returns a store seeded with a copy of values.
func NewRecordingStore(name string, values map[string]string, log *WriteLog) *RecordingStore {
	return &RecordingStore{
		Name:   name,
		Values: maps.Clone(values),
		Log:    log,
		Fail:   make(map[string]error),
	}
}

// Read returns the attribute's content, or an fs.ErrNotExist error.
func (s *RecordingStore) Read(attribute string) (string, error) {
	value, ok := s.Values[attribute]
	if !ok {
		return "", &fs.PathError{Op: "open", Path: s.Name + "/" + attribute, Err: fs.ErrNotExist}
	}
	return value, nil
}

// Write records the write unless a failure is injected. Writes to
// attributes the store does not hold fail with fs.ErrNotExist.
func (s *RecordingStore) Write(attribute, value string) error {
	if err := s.Fail[attribute]; err != nil {
		return err
	}
	if _, ok := s.Values[attribute]; !ok {
		return &fs.PathError{Op: "open", Path: s.Name + "/" + attribute, Err: fs.ErrNotExist}
	}
	s.Values[attribute] = value
	if s.Log != nil {
		s.Log.Writes = append(s.Log.Writes, Write{Store: s.Name, Attribute: attribute, Value: value})
	}
	return nil
}
