// Copyright The OpenLMS Authors.
// SPDX-License-Identifier: MIT

package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ExtraFields is an ordered bag of JSON members a peer attached to an
// envelope beyond the fixed AGS fields. Keys keep their first-seen
// position; setting an existing key replaces its value in place. The
// fixed envelope fields always win on key collision at serialization
// time.
type ExtraFields struct {
	keys   []string
	values map[string]json.RawMessage
}

// Set stores a raw JSON value under key.
func (f *ExtraFields) Set(key string, value json.RawMessage) {
	if f.values == nil {
		f.values = make(map[string]json.RawMessage)
	}
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Get returns the raw value stored under key.
func (f *ExtraFields) Get(key string) (json.RawMessage, bool) {
	value, ok := f.values[key]
	return value, ok
}

// Keys returns the keys in insertion order.
func (f *ExtraFields) Keys() []string {
	return f.keys
}

// Len returns the number of stored members.
func (f *ExtraFields) Len() int {
	return len(f.keys)
}

// envelopeWriter assembles a JSON object whose member order is exactly
// the order of field calls, which keeps fixed fields ahead of extras.
type envelopeWriter struct {
	buf      bytes.Buffer
	err      error
	count    int
	reserved map[string]bool
}

func newEnvelopeWriter() *envelopeWriter {
	w := &envelopeWriter{reserved: make(map[string]bool)}
	w.buf.WriteByte('{')
	return w
}

func (w *envelopeWriter) field(name string, value any) {
	if w.err != nil {
		return
	}
	w.reserved[name] = true

	encoded, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("marshal field %s: %w", name, err)
		return
	}
	w.writeMember(name, encoded)
}

// optional emits the field only when present is true, but still reserves
// the name so an extra member cannot shadow it.
func (w *envelopeWriter) optional(name string, value any, present bool) {
	w.reserved[name] = true
	if !present {
		return
	}
	w.field(name, value)
}

// extras appends every extra member whose key does not collide with an
// already-written fixed field.
func (w *envelopeWriter) extras(extra ExtraFields) {
	for _, key := range extra.Keys() {
		if w.reserved[key] {
			continue
		}
		value, _ := extra.Get(key)
		w.writeMember(key, value)
	}
}

func (w *envelopeWriter) writeMember(name string, raw json.RawMessage) {
	if w.err != nil {
		return
	}
	if w.count > 0 {
		w.buf.WriteByte(',')
	}
	encodedName, err := json.Marshal(name)
	if err != nil {
		w.err = err
		return
	}
	w.buf.Write(encodedName)
	w.buf.WriteByte(':')
	w.buf.Write(raw)
	w.count++
}

func (w *envelopeWriter) bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}

// decodeEnvelope walks the members of a JSON object in document order.
// The known callback consumes members it recognizes; everything else is
// captured into extra with its position preserved.
type memberDecoder func(key string, dec *json.Decoder) (bool, error)

func decodeEnvelope(data []byte, known memberDecoder, extra *ExtraFields) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}

		consumed, err := known(key, dec)
		if err != nil {
			return fmt.Errorf("decode field %s: %w", key, err)
		}
		if consumed {
			continue
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decode field %s: %w", key, err)
		}
		extra.Set(key, raw)
	}

	// Consume the closing brace.
	_, err = dec.Token()
	return err
}
