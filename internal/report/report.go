// Package report defines the JSON snapshot documents written by the SC and
// tenure jobs and read back by the API.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TimestampLayout is the UTC second-precision form written to "updated".
const TimestampLayout = "2006-01-02T15:04:05Z"

// Timestamp is a time encoded with TimestampLayout.
type Timestamp struct {
	t time.Time
}

// At returns t as a second-precision UTC Timestamp.
func At(t time.Time) Timestamp {
	return Timestamp{t: t.UTC().Truncate(time.Second)}
}

// Now returns the current time as a Timestamp.
func Now() Timestamp {
	return At(time.Now())
}

// Time returns the underlying time.
func (t Timestamp) Time() time.Time { return t.t }

// MarshalText implements encoding.TextMarshaler.
func (t Timestamp) MarshalText() ([]byte, error) {
	return []byte(t.t.UTC().Format(TimestampLayout)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Timestamp) UnmarshalText(b []byte) error {
	parsed, err := time.Parse(TimestampLayout, string(b))
	if err != nil {
		return fmt.Errorf("parse timestamp: %w", err)
	}
	t.t = parsed
	return nil
}

// Marshal encodes v as 2-space indented JSON with a trailing newline.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes v to path, replacing any previous snapshot atomically so
// readers never see a partial document.
func WriteFile(path string, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

func readFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
