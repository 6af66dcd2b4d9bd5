package mysql

import (
	"fmt"
	"io"
	"os"
)

// Emitter stitches CREATE TABLE, INSERT, ALTER TABLE, and CREATE VIEW
// fragments into a single ordered output stream, the way the SQL Emitter
// stage is described: an append-only script, statements concatenated in a
// defined order, per schema then per set.
type Emitter struct {
	w      io.Writer
	closer io.Closer
}

// NewEmitter wraps an already-open writer. The caller remains responsible
// for closing it; use NewFileEmitter when the Emitter itself should own the
// file handle.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// NewFileEmitter creates (or truncates) path and returns an Emitter that
// closes the file when Close is called.
func NewFileEmitter(path string) (*Emitter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("mysql: opening sql output %q: %w", path, err)
	}
	return &Emitter{w: f, closer: f}, nil
}

// WriteFragment appends a statement fragment verbatim, followed by one
// newline. An empty fragment writes nothing.
func (e *Emitter) WriteFragment(fragment string) error {
	if fragment == "" {
		return nil
	}
	if _, err := io.WriteString(e.w, fragment); err != nil {
		return err
	}
	_, err := io.WriteString(e.w, "\n")
	return err
}

// Close releases the underlying file handle, if the Emitter owns one. It is
// safe to call on an Emitter built with NewEmitter.
func (e *Emitter) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}
