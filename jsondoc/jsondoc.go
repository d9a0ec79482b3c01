package jsondoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Kobzol/ena/debug"
	"github.com/Kobzol/ena/undolog"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"
)

var ErrNotObject = errors.New("document is not a JSON object")

// Undo restores a document to its state before one edit.
type Undo struct {
	// Before is the normalized document before the edit.
	Before json.RawMessage
	// Patch is the reverse JSON merge patch, for inspection only.
	Patch json.RawMessage
}

type Doc struct {
	data []byte
	log  undolog.Snapshots[Undo]
}

// New creates a document from JSON text, which must be an object.
func New(data []byte) (*Doc, error) {
	return NewWithLog(data, undolog.NewVecLog[Undo]())
}

// NewWithLog is like New but records edits in log.
func NewWithLog(data []byte, log undolog.Snapshots[Undo]) (*Doc, error) {
	norm, err := normalize(data)
	if err != nil {
		return nil, err
	}
	return &Doc{data: norm, log: log}, nil
}

// FromYAML creates a document from YAML text, which must be a mapping.
func FromYAML(data []byte) (*Doc, error) {
	j, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("error converting yaml: %w", err)
	}
	return New(j)
}

// Bytes returns the normalized JSON text of d. The result must not be
// modified.
func (d *Doc) Bytes() []byte {
	return d.data
}

func (d *Doc) String() string {
	return string(d.data)
}

// Value decodes the document.
func (d *Doc) Value() (map[string]any, error) {
	var res map[string]any
	dec := json.NewDecoder(bytes.NewReader(d.data))
	dec.UseNumber()
	if err := dec.Decode(&res); err != nil {
		return nil, err
	}
	return res, nil
}

// Patch applies an RFC 6902 JSON Patch. On error d is unchanged.
func (d *Doc) Patch(ops []byte) error {
	p, err := jsonpatch.DecodePatch(ops)
	if err != nil {
		return fmt.Errorf("invalid json patch: %w", err)
	}
	after, err := p.Apply(d.data)
	if err != nil {
		return fmt.Errorf("error applying json patch: %w", err)
	}
	return d.replace(after)
}

// Merge applies an RFC 7386 JSON Merge Patch. On error d is unchanged.
func (d *Doc) Merge(patch []byte) error {
	after, err := jsonpatch.MergePatch(d.data, patch)
	if err != nil {
		return fmt.Errorf("error applying merge patch: %w", err)
	}
	return d.replace(after)
}

func (d *Doc) replace(after []byte) error {
	after, err := normalize(after)
	if err != nil {
		return err
	}
	if bytes.Equal(after, d.data) {
		return nil
	}
	if d.log.InSnapshot() {
		rev, err := jsonpatch.CreateMergePatch(after, d.data)
		if err != nil {
			return fmt.Errorf("error creating reverse patch: %w", err)
		}
		if debug.Host() {
			debug.Logf("jsondoc: record %s\n", json.RawMessage(rev))
		}
		d.log.Push(Undo{Before: d.data, Patch: rev})
	}
	d.data = after
	return nil
}

func (d *Doc) NumOpenSnapshots() int {
	return d.log.NumOpenSnapshots()
}

func (d *Doc) StartSnapshot() undolog.Snapshot {
	return d.log.StartSnapshot()
}

func (d *Doc) HasChanges(s undolog.Snapshot) bool {
	return d.log.HasChanges(s)
}

// Undos returns the reverse patches recorded since s, oldest first.
func (d *Doc) Undos(s undolog.Snapshot) []Undo {
	return d.log.ActionsSinceSnapshot(s)
}

func (d *Doc) RollbackTo(s undolog.Snapshot) {
	d.log.RollbackTo(undolog.Target[Undo](d), s)
}

func (d *Doc) Commit(s undolog.Snapshot) {
	d.log.Commit(s)
}

// Reverse restores the document as it was before one edit. It is called by
// the undo log during rollback.
func (d *Doc) Reverse(u Undo) {
	if debug.Host() {
		debug.Logf("jsondoc: reverse %s\n", u.Patch)
	}
	d.data = u.Before
}

func normalize(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("invalid json: trailing data")
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	dropNulls(obj)
	return json.Marshal(obj)
}

func dropNulls(obj map[string]any) {
	for k, v := range obj {
		switch x := v.(type) {
		case nil:
			delete(obj, k)
		case map[string]any:
			dropNulls(x)
		}
	}
}
