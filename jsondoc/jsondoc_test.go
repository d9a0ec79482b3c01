package jsondoc

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Kobzol/ena/debug"
	"github.com/Kobzol/ena/undolog"
)

func mustNew(t *testing.T, s string) *Doc {
	t.Helper()
	d, err := New([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestNewNormalizes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{}`, `{}`},
		{`{"b": 1, "a": 2}`, `{"a":2,"b":1}`},
		{`{"a": {"c": null, "d": 1}, "b": null}`, `{"a":{"d":1}}`},
		{`{"a": [null, {"x": null}]}`, `{"a":[null,{"x":null}]}`},
		{`{"n": 12345678901234567890}`, `{"n":12345678901234567890}`},
	}
	for _, tt := range tests {
		d := mustNew(t, tt.in)
		if got := d.String(); got != tt.want {
			t.Errorf("New(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New([]byte(`[1, 2]`)); !errors.Is(err, ErrNotObject) {
		t.Errorf("array: got %v, want ErrNotObject", err)
	}
	if _, err := New([]byte(`{"a":`)); err == nil {
		t.Errorf("truncated: expected error")
	}
	if _, err := New([]byte(`{} {}`)); err == nil {
		t.Errorf("trailing data: expected error")
	}
}

func TestFromYAML(t *testing.T) {
	d, err := FromYAML([]byte("name: a\nn: 1\nlist:\n  - x\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := d.String(), `{"list":["x"],"n":1,"name":"a"}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	v, err := d.Value()
	if err != nil {
		t.Fatal(err)
	}
	if v["name"] != "a" {
		t.Errorf("name = %v", v["name"])
	}
}

func TestPatchRollback(t *testing.T) {
	orig := `{"name":"a","tags":["x"]}`
	d := mustNew(t, orig)
	s := d.StartSnapshot()
	err := d.Patch([]byte(`[
		{"op": "replace", "path": "/name", "value": "b"},
		{"op": "add", "path": "/tags/-", "value": "y"}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := d.String(), `{"name":"b","tags":["x","y"]}`; got != want {
		t.Errorf("after patch %s, want %s", got, want)
	}
	if !d.HasChanges(s) || len(d.Undos(s)) != 1 {
		t.Errorf("expected one undo, got %d", len(d.Undos(s)))
	}
	d.RollbackTo(s)
	if got := d.String(); got != orig {
		t.Errorf("after rollback %s, want %s", got, orig)
	}
	if d.NumOpenSnapshots() != 0 {
		t.Errorf("open snapshots %d", d.NumOpenSnapshots())
	}
}

func TestNestedMerge(t *testing.T) {
	log := undolog.NewVecLog[Undo]()
	d, err := NewWithLog([]byte(`{"keep":true}`), log)
	if err != nil {
		t.Fatal(err)
	}
	outer := d.StartSnapshot()
	if err := d.Merge([]byte(`{"a":1}`)); err != nil {
		t.Fatal(err)
	}
	inner := d.StartSnapshot()
	if err := d.Merge([]byte(`{"b":{"c":2}}`)); err != nil {
		t.Fatal(err)
	}
	if err := d.Patch([]byte(`[{"op":"remove","path":"/a"}]`)); err != nil {
		t.Fatal(err)
	}
	if got, want := d.String(), `{"b":{"c":2},"keep":true}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	d.RollbackTo(inner)
	if got, want := d.String(), `{"a":1,"keep":true}`; got != want {
		t.Errorf("after inner rollback %s, want %s", got, want)
	}
	if log.Len() != 1 {
		t.Errorf("log len %d, want 1", log.Len())
	}
	d.Commit(outer)
	if log.Len() != 0 {
		t.Errorf("log len %d after root commit", log.Len())
	}
	if got, want := d.String(), `{"a":1,"keep":true}`; got != want {
		t.Errorf("after commit %s, want %s", got, want)
	}
}

func TestFailedEditLeavesDocument(t *testing.T) {
	orig := `{"name":"a"}`
	d := mustNew(t, orig)
	s := d.StartSnapshot()
	if err := d.Patch([]byte(`not json`)); err == nil {
		t.Errorf("expected decode error")
	}
	if err := d.Patch([]byte(`[{"op":"test","path":"/name","value":"zzz"}]`)); err == nil {
		t.Errorf("expected test op failure")
	}
	if d.String() != orig || d.HasChanges(s) {
		t.Errorf("failed edits changed the document: %s", d.String())
	}
	d.Commit(s)
}

func TestUnchangedEditNotRecorded(t *testing.T) {
	d := mustNew(t, `{"a":1}`)
	s := d.StartSnapshot()
	if err := d.Merge([]byte(`{"a":1}`)); err != nil {
		t.Fatal(err)
	}
	if d.HasChanges(s) {
		t.Errorf("no-op merge recorded an undo")
	}
	d.RollbackTo(s)
}

func TestEditsOutsideSnapshotNotRecorded(t *testing.T) {
	log := undolog.NewVecLog[Undo]()
	d, err := NewWithLog([]byte(`{}`), log)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Merge([]byte(`{"a":1}`)); err != nil {
		t.Fatal(err)
	}
	if log.Len() != 0 {
		t.Errorf("log len %d", log.Len())
	}
}

func TestRollbackRestoresExactly(t *testing.T) {
	tests := []struct {
		name string
		orig string
		edit func(*Doc) error
	}{
		{
			name: "int above 2^53",
			orig: `{"id":9007199254740993}`,
			edit: func(d *Doc) error { return d.Merge([]byte(`{"id":9007199254740992}`)) },
		},
		{
			name: "int above int64",
			orig: `{"id":12345678901234567890}`,
			edit: func(d *Doc) error { return d.Merge([]byte(`{"id":1}`)) },
		},
		{
			name: "null in array",
			orig: `{"a":[1,null]}`,
			edit: func(d *Doc) error { return d.Patch([]byte(`[{"op":"remove","path":"/a"}]`)) },
		},
		{
			name: "null member inside array",
			orig: `{"a":[{"b":null,"c":1}]}`,
			edit: func(d *Doc) error { return d.Merge([]byte(`{"a":2}`)) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustNew(t, tt.orig)
			if got := d.String(); got != tt.orig {
				t.Fatalf("loaded %s, want %s", got, tt.orig)
			}
			s := d.StartSnapshot()
			if err := tt.edit(d); err != nil {
				t.Fatal(err)
			}
			if !d.HasChanges(s) {
				t.Fatalf("edit not recorded")
			}
			if got := string(d.Undos(s)[0].Before); got != tt.orig {
				t.Errorf("recorded before %s, want %s", got, tt.orig)
			}
			d.RollbackTo(s)
			if got := d.String(); got != tt.orig {
				t.Errorf("after rollback %s, want %s", got, tt.orig)
			}
		})
	}
}

func TestHostTrace(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	old := debug.SetOutput(buf)
	defer debug.SetOutput(old)
	oldHost := debug.SetHost(true)
	defer debug.SetHost(oldHost)

	d := mustNew(t, `{"a":1}`)
	s := d.StartSnapshot()
	if err := d.Merge([]byte(`{"b":2}`)); err != nil {
		t.Fatal(err)
	}
	d.RollbackTo(s)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("trace %q, want 2 lines", buf.String())
	}
	if !strings.HasPrefix(lines[0], "jsondoc: record ") || !strings.Contains(lines[0], `"b":null`) {
		t.Errorf("record line %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "jsondoc: reverse ") {
		t.Errorf("reverse line %q", lines[1])
	}
}
