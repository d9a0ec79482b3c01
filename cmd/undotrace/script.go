package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/Kobzol/ena/jsondoc"
	"github.com/Kobzol/ena/undolog"

	"github.com/expr-lang/expr"
	"github.com/goccy/go-yaml"
)

var (
	errScript      = errors.New("invalid script")
	errCheckFailed = errors.New("check failed")
)

// Script is a document and the steps to run against it.
type Script struct {
	Doc   any    `yaml:"doc"`
	Steps []Step `yaml:"steps"`
}

// Step holds exactly one action.
type Step struct {
	Snapshot string `yaml:"snapshot"`
	Rollback string `yaml:"rollback"`
	Commit   string `yaml:"commit"`
	Patch    any    `yaml:"patch"`
	Merge    any    `yaml:"merge"`
	Check    string `yaml:"check"`
}

func (s *Step) validate() error {
	n := 0
	for _, set := range []bool{
		s.Snapshot != "",
		s.Rollback != "",
		s.Commit != "",
		s.Patch != nil,
		s.Merge != nil,
		s.Check != "",
	} {
		if set {
			n++
		}
	}
	if n != 1 {
		return fmt.Errorf("%w: step must have exactly one action, got %d", errScript, n)
	}
	return nil
}

type openSnapshot struct {
	name string
	snap undolog.Snapshot
}

type tracer struct {
	w    io.Writer
	pal  *palette
	diff bool
	doc  *jsondoc.Doc
	open []openSnapshot
}

func parseScript(d []byte) (*Script, error) {
	s := &Script{}
	if err := yaml.Unmarshal(d, s); err != nil {
		return nil, fmt.Errorf("%w: %w", errScript, err)
	}
	for i := range s.Steps {
		if err := s.Steps[i].validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return s, nil
}

func runScript(w io.Writer, d []byte, pal *palette, diff bool) error {
	s, err := parseScript(d)
	if err != nil {
		return err
	}
	docJSON := []byte("{}")
	if s.Doc != nil {
		docJSON, err = toJSON(s.Doc)
		if err != nil {
			return fmt.Errorf("%w: doc: %w", errScript, err)
		}
	}
	doc, err := jsondoc.New(docJSON)
	if err != nil {
		return fmt.Errorf("%w: doc: %w", errScript, err)
	}
	t := &tracer{w: w, pal: pal, diff: diff, doc: doc}
	for i := range s.Steps {
		if err := t.step(&s.Steps[i]); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	if n := len(t.open); n > 0 {
		fmt.Fprintln(w, pal.warn("%d snapshot(s) left open", n))
	}
	fmt.Fprintf(w, "doc %s\n", doc)
	return nil
}

func (t *tracer) step(s *Step) error {
	switch {
	case s.Snapshot != "":
		return t.snapshot(s.Snapshot)
	case s.Rollback != "":
		return t.rollback(s.Rollback)
	case s.Commit != "":
		return t.commit(s.Commit)
	case s.Patch != nil:
		return t.edit("patch", s.Patch, t.doc.Patch)
	case s.Merge != nil:
		return t.edit("merge", s.Merge, t.doc.Merge)
	default:
		return t.check(s.Check)
	}
}

func (t *tracer) snapshot(name string) error {
	if slices.ContainsFunc(t.open, func(o openSnapshot) bool { return o.name == name }) {
		return fmt.Errorf("%w: snapshot %q is already open", errScript, name)
	}
	t.open = append(t.open, openSnapshot{name: name, snap: t.doc.StartSnapshot()})
	fmt.Fprintln(t.w, t.pal.snapshot("snapshot %s depth=%d", name, len(t.open)))
	return nil
}

// pop removes the innermost snapshot, which must be called name.
func (t *tracer) pop(name string) (undolog.Snapshot, error) {
	if len(t.open) == 0 {
		return undolog.Snapshot{}, fmt.Errorf("%w: no open snapshot for %q", errScript, name)
	}
	top := t.open[len(t.open)-1]
	if top.name != name {
		return undolog.Snapshot{}, fmt.Errorf("%w: %q is not the innermost open snapshot (%q)", errScript, name, top.name)
	}
	t.open = t.open[:len(t.open)-1]
	return top.snap, nil
}

func (t *tracer) rollback(name string) error {
	s, err := t.pop(name)
	if err != nil {
		return err
	}
	before := t.doc.String()
	n := len(t.doc.Undos(s))
	t.doc.RollbackTo(s)
	fmt.Fprintln(t.w, t.pal.rollback("rollback %s undone=%d depth=%d", name, n, len(t.open)))
	if t.diff && n > 0 {
		if err := writeDiff(t.w, t.pal, before, t.doc.String()); err != nil {
			return err
		}
	}
	return nil
}

func (t *tracer) commit(name string) error {
	s, err := t.pop(name)
	if err != nil {
		return err
	}
	n := len(t.doc.Undos(s))
	t.doc.Commit(s)
	fmt.Fprintln(t.w, t.pal.commit("commit %s kept=%d depth=%d", name, n, len(t.open)))
	return nil
}

func (t *tracer) edit(kind string, v any, apply func([]byte) error) error {
	d, err := toJSON(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", errScript, kind, err)
	}
	if err := apply(d); err != nil {
		return err
	}
	fmt.Fprintln(t.w, t.pal.edit("%s %s", kind, d))
	return nil
}

func (t *tracer) check(src string) error {
	env, err := t.env()
	if err != nil {
		return err
	}
	prg, err := expr.Compile(src, expr.Env(env), expr.AsBool())
	if err != nil {
		return fmt.Errorf("%w: check %q: %w", errScript, src, err)
	}
	res, err := expr.Run(prg, env)
	if err != nil {
		return fmt.Errorf("check %q: %w", src, err)
	}
	if ok, _ := res.(bool); !ok {
		fmt.Fprintln(t.w, t.pal.fail("check %s: FAIL", src))
		return fmt.Errorf("%w: %s", errCheckFailed, src)
	}
	fmt.Fprintln(t.w, t.pal.ok("check %s: ok", src))
	return nil
}

// env is the environment check expressions run in:
//
//   - doc: the current document
//   - depth: the number of open snapshots
//   - changes: the number of edits recorded since the innermost snapshot
func (t *tracer) env() (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(t.doc.Bytes(), &doc); err != nil {
		return nil, err
	}
	changes := 0
	if n := len(t.open); n > 0 {
		changes = len(t.doc.Undos(t.open[n-1].snap))
	}
	return map[string]any{
		"doc":     doc,
		"depth":   len(t.open),
		"changes": changes,
	}, nil
}

func toJSON(v any) ([]byte, error) {
	y, err := yaml.Marshal(v)
	if err != nil {
		return nil, err
	}
	j, err := yaml.YAMLToJSON(y)
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(nil)
	if err := json.Compact(buf, j); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
