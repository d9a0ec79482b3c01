package debug

import (
	"io"
	"os"
	"strconv"
)

type debug struct {
	Undo     bool
	Snapshot bool
	Host     bool
}

var (
	d   *debug
	out io.Writer = os.Stderr
)

func init() {
	d = &debug{}
	d.Undo = boolEnv("ENA_DEBUG_UNDO")
	d.Snapshot = boolEnv("ENA_DEBUG_SNAPSHOT")
	d.Host = boolEnv("ENA_DEBUG_HOST")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Undo reports whether rollbacks and commits are traced.
func Undo() bool {
	return d.Undo
}

// Snapshot reports whether snapshot creation is traced.
func Snapshot() bool {
	return d.Snapshot
}

// Host reports whether host level edits are traced.
func Host() bool {
	return d.Host
}

// SetUndo, SetSnapshot and SetHost override the environment, returning
// the previous setting.
func SetUndo(v bool) bool {
	old := d.Undo
	d.Undo = v
	return old
}

func SetSnapshot(v bool) bool {
	old := d.Snapshot
	d.Snapshot = v
	return old
}

func SetHost(v bool) bool {
	old := d.Host
	d.Host = v
	return old
}

// SetOutput redirects trace output, returning the previous writer.
func SetOutput(w io.Writer) io.Writer {
	old := out
	out = w
	return old
}
