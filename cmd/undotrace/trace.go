package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type palette struct {
	snapshot func(string, ...any) string
	rollback func(string, ...any) string
	commit   func(string, ...any) string
	edit     func(string, ...any) string
	ok       func(string, ...any) string
	fail     func(string, ...any) string
	warn     func(string, ...any) string
	del      func(string, ...any) string
	ins      func(string, ...any) string
}

func newPalette(colored bool) *palette {
	if !colored {
		return &palette{
			snapshot: fmt.Sprintf,
			rollback: fmt.Sprintf,
			commit:   fmt.Sprintf,
			edit:     fmt.Sprintf,
			ok:       fmt.Sprintf,
			fail:     fmt.Sprintf,
			warn:     fmt.Sprintf,
			del:      fmt.Sprintf,
			ins:      fmt.Sprintf,
		}
	}
	color.NoColor = false
	return &palette{
		snapshot: color.CyanString,
		rollback: color.RGB(255, 0, 196).SprintfFunc(),
		commit:   color.BlueString,
		edit:     color.RGB(128, 216, 236).SprintfFunc(),
		ok:       color.GreenString,
		fail:     color.New(color.FgRed, color.Bold).SprintfFunc(),
		warn:     color.YellowString,
		del:      color.RedString,
		ins:      color.GreenString,
	}
}

// writeDiff writes a line diff of two JSON documents.
func writeDiff(w io.Writer, pal *palette, from, to string) error {
	a, err := indent(from)
	if err != nil {
		return err
	}
	b, err := indent(to)
	if err != nil {
		return err
	}
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			line = strings.TrimSuffix(line, "\n")
			switch d.Type {
			case diffpatch.DiffDelete:
				fmt.Fprintln(w, pal.del("  - %s", line))
			case diffpatch.DiffInsert:
				fmt.Fprintln(w, pal.ins("  + %s", line))
			case diffpatch.DiffEqual:
				fmt.Fprintf(w, "    %s\n", line)
			}
		}
	}
	return nil
}

func indent(doc string) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := json.Indent(buf, []byte(doc), "", "  "); err != nil {
		return "", err
	}
	buf.WriteByte('\n')
	return buf.String(), nil
}
