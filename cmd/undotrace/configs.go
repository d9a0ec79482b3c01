package main

import (
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='color output'"`
	Plain bool `cli:"name=plain desc='never color output'"`

	Main *cli.Command
}

func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Plain {
		return false
	}
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type RunConfig struct {
	*MainConfig

	Diff bool `cli:"name=diff desc='show the document diff undone by each rollback'"`
	Gops bool `cli:"name=gops desc='start a gops diagnostics agent'"`

	Run *cli.Command
}
