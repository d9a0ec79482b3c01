package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"
)

func run(cfg *RunConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Run.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: run requires at least one script", cli.ErrUsage)
	}
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
		} else {
			defer agent.Close()
		}
	}
	pal := newPalette(cfg.useColor(cc.Out))
	for i, file := range args {
		d, err := readScript(cc, file)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(cc.Out, "---")
		}
		err = runScript(cc.Out, d, pal, cfg.Diff)
		if errors.Is(err, errCheckFailed) {
			fmt.Fprintf(cc.Out, "%s: %v\n", file, err)
			return cli.ExitCodeErr(1)
		}
		if err != nil {
			return fmt.Errorf("error running %s: %w", file, err)
		}
	}
	return nil
}

func readScript(cc *cli.Context, file string) ([]byte, error) {
	if file == "-" {
		d, err := io.ReadAll(cc.In)
		if err != nil {
			return nil, fmt.Errorf("error reading stdin: %w", err)
		}
		return d, nil
	}
	d, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", file, err)
	}
	return d, nil
}
