package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "undotrace").
		WithSynopsis("undotrace [opts] command [opts]").
		WithDescription("undotrace replays scripts of document edits, snapshots, rollbacks and commits.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return undotraceMain(cfg, cc, args)
		}).
		WithSubs(RunCommand(cfg))
}

func RunCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RunConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("run").
		WithAliases("r").
		WithSynopsis("run [-diff] [-gops] [files]").
		WithDescription("run trace scripts, '-' reads a script from stdin").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
	cfg.Run = cmd
	return cmd
}
