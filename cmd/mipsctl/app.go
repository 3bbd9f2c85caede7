// Package mipsctl assembles and runs the MIPS single-cycle simulator's
// programs from the shell: no window, no GUI toolkit, just the two
// operations a front end would otherwise drive through package sim
// directly. The root main.go is a thin wrapper around Run.
package mipsctl

import (
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"mipssim/internal/obs"
)

func newApp() *cli.App {
	app := &cli.App{
		Name:  "mipsctl",
		Usage: "assemble and run programs against the MIPS single-cycle simulator",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug-level logging",
			},
		},
		Commands: []*cli.Command{
			assembleCommand(),
			runCommand(),
		},
	}
	return app
}

func loggerFromContext(c *cli.Context) *zap.SugaredLogger {
	return obs.New(c.Bool("verbose"))
}

// Run parses os.Args and dispatches to the assemble or run subcommand,
// returning the process exit code.
func Run() int {
	if err := newApp().Run(os.Args); err != nil {
		return 1
	}
	return 0
}
