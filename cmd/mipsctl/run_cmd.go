package mipsctl

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"mipssim/asm"
	"mipssim/sim"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "assemble and execute a .asm source file to completion",
		ArgsUsage: "<source.asm>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "cooperative",
				Usage: "use single-goroutine cooperative scheduling instead of the default concurrent mode",
			},
			&cli.Float64Flag{
				Name:  "speed",
				Value: 1,
				Usage: "scheduler speed factor (higher runs faster); only affects concurrent mode",
			},
			&cli.IntFlag{
				Name:  "max-steps",
				Value: 1_000_000,
				Usage: "safety cap on the number of instructions to execute",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return cli.Exit("missing source file argument", 1)
			}
			log := loggerFromContext(c)

			src, err := os.ReadFile(c.Args().First())
			if err != nil {
				return fmt.Errorf("reading %s: %w", c.Args().First(), err)
			}

			result := asm.Assemble(string(src))
			if result.HadErrors {
				return cli.Exit("refusing to run a program that failed to assemble", 1)
			}

			opts := []sim.Option{sim.WithLogger(log), sim.WithSpeed(c.Float64("speed"))}
			if c.Bool("cooperative") {
				opts = append(opts, sim.WithScheduling(sim.Cooperative))
			}
			eng := sim.NewEngine(result.MachineCode, result.ExitPoints, opts...)

			steps := 0
			maxSteps := c.Int("max-steps")
			for steps < maxSteps {
				if err := eng.Step(); err != nil {
					if errors.Is(err, sim.ErrHalted) {
						break
					}
					return err
				}
				steps++
			}

			printSnapshot(eng.Snapshot(), steps)
			return nil
		},
	}
}

func printSnapshot(s sim.Snapshot, steps int) {
	fmt.Printf("halted after %d instructions at word index %d\n", steps, s.PC)
	fmt.Println("registers:")
	for i, v := range s.Registers {
		fmt.Printf("  $%-2d = %d\n", i, v)
	}
	if s.RegUpdated {
		fmt.Printf("last register write: $%d\n", s.ChangedRegIndex)
	}
	if s.DataUpdated {
		fmt.Printf("last data memory write: word %d\n", s.ChangedDMIndex)
	}
}
