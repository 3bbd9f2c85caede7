package mipsctl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"mipssim/asm"
)

func assembleCommand() *cli.Command {
	return &cli.Command{
		Name:      "assemble",
		Aliases:   []string{"as"},
		Usage:     "assemble a .asm source file into machine code and a listing",
		ArgsUsage: "<source.asm>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "out",
				Usage: "output directory (defaults to the source file's directory)",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return cli.Exit("missing source file argument", 1)
			}
			log := loggerFromContext(c)
			return assembleFile(c.Args().First(), c.String("out"), log)
		},
	}
}

func assembleFile(path, outDir string, log *zap.SugaredLogger) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	result := asm.Assemble(string(src))
	log.Infow("assembled", "file", path, "instructions", len(result.MachineCode), "errors", result.HadErrors)

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(path)
	}

	mcPath := filepath.Join(dir, base+".mc")
	lstPath := filepath.Join(dir, base+".lst")

	if err := os.WriteFile(mcPath, []byte(result.MachineCodeFile()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", mcPath, err)
	}
	if err := os.WriteFile(lstPath, []byte(result.ListingFile()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", lstPath, err)
	}

	if result.HadErrors {
		return cli.Exit(fmt.Sprintf("%s assembled with errors, see %s", path, lstPath), 1)
	}
	return nil
}
