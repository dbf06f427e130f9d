// Command gscab assembles a folder of .asm score sources into a single
// .gsca score file, following the original toolchain's four-stage
// lex/pass-one/pass-two/save pipeline and its distinct exit code per stage.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/dgdev1024/gsca/asm"
	"github.com/dgdev1024/gsca/internal/ilog"
)

const (
	exitOK = iota
	exitLexError
	exitPassOneError
	exitPassTwoError
	exitSaveError
	exitUsage
)

func main() {
	app := cli.NewApp()
	app.Name = "gscab"
	app.Description = "Assembles a folder of .asm score sources into a .gsca file"
	app.Usage = "gscab [options] <folder> <output>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug-level logging",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
}

// run mirrors GSCAB's original Main.c exit-code contract: 0 on success,
// 1 on a lex failure, 2 on pass one, 3 on pass two, 4 on save. A missing
// folder/output argument prints usage and exits 0, matching the original's
// argc < 3 branch.
func run(c *cli.Context) error {
	logger := ilog.Setup(c.Bool("verbose"))

	if c.NArg() < 2 {
		cli.ShowAppHelp(c)
		os.Exit(exitOK)
	}

	folder := c.Args().Get(0)
	output := c.Args().Get(1)

	asm.SetLogger(logger)

	s, err := asm.AssembleFolder(folder)
	if err != nil {
		// asm.AssembleFolder's wrapped error distinguishes a lex failure
		// (asm: lexing ...) from a builder failure (asm: builder pass
		// one/two ...); the message prefix is how the original's separate
		// gscabLexFolder/gscabBuilderPassOne/gscabBuilderPassTwo return
		// values map onto Go's single combined error return.
		logger.Error("assembly failed", "folder", folder, "error", err)
		switch {
		case isLexError(err):
			os.Exit(exitLexError)
		case isPassOneError(err):
			os.Exit(exitPassOneError)
		default:
			os.Exit(exitPassTwoError)
		}
	}

	if err := s.WriteAudioFile(output); err != nil {
		logger.Error("saving assembled output failed", "output", output, "error", err)
		os.Exit(exitSaveError)
	}

	logger.Info("assembled score file written", "folder", folder, "output", output, "audio_count", s.Count())
	return nil
}

func isLexError(err error) bool {
	return hasPrefix(err.Error(), "asm: lexing")
}

func isPassOneError(err error) bool {
	return hasPrefix(err.Error(), "asm: builder pass one")
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
