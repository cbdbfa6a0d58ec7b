package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"numtools/internal/config"
	"numtools/internal/console"
	"numtools/internal/numlist"
	"numtools/internal/observability"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "gapfinder",
		Usage:     "Sort a comma-separated list of integers and report the missing ones",
		ArgsUsage: "[NUMBERS]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
				EnvVars: []string{config.EnvLogLevel},
			},
		},
		Before: setupLogger,
		After: func(*cli.Context) error {
			observability.SyncLogger()
			return nil
		},
		Action: gapsCommand,
	}
}

func setupLogger(c *cli.Context) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	return observability.InitCLILogger(c.String("log-level"))
}

func gapsCommand(c *cli.Context) error {
	prompter := console.NewPrompter(c.App.Reader, c.App.Writer)

	input, err := prompter.Arg(c.Args().Slice(), 0, "Enter an integer: ")
	if err != nil {
		return err
	}

	nums, err := numlist.Parse(input)
	if err != nil {
		return err
	}

	sorted := numlist.Sorted(nums)

	observability.Logger.Debug("parsed number list",
		zap.Ints("numbers", nums),
		zap.Int("missing", numlist.CountMissing(sorted)),
	)

	out := c.App.Writer
	console.FoundNumbers(out, nums)
	console.NumberList(out, sorted)

	return console.MissingNumbers(out, numlist.Missing(sorted))
}
