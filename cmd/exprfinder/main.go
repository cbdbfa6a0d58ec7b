package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"numtools/internal/config"
	"numtools/internal/console"
	"numtools/internal/exprsearch"
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
		Name:      "exprfinder",
		Usage:     "Combine a list of integers with + - * / to reach a target",
		ArgsUsage: "[NUMBERS [TARGET]]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
				EnvVars: []string{config.EnvLogLevel},
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
				EnvVars: []string{config.EnvConfigFile},
			},
			&cli.IntFlag{
				Name:  "max-operands",
				Usage: "Reject inputs with more numbers than this (0 = no limit)",
			},
			&cli.Int64Flag{
				Name:  "node-budget",
				Usage: "Abort after visiting this many search nodes (0 = no limit)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Abort the search after this long (0 = no limit)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of goroutines searching top-level branches",
			},
		},
		Before: setupLogger,
		After: func(*cli.Context) error {
			observability.SyncLogger()
			return nil
		},
		Action: expressionCommand,
	}
}

func setupLogger(c *cli.Context) error {
	return observability.InitCLILogger(c.String("log-level"))
}

// searchLimits starts unlimited, applies the config file and environment,
// and lets explicit flags override them.
func searchLimits(c *cli.Context) (config.Search, error) {
	cfg, err := config.LoadFrom(config.CLIDefault(), c.String("config"))
	if err != nil {
		return config.Search{}, err
	}
	limits := cfg.Search

	if c.IsSet("max-operands") {
		limits.MaxOperands = c.Int("max-operands")
	}
	if c.IsSet("node-budget") {
		limits.NodeBudget = c.Int64("node-budget")
	}
	if c.IsSet("timeout") {
		limits.Timeout = c.Duration("timeout")
	}
	if c.IsSet("workers") {
		limits.Workers = c.Int("workers")
	}

	return limits, nil
}

func parseTarget(s string) (float64, error) {
	target, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid target %q: %w", s, err)
	}
	if math.IsNaN(target) || math.IsInf(target, 0) {
		return 0, fmt.Errorf("invalid target %q", s)
	}
	return target, nil
}

func expressionCommand(c *cli.Context) error {
	limits, err := searchLimits(c)
	if err != nil {
		return err
	}

	args := c.Args().Slice()
	prompter := console.NewPrompter(c.App.Reader, c.App.Writer)

	input, err := prompter.Arg(args, 0, "Enter numbers: ")
	if err != nil {
		return err
	}
	rawTarget, err := prompter.Arg(args, 1, "Target Result: ")
	if err != nil {
		return err
	}

	target, err := parseTarget(rawTarget)
	if err != nil {
		return err
	}

	nums, err := numlist.Parse(input)
	if err != nil {
		return err
	}

	out := c.App.Writer
	console.FoundNumbers(out, nums)
	console.NumberList(out, nums)

	ctx := c.Context
	if limits.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, limits.Timeout)
		defer cancel()
	}

	engine := exprsearch.New(
		exprsearch.WithMaxOperands(limits.MaxOperands),
		exprsearch.WithNodeBudget(limits.NodeBudget),
		exprsearch.WithWorkers(limits.Workers),
		exprsearch.WithLogger(observability.Logger),
	)

	res, found, err := engine.Search(ctx, exprsearch.Leaves(nums), target)
	if err != nil {
		return err
	}

	observability.Logger.Info("search finished",
		zap.Bool("found", found),
		zap.Int64("nodes", res.Nodes),
	)

	console.Expression(out, res.Expr, found)

	return nil
}
