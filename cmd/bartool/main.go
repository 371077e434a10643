package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/DevStar234/nautilus-trader/internal/dbg"
	"github.com/DevStar234/nautilus-trader/pkg/utility"
)

const Version = "0.1.0"

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, env environment, args []string) error
}

// environment is what every command gets besides its own flags.
type environment struct {
	cfg    config
	logger *zap.Logger
	out    io.Writer
}

var commands = []command{
	{"parse", "parse <bar_type>...", runParse},
	{"size", "size -instrument SYMBOL -entry PRICE -stop PRICE -equity AMOUNT -risk FRACTION", runSize},
	{"replay", "replay -bar-type BAR_TYPE [-from RFC3339] [-to RFC3339] [-out FILE.parquet]", runReplay},
	{"import", "import -in FILE.parquet", runImport},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("bartool", flag.ContinueOnError)
	flags.SetOutput(stderr)
	envFile := flags.String("env", ".env", "optional env file")
	flags.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "bartool %s\n\nusage: bartool [-env FILE] <command> [flags]\n\n", Version)
		for _, c := range commands {
			_, _ = fmt.Fprintf(stderr, "  %s\n", c.usage)
		}
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return 2
	}

	cfg, err := loadConfig(*envFile)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "unable to load env file: %v\n", err)
		return 1
	}

	logger, err := dbg.NewLogger(cfg.LogLevel, cfg.DevLog)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	logger = logger.With(utility.ExecutionField())
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	name := flags.Arg(0)
	for _, c := range commands {
		if c.name != name {
			continue
		}
		logger.Debug("running command", zap.String("command", name), zap.String("version", Version))
		if err := c.run(ctx, environment{cfg: cfg, logger: logger, out: stdout}, flags.Args()[1:]); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return 2
			}
			logger.Error("command failed", zap.String("command", name), zap.Error(err))
			return 1
		}
		return 0
	}

	_, _ = fmt.Fprintf(stderr, "unknown command %q\n", name)
	flags.Usage()
	return 2
}
