package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/shoal/internal/config"
	"github.com/llehouerou/shoal/internal/errmsg"
	"github.com/llehouerou/shoal/internal/music"
)

// Exit codes distinguishing load failures.
const (
	exitError        = 1
	exitInconsistent = 2
	exitUnavailable  = 3
)

const usage = `Usage: shoal [flags] <command> [args]

Commands:
  scan [--full]              refresh the media index from the library sources
  load [--artists]           build the library and print a summary
  exclude list               list excluded path prefixes
  exclude add <path>         exclude a path prefix from the library
  exclude remove <path>      stop excluding a path prefix
  watch [--metrics-addr a]   rescan and reload whenever the sources change

Flags:
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("shoal", flag.ContinueOnError)
	debug := fs.Bool("debug", false, "Enable debug logging")
	configPath := fs.String("config", "", "Config file (default: XDG config dir, then ./config.toml)")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpConfigLoad, err))
		return exitError
	}

	setupLogging(cfg, *debug)

	if fs.NArg() == 0 {
		fs.Usage()
		return exitError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(cfg)
	defer a.close()

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "scan":
		err = a.scanCmd(ctx, rest)
	case "load":
		err = a.loadCmd(ctx, rest)
	case "exclude":
		err = a.excludeCmd(ctx, rest)
	case "watch":
		err = a.watchCmd(ctx, rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		fs.Usage()
		return exitError
	}
	return exitCode(err)
}

func setupLogging(cfg *config.Config, debug bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(cfg.GetLogLevel())
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// cliError carries the user-facing message of a failed command.
type cliError struct {
	msg string
	err error
}

func (e *cliError) Error() string { return e.msg }
func (e *cliError) Unwrap() error { return e.err }

func fail(op errmsg.Op, err error) error {
	return &cliError{msg: errmsg.Format(op, err), err: err}
}

func failWith(op errmsg.Op, context string, err error) error {
	return &cliError{msg: errmsg.FormatWith(op, context, err), err: err}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, flag.ErrHelp) {
		return 0
	}
	fmt.Fprintln(os.Stderr, err)
	switch {
	case errors.Is(err, music.ErrInconsistent):
		return exitInconsistent
	case errors.Is(err, music.ErrIndexUnavailable):
		return exitUnavailable
	}
	return exitError
}
