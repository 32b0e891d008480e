package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/lessondl/internal/logging"
	"github.com/urfave/cli/v3"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit code: 0 on success,
// 130 when interrupted, 1 on any other error.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logger := logging.NewLogger(stderr)

	runner := NewRunner(RunnerOpts{
		Logger: logger,
		Output: stdout,
		Stderr: stderr,
	})

	app := newApp(runner)
	if err := app.Run(ctx, args); err != nil {
		if ctx.Err() != nil {
			logger.Warn("interrupted")
			return 130
		}
		logger.Error("application error", "err", err)
		return 1
	}
	return 0
}

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "lessondl",
		Usage:     "Download lesson playlists from the audio library",
		Version:   version,
		Writer:    r.output,
		ErrWriter: r.stderr,
		Commands:  r.register(),
	}
}
