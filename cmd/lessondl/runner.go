package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/handiism/lessondl/internal/config"
	"github.com/handiism/lessondl/internal/download"
	"github.com/handiism/lessondl/internal/logging"
	"github.com/urfave/cli/v3"
)

// Runner holds the dependencies shared by command actions.
type Runner struct {
	logger *log.Logger
	output io.Writer
	stderr io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Logger *log.Logger
	Output io.Writer
	Stderr io.Writer
}

// NewRunner creates a new Runner, filling unset options with defaults.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewLogger(opts.Stderr)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		logger: opts.Logger,
		output: opts.Output,
		stderr: opts.Stderr,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		getCommand, listCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadSettings applies, lowest to highest precedence: defaults, the
// settings file, .env and LESSONDL_* variables, then flags.
func (r *Runner) loadSettings(cmd *cli.Command) (*config.Settings, error) {
	config.LoadDotEnv()

	path := cmd.String("config")
	if path == "" {
		path = config.DefaultPath()
	}

	settings, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	settings.ApplyEnv()

	if cmd.IsSet("output") {
		settings.OutputPath = cmd.String("output")
	}
	if cmd.IsSet("base-url") {
		settings.BaseURL = cmd.String("base-url")
	}
	if cmd.IsSet("elggperm") {
		settings.Credentials.ElggPerm = cmd.String("elggperm")
	}
	if cmd.IsSet("session-id") {
		settings.Credentials.SessionID = cmd.String("session-id")
	}
	if cmd.IsSet("curl-file") {
		settings.Credentials.CurlFile = cmd.String("curl-file")
	}
	if cmd.IsSet("log-level") {
		settings.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("log-file") {
		settings.LogFile = cmd.String("log-file")
	}
	if cmd.IsSet("rate") {
		settings.RequestsPerSecond = cmd.Float("rate")
	}
	if cmd.IsSet("playlist") {
		settings.CreatePlaylist = cmd.Bool("playlist")
	}
	if cmd.IsSet("playlist-format") {
		settings.PlaylistFormat = cmd.String("playlist-format")
	}
	if cmd.IsSet("tags") {
		settings.ModifyTags = cmd.Bool("tags")
	}
	if cmd.IsSet("sanitize") {
		settings.SanitizeFileNames = cmd.Bool("sanitize")
	}
	if cmd.IsSet("probe") {
		settings.ProbeSizes = cmd.Bool("probe")
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// newRunLogger builds the loggers for one run from settings. The console
// logger prints transcript lines untouched; diag carries the run id for
// everything else. The returned closer releases the log file.
func (r *Runner) newRunLogger(settings *config.Settings) (console, diag *log.Logger, closer io.Closer, err error) {
	console, closer, err = logging.New(logging.Options{
		Level:  settings.LogLevel,
		Writer: r.stderr,
		File:   settings.LogFile,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	diag, _ = logging.WithRun(console)
	return logging.Transcript(console), diag, closer, nil
}

// progressLogger maps manager events onto logger calls. Info events are
// printed bare on console so the transcript reads exactly as the manager
// wrote it.
func progressLogger(console, diag *log.Logger) func(download.ProgressEvent) {
	return func(event download.ProgressEvent) {
		switch event.Level {
		case download.LevelVerbose:
			diag.Debug(event.Message)
		case download.LevelWarning:
			diag.Warn(event.Message)
		case download.LevelError:
			diag.Error(event.Message)
		case download.LevelSuccess:
			console.Info(event.Message)
		default:
			console.Print(event.Message)
		}
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(append(output, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	if _, err := fmt.Fprintf(r.output, format, args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
