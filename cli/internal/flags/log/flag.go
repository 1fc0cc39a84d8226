// Package log provides the logging flags of the streamsx CLI.
//
// Besides format, level and destination, records can be restricted to the realms
// of the bindings that emit them (blob serialization, vcap service lookup).
package log

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yvchan/streamsx.topology/cli/internal/flags/enum"
)

const (
	FormatFlagName = "logformat"

	FormatJSON = "json"
	FormatText = "text"
)

const (
	LevelFlagName = "loglevel"

	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

const (
	OutputFlagName = "logoutput"

	OutputStdout = "stdout"
	OutputStderr = "stderr"
)

const (
	RealmFlagName = "logrealm"

	RealmBlob = "blob"
	RealmVCAP = "vcap"
)

var levels = map[string]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

// RegisterLoggingFlags registers the logging flags on flagset.
//
//	--logformat json --loglevel debug --logoutput stdout --logrealm vcap
func RegisterLoggingFlags(flagset *pflag.FlagSet) {
	enum.Var(flagset, FormatFlagName, []string{FormatText, FormatJSON}, `log record format
   text: key=value records for the console (default)
   json: one JSON object per record`)

	enum.Var(flagset, LevelFlagName, []string{LevelInfo, LevelDebug, LevelWarn, LevelError}, `minimum level of written records
   debug: includes serialization attempts and catalog lookups`)

	enum.Var(flagset, OutputFlagName, []string{OutputStderr, OutputStdout}, `log destination
   stderr keeps logs apart from command output (default)`)

	flagset.StringSlice(RealmFlagName, nil, fmt.Sprintf(`only write records of the given realms (%s, %s),
records without a realm are always written`, RealmBlob, RealmVCAP))
}

// Options is the logging configuration taken from the flags.
type Options struct {
	Format string
	Level  slog.Level
	Output string
	Realms []string
}

// OptionsFromCommand reads the logging flags of cmd.
func OptionsFromCommand(cmd *cobra.Command) (Options, error) {
	var opts Options
	var err error
	if opts.Format, err = enum.Get(cmd.Flags(), FormatFlagName); err != nil {
		return Options{}, fmt.Errorf("failed to get the log format from the command flag: %w", err)
	}
	if opts.Output, err = enum.Get(cmd.Flags(), OutputFlagName); err != nil {
		return Options{}, fmt.Errorf("failed to get the log output from the command flag: %w", err)
	}
	if opts.Level, err = loggerLevelFromCommand(cmd); err != nil {
		return Options{}, fmt.Errorf("failed to get log level: %w", err)
	}
	if opts.Realms, err = cmd.Flags().GetStringSlice(RealmFlagName); err != nil {
		return Options{}, fmt.Errorf("failed to get the log realms from the command flag: %w", err)
	}
	return opts, nil
}

// NewLogger creates the logger described by opts, writing to stdout or stderr depending on Output.
func (opts Options) NewLogger(stdout, stderr io.Writer) (*slog.Logger, error) {
	w := stderr
	if opts.Output == OutputStdout {
		w = stdout
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	var handler slog.Handler
	switch opts.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, handlerOpts)
	case FormatText:
		handler = slog.NewTextHandler(w, handlerOpts)
	default:
		return nil, fmt.Errorf("invalid log format: %s", opts.Format)
	}

	if len(opts.Realms) > 0 {
		handler = FilterRealms(handler, opts.Realms...)
	}
	return slog.New(handler), nil
}

// GetBaseLogger creates a slog.Logger based on the logging flags of cmd.
func GetBaseLogger(cmd *cobra.Command) (*slog.Logger, error) {
	opts, err := OptionsFromCommand(cmd)
	if err != nil {
		return nil, err
	}
	return opts.NewLogger(cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func loggerLevelFromCommand(cmd *cobra.Command) (slog.Level, error) {
	logLevel, err := enum.Get(cmd.Flags(), LevelFlagName)
	if err != nil {
		return slog.LevelInfo, err
	}
	level, ok := levels[logLevel]
	if !ok {
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", logLevel)
	}
	return level, nil
}
