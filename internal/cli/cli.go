// Package cli implements zpin's command-line subcommands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/zarlcorp/zpin/internal/config"
	"github.com/zarlcorp/zpin/internal/identity"
)

// Env carries the dependencies shared by every subcommand.
type Env struct {
	Version string
	Config  config.Config
	Gen     *identity.Generator
	Now     func() time.Time
	Logger  *slog.Logger
}

// ErrInvalid is returned by validate when at least one code fails.
var ErrInvalid = errors.New("invalid code")

const dateLayout = "2006-01-02"

// New builds the root command with every subcommand attached.
func New(env *Env) *cobra.Command {
	if env.Now == nil {
		env.Now = time.Now
	}
	if env.Logger == nil {
		env.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if env.Gen == nil {
		env.Gen = identity.New(identity.WithClock(env.Now), identity.WithSpan(env.Config.RandomYears))
	}

	root := &cobra.Command{
		Use:           "zpin",
		Short:         "Validate, decode and generate Estonian personal identification codes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if !config.ValidOutput(env.Config.Output) {
				return fmt.Errorf("output must be %s, %s or %s, got %q",
					config.OutputText, config.OutputJSON, config.OutputYAML, env.Config.Output)
			}
			return nil
		},
	}

	output := env.Config.Output
	if output == "" {
		output = config.OutputText
	}
	root.PersistentFlags().StringVarP(&env.Config.Output, "output", "o", output, "output format: text, json or yaml")

	root.AddCommand(
		CmdVersion(env),
		CmdValidate(env),
		CmdParse(env),
		CmdChecksum(env),
		CmdGenerate(env),
		CmdRandom(env),
		CmdRange(env),
		CmdScan(env),
	)

	return root
}

// CmdVersion prints the build version.
func CmdVersion(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "zpin %s\n", env.Version)
		},
	}
}

func parseDate(flag, s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: want YYYY-MM-DD, got %q", flag, s)
	}
	return t, nil
}
