package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zarlcorp/zpin/internal/pin"
)

type validation struct {
	PIN   string `json:"pin" yaml:"pin"`
	Valid bool   `json:"valid" yaml:"valid"`
	Kind  string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

func validateCode(code string) validation {
	v := validation{PIN: code, Valid: true}
	if err := pin.ValidateStrict(code); err != nil {
		v.Valid = false
		v.Kind = pin.Kind(err)
		v.Error = err.Error()
	}
	return v
}

// CmdValidate checks codes given as arguments, or one per line on stdin.
func CmdValidate(env *Env) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "validate [pin...]",
		Short: "Validate codes; reads stdin when no codes are given",
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := args
			if len(codes) == 0 {
				var err error
				codes, err = readLines(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}

			results := make([]validation, 0, len(codes))
			invalid := 0
			for _, code := range codes {
				v := validateCode(code)
				if !v.Valid {
					invalid++
					env.Logger.Debug("invalid code", "pin", code, "kind", v.Kind)
				}
				results = append(results, v)
			}

			if !quiet {
				err := render(cmd.OutOrStdout(), env.Config.Output, results, func(w io.Writer) {
					for _, v := range results {
						if v.Valid {
							fmt.Fprintf(w, "%s  ok\n", v.PIN)
						} else {
							fmt.Fprintf(w, "%s  invalid %s: %s\n", v.PIN, v.Kind, v.Error)
						}
					}
				})
				if err != nil {
					return err
				}
			}

			if invalid > 0 {
				return fmt.Errorf("%w: %d of %d failed validation", ErrInvalid, invalid, len(codes))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print nothing, report through the exit status")
	return cmd
}

// readLines returns the non-blank lines of r with surrounding space trimmed.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return lines, nil
}
