package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zarlcorp/zpin/internal/config"
	"github.com/zarlcorp/zpin/internal/identity"
	"github.com/zarlcorp/zpin/internal/pin"
)

// CmdGenerate builds a code from explicit person details.
func CmdGenerate(env *Env) *cobra.Command {
	var gender, date, details string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a code for a gender and birth date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := detailsFrom(gender, date, details)
			if err != nil {
				return err
			}

			code, err := env.Gen.Generate(d)
			if err != nil {
				return err
			}
			env.Logger.Debug("generated", "pin", code)

			return printCodes(cmd.OutOrStdout(), env, []string{code})
		},
	}

	cmd.Flags().StringVarP(&gender, "gender", "g", "", "male or female")
	cmd.Flags().StringVarP(&date, "date", "d", "", "birth date, YYYY-MM-DD")
	cmd.Flags().StringVar(&details, "details", "", `JSON person details, e.g. {"gender":"male","year":1986,"month":10,"day":15}`)
	cmd.MarkFlagsMutuallyExclusive("details", "gender")
	cmd.MarkFlagsMutuallyExclusive("details", "date")
	return cmd
}

func detailsFrom(gender, date, details string) (pin.Details, error) {
	if details != "" {
		var m map[string]any
		if err := json.Unmarshal([]byte(details), &m); err != nil {
			return pin.Details{}, fmt.Errorf("%w: --details: %v", pin.ErrArgument, err)
		}
		return identity.DetailsFromMap(m)
	}

	if gender == "" || date == "" {
		return pin.Details{}, fmt.Errorf("%w: --gender and --date are required", pin.ErrArgument)
	}

	g, err := pin.ParseGender(gender)
	if err != nil {
		return pin.Details{}, err
	}

	// parse the fields by hand so impossible dates report as such instead
	// of a layout error
	var y, m, d int
	r := strings.NewReader(date)
	if _, err := fmt.Fscanf(r, "%4d-%2d-%2d", &y, &m, &d); err != nil || r.Len() > 0 {
		return pin.Details{}, fmt.Errorf("%w: --date: want YYYY-MM-DD, got %q", pin.ErrArgument, date)
	}

	return pin.Details{Gender: g, Year: y, Month: m, Day: d}, nil
}

// CmdRandom generates codes for random birth dates.
func CmdRandom(env *Env) *cobra.Command {
	var gender string
	var count int

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Generate codes for random birth dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var g pin.Gender
			if gender != "" {
				var err error
				if g, err = pin.ParseGender(gender); err != nil {
					return err
				}
			}
			if count < 1 {
				return fmt.Errorf("%w: --count must be positive, got %d", pin.ErrArgument, count)
			}

			codes := make([]string, 0, count)
			for range count {
				code, err := env.Gen.Random(g)
				if err != nil {
					return err
				}
				codes = append(codes, code)
			}
			env.Logger.Debug("generated random codes", "count", len(codes))

			return printCodes(cmd.OutOrStdout(), env, codes)
		},
	}

	cmd.Flags().StringVarP(&gender, "gender", "g", "", "male or female, random when empty")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of codes")
	return cmd
}

// printCodes prints bare codes as text, or decoded records otherwise.
func printCodes(w io.Writer, env *Env, codes []string) error {
	records := make([]decoded, 0, len(codes))
	if env.Config.Output != config.OutputText {
		for _, code := range codes {
			d, err := decode(env, code)
			if err != nil {
				return err
			}
			records = append(records, d)
		}
	}

	return render(w, env.Config.Output, records, func(w io.Writer) {
		for _, code := range codes {
			fmt.Fprintln(w, code)
		}
	})
}
