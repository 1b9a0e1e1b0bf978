package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zarlcorp/zpin/internal/identity"
	"github.com/zarlcorp/zpin/internal/pin"
)

type decoded struct {
	PIN       string `json:"pin" yaml:"pin"`
	Gender    string `json:"gender" yaml:"gender"`
	BirthDate string `json:"birth_date" yaml:"birth_date"`
	Century   int    `json:"century" yaml:"century"`
	Serial    string `json:"serial" yaml:"serial"`
	Age       int    `json:"age" yaml:"age"`
	UnderAge  bool   `json:"under_age" yaml:"under_age"`
	Pensioner bool   `json:"pensioner" yaml:"pensioner"`
}

func decode(env *Env, code string) (decoded, error) {
	id, err := identity.Describe(code)
	if err != nil {
		return decoded{}, err
	}
	now := env.Now()
	underAge, err := pin.IsUnderAge(code, now, env.Config.UnderAgeLimit)
	if err != nil {
		return decoded{}, err
	}
	pensioner, err := pin.IsPensioner(code, now, env.Config.PensionAge)
	if err != nil {
		return decoded{}, err
	}
	return decoded{
		PIN:       id.PIN,
		Gender:    id.Gender.String(),
		BirthDate: id.BirthDate.Format(dateLayout),
		Century:   id.Century,
		Serial:    id.Serial,
		Age:       id.Age(now),
		UnderAge:  underAge,
		Pensioner: pensioner,
	}, nil
}

// CmdParse prints the decoded fields of a valid code.
func CmdParse(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <pin>",
		Short: "Decode gender, birth date and serial number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := decode(env, strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), env.Config.Output, d, func(w io.Writer) {
				printDecoded(w, d)
			})
		},
	}
}

func printDecoded(w io.Writer, d decoded) {
	fmt.Fprintf(w, "  pin:       %s\n", d.PIN)
	fmt.Fprintf(w, "  gender:    %s\n", d.Gender)
	fmt.Fprintf(w, "  born:      %s\n", d.BirthDate)
	fmt.Fprintf(w, "  serial:    %s\n", d.Serial)
	fmt.Fprintf(w, "  age:       %d\n", d.Age)
	fmt.Fprintf(w, "  under age: %s\n", yesNo(d.UnderAge))
	fmt.Fprintf(w, "  pensioner: %s\n", yesNo(d.Pensioner))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// CmdChecksum prints the control digit for a ten digit prefix. Longer
// input is truncated to its first ten digits.
func CmdChecksum(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "checksum <prefix>",
		Short: "Compute the control digit of a code prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := strings.TrimSpace(args[0])
			if len(prefix) > pin.Length {
				return fmt.Errorf("%w: %q: at most %d digits", pin.ErrFormat, prefix, pin.Length)
			}
			c, err := pin.Checksum(prefix)
			if err != nil {
				return err
			}
			out := struct {
				Prefix   string `json:"prefix" yaml:"prefix"`
				Checksum int    `json:"checksum" yaml:"checksum"`
				PIN      string `json:"pin" yaml:"pin"`
			}{prefix[:10], c, fmt.Sprintf("%s%d", prefix[:10], c)}

			return render(cmd.OutOrStdout(), env.Config.Output, out, func(w io.Writer) {
				fmt.Fprintln(w, c)
			})
		},
	}
}
