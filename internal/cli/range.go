package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/zarlcorp/zpin/internal/config"
	"github.com/zarlcorp/zpin/internal/identity"
)

// CmdRange enumerates every code issuable for a range of birth dates.
func CmdRange(env *Env) *cobra.Command {
	var from, to string
	var limit int

	cmd := &cobra.Command{
		Use:   "range",
		Short: "List every possible code for a range of birth dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, err := parseDate("from", from)
			if err != nil {
				return err
			}
			end := start
			if to != "" {
				if end, err = parseDate("to", to); err != nil {
					return err
				}
			}

			it, err := identity.Range(start, end)
			if err != nil {
				return err
			}
			env.Logger.Debug("range", "from", start.Format(dateLayout), "to", end.Format(dateLayout),
				"total", identity.RangeCount(start, end), "limit", limit)

			// text streams; structured formats need the whole list
			if env.Config.Output == config.OutputText {
				return streamRange(cmd.OutOrStdout(), it, limit)
			}

			codes := []string{}
			for code := range it.All() {
				if limit > 0 && len(codes) == limit {
					break
				}
				codes = append(codes, code)
			}
			return render(cmd.OutOrStdout(), env.Config.Output, codes, nil)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first birth date, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last birth date, YYYY-MM-DD (defaults to --from)")
	cmd.Flags().IntVarP(&limit, "limit", "n", env.Config.RangeLimit, "stop after this many codes, 0 for all")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func streamRange(w io.Writer, it *identity.RangeIterator, limit int) error {
	bw := bufio.NewWriter(w)
	n := 0
	for code, ok := it.Next(); ok; code, ok = it.Next() {
		if limit > 0 && n == limit {
			break
		}
		fmt.Fprintln(bw, code)
		n++
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
