package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zarlcorp/zpin/internal/scan"
)

type found struct {
	Source string `json:"source" yaml:"source"`
	scan.Match `yaml:",inline"`
}

// CmdScan finds codes in files, or stdin when no files are given.
func CmdScan(env *Env) *cobra.Command {
	var (
		all    bool
		redact bool
	)

	cmd := &cobra.Command{
		Use:   "scan [file...]",
		Short: "Find codes in text; reads stdin when no files are given",
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := readSources(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			if redact {
				for _, s := range sources {
					fmt.Fprint(cmd.OutOrStdout(), scan.Redact(s.text, '*'))
				}
				return nil
			}

			results := []found{}
			for _, s := range sources {
				matches := scan.Valid(s.text)
				if all {
					matches = scan.Find(s.text)
				}
				for _, m := range matches {
					results = append(results, found{Source: s.name, Match: m})
				}
				env.Logger.Debug("scanned", "source", s.name, "matches", len(matches))
			}

			return render(cmd.OutOrStdout(), env.Config.Output, results, func(w io.Writer) {
				for _, r := range results {
					status := "ok"
					if !r.Valid {
						status = "invalid " + r.Kind
					}
					fmt.Fprintf(w, "%s:%d  %s  %s\n", r.Source, r.Offset, r.PIN, status)
				}
			})
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include eleven digit runs that fail validation")
	cmd.Flags().BoolVar(&redact, "redact", false, "print the input with valid codes masked")
	cmd.MarkFlagsMutuallyExclusive("all", "redact")
	return cmd
}

type source struct {
	name string
	text string
}

func readSources(stdin io.Reader, files []string) ([]source, error) {
	if len(files) == 0 {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []source{{name: "-", text: string(b)}}, nil
	}

	sources := make([]source, 0, len(files))
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", strings.TrimSpace(f), err)
		}
		sources = append(sources, source{name: f, text: string(b)})
	}
	return sources, nil
}
