package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/zarlcorp/zpin/internal/config"
	"gopkg.in/yaml.v3"
)

// render writes v in the requested format. Text output uses the text
// callback, or one fmt.Println per value when it is nil.
func render(w io.Writer, format string, v any, text func(io.Writer)) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	default:
		if text != nil {
			text(w)
			return nil
		}
		fmt.Fprintln(w, v)
	}
	return nil
}
