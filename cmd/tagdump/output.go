package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// textRenderer is implemented by results with a custom text form.
type textRenderer interface {
	renderText(w io.Writer) error
}

func render(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}

		return enc.Close()
	case formatText, "":
		if tr, ok := v.(textRenderer); ok {
			return tr.renderText(w)
		}
		_, err := fmt.Fprintln(w, v)

		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
