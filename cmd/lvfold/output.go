package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvfold/fold"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// foldOutput is the serialized form of one fold.
type foldOutput struct {
	Sequence   string   `json:"sequence" yaml:"sequence"`
	Model      string   `json:"model" yaml:"model"`
	Optimum    float64  `json:"optimum" yaml:"optimum"`
	Count      string   `json:"count" yaml:"count"`
	Truncated  bool     `json:"truncated" yaml:"truncated"`
	Structures []string `json:"structures" yaml:"structures"`
}

func newFoldOutput(r fold.Result) foldOutput {
	return foldOutput{
		Sequence:   r.Sequence,
		Model:      r.Model,
		Optimum:    r.Optimum,
		Count:      r.Count.String(),
		Truncated:  r.Truncated,
		Structures: r.Structures,
	}
}

// render writes v as JSON or YAML, or calls text for the text format.
func render(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}

func writeFoldText(w io.Writer, r foldOutput) error {
	if _, err := fmt.Fprintf(w, "%s\nmodel: %s  optimum: %g  structures: %s\n", r.Sequence, r.Model, r.Optimum, r.Count); err != nil {
		return err
	}
	for _, db := range r.Structures {
		if _, err := fmt.Fprintln(w, db); err != nil {
			return err
		}
	}
	if r.Truncated {
		_, err := fmt.Fprintf(w, "... truncated after %d optimal structures\n", len(r.Structures))
		return err
	}

	return nil
}
