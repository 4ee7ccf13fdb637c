package constants

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable that points at an overrides file.
const EnvPath = "THERMALVF_CONSTANTS"

// LoadOverrides merges a YAML mapping of KEY: value onto the registry. The
// whole document is validated before anything is applied. An empty document
// changes nothing.
func (r *Registry) LoadOverrides(rd io.Reader) (int, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return 0, fmt.Errorf("read overrides: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return 0, nil
	}

	var overrides map[string]float64
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return 0, fmt.Errorf("parse overrides: %w", err)
	}
	if err := r.Update(overrides); err != nil {
		return 0, err
	}
	return len(overrides), nil
}

// LoadFile reads overrides from path.
func (r *Registry) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open overrides: %w", err)
	}
	defer f.Close()

	n, err := r.LoadOverrides(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	slog.Info("loaded constant overrides", "path", path, "count", n)
	return nil
}

// Dump renders the current values as an overrides document, in display
// order, so it can be edited and loaded back.
func (r *Registry) Dump() ([]byte, error) {
	var doc yaml.Node
	doc.Kind = yaml.MappingNode
	for _, e := range r.Entries() {
		key := yaml.Node{Kind: yaml.ScalarNode, Value: e.Key}
		var val yaml.Node
		if err := val.Encode(e.Value); err != nil {
			return nil, err
		}
		val.LineComment = commentFor(e)
		doc.Content = append(doc.Content, &key, &val)
	}
	return yaml.Marshal(&doc)
}

func commentFor(e Entry) string {
	if e.Unit == "" {
		return e.Label
	}
	return fmt.Sprintf("%s [%s]", e.Label, e.Unit)
}
