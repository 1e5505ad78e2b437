package dump

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/goldif/pkg/config"
	"github.com/yaklabco/goldif/pkg/fsutil"
)

// Encode writes doc to w in the given format.
func Encode(w io.Writer, doc *Document, format config.DumpFormat) error {
	switch format {
	case config.DumpJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case config.DumpYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(config.YAMLIndent)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported dump format %q", format)
	}
}

// Marshal returns doc encoded in the given format.
func Marshal(doc *Document, format config.DumpFormat) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile atomically writes doc to path in the given format.
func WriteFile(ctx context.Context, path string, doc *Document, format config.DumpFormat) error {
	data, err := Marshal(doc, format)
	if err != nil {
		return err
	}
	return fsutil.WriteAtomic(ctx, path, data, 0)
}
