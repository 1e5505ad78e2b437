package dump

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/yaklabco/goldif/internal/logging"
	"github.com/yaklabco/goldif/pkg/detect"
	"github.com/yaklabco/goldif/pkg/dn"
	"github.com/yaklabco/goldif/pkg/ldif"
	"github.com/yaklabco/goldif/pkg/parser"
)

// Options controls how records are converted.
type Options struct {
	// ResolveURLs replaces URL references with the data they point to.
	ResolveURLs bool

	// MaxURLSize limits the size of resolved URL content. Zero or less
	// means ldif.DefaultMaxURLContent.
	MaxURLSize int64

	// Dereferencer fetches URL values. Nil means a FileDereferencer
	// bounded by MaxURLSize.
	Dereferencer ldif.Dereferencer
}

// Converter turns parsed records into Documents.
type Converter struct {
	opts  Options
	deref ldif.Dereferencer
}

// NewConverter creates a Converter.
func NewConverter(opts Options) *Converter {
	deref := opts.Dereferencer
	if deref == nil {
		maxSize := opts.MaxURLSize
		if maxSize <= 0 {
			maxSize = ldif.DefaultMaxURLContent
		}
		deref = ldif.FileDereferencer{MaxSize: maxSize}
	}
	return &Converter{opts: opts, deref: deref}
}

// FromState converts the records of a parse result. The source file name is
// taken from the parsed input.
func (c *Converter) FromState(ctx context.Context, state *parser.State) (*Document, error) {
	doc, err := c.Convert(ctx, state.Records())
	if err != nil {
		return nil, err
	}
	if in := state.Input(); in != nil {
		doc.Source = in.SourceFileName()
	}
	if spec := state.VersionSpec(); spec != nil {
		version := spec.Version
		doc.Version = &version
	}
	return doc, nil
}

// Convert converts records into a Document.
func (c *Converter) Convert(ctx context.Context, records []ldif.Record) (*Document, error) {
	doc := &Document{Records: make([]Record, 0, len(records))}
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("convert records: %w", err)
		}
		out, err := c.convertRecord(ctx, rec)
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", rec.DN(), err)
		}
		doc.Records = append(doc.Records, out)
	}
	return doc, nil
}

func (c *Converter) convertRecord(ctx context.Context, rec ldif.Record) (Record, error) {
	out := Record{DN: rec.DN(), Depth: max(dn.Depth(rec.DN()), 0)}
	if snippet := rec.Snippet(); snippet.IsValid() {
		line, _ := snippet.SourceLineAndOffset()
		out.Line = line + 1
	}

	if change, ok := rec.(ldif.ChangeRecord); ok {
		out.ChangeType = change.ChangeType().String()
		controls, err := c.convertControls(ctx, change.Controls())
		if err != nil {
			return out, err
		}
		out.Controls = controls
	}

	var err error
	switch r := rec.(type) {
	case *ldif.AttrValRecord:
		out.Attributes, err = c.convertAttrVals(ctx, r.AttrVals())
	case *ldif.AddRecord:
		out.Attributes, err = c.convertAttrVals(ctx, r.AttrVals())
	case *ldif.ModifyRecord:
		out.Modifications, err = c.convertModSpecs(ctx, r.ModSpecs())
	case *ldif.ModDnRecord:
		out.NewRDN = r.NewRdn()
		deleteOld := r.DeleteOldRdn()
		out.DeleteOldRDN = &deleteOld
		if superior, ok := r.NewSuperior(); ok {
			out.NewSuperior = &superior
		}
	case *ldif.DeleteRecord:
	default:
		return out, fmt.Errorf("unsupported record type %T", rec)
	}
	return out, err
}

func (c *Converter) convertAttrVals(ctx context.Context, attrVals []ldif.AttrVal) ([]Attribute, error) {
	out := make([]Attribute, 0, len(attrVals))
	for _, av := range attrVals {
		value, err := c.convertValue(ctx, av.Value)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", av.Attribute, err)
		}
		out = append(out, Attribute{Name: av.Attribute, Value: value})
	}
	return out, nil
}

func (c *Converter) convertModSpecs(ctx context.Context, specs []ldif.ModSpec) ([]Modification, error) {
	out := make([]Modification, 0, len(specs))
	for _, spec := range specs {
		mod := Modification{Op: spec.Type.String(), Attribute: spec.Attribute}
		for _, av := range spec.AttrVals {
			value, err := c.convertValue(ctx, av.Value)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", mod.Op, spec.Attribute, err)
			}
			mod.Values = append(mod.Values, value)
		}
		out = append(out, mod)
	}
	return out, nil
}

func (c *Converter) convertControls(ctx context.Context, controls []ldif.Control) ([]Control, error) {
	if len(controls) == 0 {
		return nil, nil
	}
	out := make([]Control, 0, len(controls))
	for _, ctrl := range controls {
		item := Control{OID: ctrl.OID, Critical: ctrl.Criticality}
		if ctrl.Value != nil {
			value, err := c.convertValue(ctx, *ctrl.Value)
			if err != nil {
				return nil, fmt.Errorf("control %s: %w", ctrl.OID, err)
			}
			item.Value = &value
		}
		out = append(out, item)
	}
	return out, nil
}

func (c *Converter) convertValue(ctx context.Context, v ldif.Value) (Value, error) {
	switch v.Kind() {
	case ldif.KindSafe:
		return Value{Value: v.Spec()}, nil
	case ldif.KindBase64:
		content, err := v.ContentWith(ctx, nil)
		if err != nil {
			return Value{}, err
		}
		return renderBytes(content), nil
	case ldif.KindURL:
		out := Value{URL: v.Spec()}
		if !c.opts.ResolveURLs {
			return out, nil
		}
		content, err := v.ContentWith(ctx, c.deref)
		if err != nil {
			return Value{}, err
		}
		logging.FromContext(ctx).Debug("resolved url",
			logging.FieldPath, v.Spec(), logging.FieldBytes, len(content))
		rendered := renderBytes(content)
		out.Value, out.Encoding = rendered.Value, rendered.Encoding
		out.Detected = detect.Language(v.URL().Path, content)
		return out, nil
	default:
		return Value{}, ldif.ErrNoContent
	}
}

// renderBytes renders content as text unless it is binary, in which case it
// is base64 encoded.
func renderBytes(content []byte) Value {
	if detect.IsText(content) {
		return Value{Value: string(content)}
	}
	return Value{Value: base64.StdEncoding.EncodeToString(content), Encoding: EncodingBase64}
}
