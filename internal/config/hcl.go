package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"git.home.luguber.info/inful/rollerblade/internal/foundation/errors"
)

// hclManifest is the HCL form of Config. Targets are "target" blocks whose
// attributes become the raw request:
//
//	output_dir = "dist"
//	target {
//	  input = "docs/index.md"
//	  data  = { site = env.SITE_NAME }
//	}
type hclManifest struct {
	Version         string       `hcl:"version,optional"`
	OutputDir       string       `hcl:"output_dir,optional"`
	EmitMetadata    *bool        `hcl:"emit_metadata,optional"`
	MetricsTextfile string       `hcl:"metrics_textfile,optional"`
	Logging         *hclLogging  `hcl:"logging,block"`
	Targets         []*hclTarget `hcl:"target,block"`
}

type hclLogging struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

type hclTarget struct {
	Body hcl.Body `hcl:",remain"`
}

// ParseHCL decodes an HCL manifest, applies defaults and validates it.
// Expressions can read the process environment through the env object.
func ParseHCL(data []byte, filename string) (*Config, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.WrapError(diags, errors.CategoryConfig, "failed to parse configuration").Fatal().Build()
	}

	evalCtx := envContext()
	var m hclManifest
	if diags := gohcl.DecodeBody(file.Body, evalCtx, &m); diags.HasErrors() {
		return nil, errors.WrapError(diags, errors.CategoryConfig, "failed to decode configuration").Fatal().Build()
	}

	cfg := &Config{
		Version:         m.Version,
		OutputDir:       m.OutputDir,
		EmitMetadata:    m.EmitMetadata,
		MetricsTextfile: m.MetricsTextfile,
	}
	if m.Logging != nil {
		cfg.Logging = LoggingConfig{Level: LogLevel(m.Logging.Level), Format: LogFormat(m.Logging.Format)}
	}
	for i, t := range m.Targets {
		target, err := decodeTarget(t.Body, evalCtx)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "invalid target").
				WithContext("target", i).
				Fatal().
				Build()
		}
		cfg.Targets = append(cfg.Targets, target)
	}

	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeTarget(body hcl.Body, evalCtx *hcl.EvalContext) (Target, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	target := make(Target, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, diags
		}
		native, err := ctyToNative(val)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		target[name] = native
	}
	return target, nil
}

// envContext exposes the process environment as the env object.
func envContext() *hcl.EvalContext {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" || !hclIdentifier(k) {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)},
	}
}

func hclIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return true
}

// ctyToNative converts a cty value to plain Go values (string, float64,
// bool, []any, map[string]any).
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, err
		}
		return f, nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, el := it.Element()
			native, err := ctyToNative(el)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			k, el := it.Element()
			native, err := ctyToNative(el)
			if err != nil {
				return nil, fmt.Errorf("in attribute %q: %w", k.AsString(), err)
			}
			out[k.AsString()] = native
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}
