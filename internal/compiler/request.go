package compiler

import (
	"fmt"

	"git.home.luguber.info/inful/rollerblade/internal/foundation/errors"
)

// ParseRequest converts a loosely typed request (a decoded manifest entry)
// into a Request. Keys other than input and output become options; a nested
// "options" mapping is merged in as well.
func ParseRequest(raw any) (*Request, error) {
	fields, ok := asStringMap(raw)
	if !ok {
		return nil, errors.ConfigurationError("compile request is not a mapping").
			WithContext("type", fmt.Sprintf("%T", raw)).
			Build()
	}

	input, ok := fields["input"].(string)
	if !ok || input == "" {
		return nil, errors.ConfigurationError("no input file specified").Build()
	}

	req := &Request{Input: input, Options: Options{}}
	if out, present := fields["output"]; present && out != nil {
		s, ok := out.(string)
		if !ok {
			return nil, errors.ConfigurationError("output must be a path").
				WithPath(input).
				Build()
		}
		req.Output = s
	}

	for k, v := range fields {
		if k != "input" && k != "output" && k != "options" {
			req.Options[k] = v
		}
	}
	if nestedRaw, present := fields["options"]; present && nestedRaw != nil {
		nested, ok := asStringMap(nestedRaw)
		if !ok {
			return nil, errors.ConfigurationError("options must be a mapping").WithPath(input).Build()
		}
		for k, v := range nested {
			req.Options[k] = v
		}
	}
	return req, nil
}

func asStringMap(raw any) (map[string]any, bool) {
	switch m := raw.(type) {
	case map[string]any:
		return m, true
	case Options:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = v
		}
		return out, true
	default:
		return nil, false
	}
}
