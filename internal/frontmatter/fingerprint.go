package frontmatter

import (
	"bytes"
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"
)

// FingerprintField is the metadata key the content fingerprint is stored under.
const FingerprintField = mdfp.FingerprintField

// Fingerprint computes the canonical content fingerprint of a document from
// its metadata and body. Any existing fingerprint field is ignored so the
// value is stable across re-renders.
func Fingerprint(fields map[string]any, body []byte) (string, error) {
	forHash := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == FingerprintField {
			continue
		}
		forHash[k] = v
	}

	serialized := ""
	if len(forHash) > 0 {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(forHash); err != nil {
			_ = enc.Close()
			return "", err
		}
		if err := enc.Close(); err != nil {
			return "", err
		}
		serialized = strings.TrimSuffix(buf.String(), "\n")
	}

	return mdfp.CalculateFingerprintFromParts(serialized, string(body)), nil
}
