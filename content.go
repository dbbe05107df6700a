package pmpsdb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// ConfigDocument is a database export: a mapping from device name to a
// mapping from parameter name to value. Values are whatever
// encoding/json produces for scalars (string, float64, bool, nil), so
// equality between documents is type-strict.
type ConfigDocument map[string]map[string]any

// Equal reports structural equality with other: the same device names,
// and for each device the same parameters with equal values. Key order
// never matters; value types do ("1" is not 1).
func (d ConfigDocument) Equal(other ConfigDocument) bool {
	if len(d) != len(other) {
		return false
	}
	for name, params := range d {
		if !paramsEqual(params, other[name]) {
			return false
		}
	}
	return true
}

func paramsEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for key, av := range a {
		bv, ok := b[key]
		if !ok || !valuesEqual(av, bv) {
			return false
		}
	}
	return true
}

// valuesEqual compares two decoded JSON values. Scalars compare by type
// and value; the occasional nested array or object compares element by
// element.
func valuesEqual(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		return ok && paramsEqual(av, bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// DownloadText retrieves a file from the PLC and decodes it as strict
// ASCII, suitable for handing to parseConfig. A non-ASCII byte is a
// *DecodeError, never a silent replacement.
func (c *Client) DownloadText(ctx context.Context, host, filename, dir string) (string, error) {
	raw, err := c.Download(ctx, host, filename, dir)
	if err != nil {
		return "", err
	}
	return decodeASCII(raw)
}

func decodeASCII(raw []byte) (string, error) {
	for i, b := range raw {
		if b > 0x7f {
			return "", &DecodeError{Offset: i, Byte: b}
		}
	}
	return string(raw), nil
}

// DownloadConfig retrieves a database export file from the PLC and
// parses it. Malformed content is a *ParseError, distinct from the
// transfer errors.
func (c *Client) DownloadConfig(ctx context.Context, host, filename, dir string) (ConfigDocument, error) {
	text, err := c.DownloadText(ctx, host, filename, dir)
	if err != nil {
		return nil, err
	}
	return parseConfig(filename, []byte(text))
}

// LocalConfig reads and parses a database export file from the local
// filesystem. No network involved; used to produce comparison inputs.
func LocalConfig(path string) (ConfigDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read local config: %w", err)
	}
	return parseConfig(path, raw)
}

func parseConfig(name string, raw []byte) (ConfigDocument, error) {
	var doc ConfigDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ParseError{Input: name, Reason: "invalid configuration data", Err: err}
	}
	return doc, nil
}
