package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EncodeJSON renders v as two-space indented JSON with a trailing newline.
// HTML characters are left unescaped so the file reads the way npm writes it.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// Encode renders the package manifest.
func (p *Package) Encode() ([]byte, error) {
	return EncodeJSON(p)
}

// Encode renders the build descriptor.
func (d *BuildDescriptor) Encode() ([]byte, error) {
	return EncodeJSON(d)
}
