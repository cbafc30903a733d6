package manifest

import (
	"fmt"
	"regexp"
	"strings"
)

var envKeyPattern = regexp.MustCompile(`^[A-Z_][A-Z0-9_]*$`)

// Encode renders the template as a .env file with every value left empty.
func (t *EnvTemplate) Encode() ([]byte, error) {
	var b strings.Builder
	for _, line := range t.Header {
		writeComment(&b, line)
	}

	for _, k := range t.Keys {
		if !envKeyPattern.MatchString(k.Name) {
			return nil, fmt.Errorf("invalid environment variable name %q", k.Name)
		}
		b.WriteByte('\n')
		if k.Comment != "" {
			writeComment(&b, k.Comment)
		}
		b.WriteString(k.Name)
		b.WriteString("=\n")
	}
	return []byte(b.String()), nil
}

// writeComment writes text as a single comment line; embedded line breaks
// would otherwise turn the rest of the text into an assignment.
func writeComment(b *strings.Builder, text string) {
	text = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(text)
	b.WriteString("# ")
	b.WriteString(text)
	b.WriteByte('\n')
}
