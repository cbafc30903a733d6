package manifest

import (
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Encode renders the worker as wrangler.toml. All strings are written as TOML
// basic strings ("..."), and the result is decoded again before it is
// returned so a value that would not survive the trip is rejected here rather
// than by wrangler.
func (w *Worker) Encode() ([]byte, error) {
	for _, v := range w.strings() {
		if !utf8.ValidString(v) {
			return nil, fmt.Errorf("wrangler config for %q contains invalid UTF-8", w.Name)
		}
	}

	var b strings.Builder

	writeString(&b, "name", w.Name)
	writeString(&b, "main", w.Main)
	writeString(&b, "compatibility_date", w.CompatibilityDate)

	envNames := make([]string, 0, len(w.Env))
	for name := range w.Env {
		envNames = append(envNames, name)
	}
	slices.Sort(envNames)
	for _, name := range envNames {
		fmt.Fprintf(&b, "\n[env.%s]\n", tomlKey(name))
		fmt.Fprintf(&b, "workers_dev = %t\n", w.Env[name].WorkersDev)
	}

	b.WriteString("\n[observability.logs]\n")
	fmt.Fprintf(&b, "enabled = %t\n", w.Observability.Logs.Enabled)

	for _, db := range w.D1Databases {
		b.WriteString("\n[[d1_databases]]\n")
		writeString(&b, "binding", db.Binding)
		writeString(&b, "database_name", db.DatabaseName)
	}

	data := []byte(b.String())

	decoded, err := DecodeWorker(data)
	if err != nil {
		return nil, fmt.Errorf("encoded wrangler config for %q does not parse: %w", w.Name, err)
	}
	if !reflect.DeepEqual(normalizeWorker(*decoded), normalizeWorker(*w)) {
		return nil, fmt.Errorf("encoded wrangler config for %q does not round-trip", w.Name)
	}
	return data, nil
}

func writeString(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "%s = %s\n", key, tomlString(value))
}

var bareKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// tomlKey returns k as a bare key when allowed, otherwise quoted.
func tomlKey(k string) string {
	if bareKey.MatchString(k) {
		return k
	}
	return tomlString(k)
}

// tomlString quotes s as a TOML basic string.
func tomlString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func (w *Worker) strings() []string {
	out := []string{w.Name, w.Main, w.CompatibilityDate}
	for name := range w.Env {
		out = append(out, name)
	}
	for _, db := range w.D1Databases {
		out = append(out, db.Binding, db.DatabaseName)
	}
	return out
}

// normalizeWorker maps empty collections to nil so encoded and decoded values
// compare equal.
func normalizeWorker(w Worker) Worker {
	if len(w.Env) == 0 {
		w.Env = nil
	}
	if len(w.D1Databases) == 0 {
		w.D1Databases = nil
	}
	return w
}
