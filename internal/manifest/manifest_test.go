package manifest

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testPath(name string) string {
	return filepath.Join("testdata", name)
}

func TestPackageEncode(t *testing.T) {
	p := NewPackage("my-app")
	p.Scripts["dev"] = "vite"
	p.Scripts["build"] = "vite build"
	p.Dependencies["react"] = "latest"
	p.DevDependencies["tailwindcss"] = "^3"

	data, err := p.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	want := `{
  "name": "my-app",
  "version": "0.1.0",
  "private": true,
  "type": "module",
  "scripts": {
    "build": "vite build",
    "dev": "vite"
  },
  "dependencies": {
    "react": "latest"
  },
  "devDependencies": {
    "tailwindcss": "^3"
  }
}
`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("Encode() mismatch (-want +got):\n%s", diff)
	}
}

func TestPackageEncode_EscapesName(t *testing.T) {
	p := NewPackage(`a"b\c<d>`)
	data, err := p.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !strings.Contains(string(data), `"name": "a\"b\\c<d>"`) {
		t.Errorf("name not escaped as expected:\n%s", data)
	}

	got, err := DecodePackage(data)
	if err != nil {
		t.Fatalf("DecodePackage() error: %v", err)
	}
	if got.Name != p.Name {
		t.Errorf("Name = %q, want %q", got.Name, p.Name)
	}
}

func TestBuildDescriptorEncode(t *testing.T) {
	d := &BuildDescriptor{
		Name:            "my-app",
		Framework:       "nextjs",
		BuildCommand:    "next build",
		DevCommand:      "next dev",
		OutputDirectory: ".next",
	}
	data, err := d.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	want, err := ParseDescriptor(testPath("valid/vercel.json"))
	if err != nil {
		t.Fatalf("ParseDescriptor() error: %v", err)
	}
	got, err := DecodeDescriptor(data)
	if err != nil {
		t.Fatalf("DecodeDescriptor() error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
	}
}

func TestWorkerEncode(t *testing.T) {
	w := NewWorker("my-app-chat-worker", "2024-01-01", "chat-history")
	data, err := w.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	want := `name = "my-app-chat-worker"
main = "index.js"
compatibility_date = "2024-01-01"

[env.production]
workers_dev = false

[observability.logs]
enabled = true

[[d1_databases]]
binding = "DB"
database_name = "chat-history"
`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("Encode() mismatch (-want +got):\n%s", diff)
	}
}

func TestWorkerEncode_MatchesFixture(t *testing.T) {
	want, err := ParseWorker(testPath("valid/wrangler.toml"))
	if err != nil {
		t.Fatalf("ParseWorker() error: %v", err)
	}
	got := NewWorker("my-app-chat-worker", "2024-01-01", "chat-history")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("worker mismatch (-fixture +constructed):\n%s", diff)
	}
}

func TestWorkerEncode_SpecialCharacters(t *testing.T) {
	names := []string{
		`quote"name`,
		`back\slash`,
		"tab\there",
		"line\nbreak",
		"bell\x07",
		"del\x7f",
		"ünïcødé-名前",
		`'single'`,
		`]] [[d1_databases`,
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			w := NewWorker(name+"-chat-worker", "2024-01-01", "chat-history")
			data, err := w.Encode()
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			got, err := DecodeWorker(data)
			if err != nil {
				t.Fatalf("DecodeWorker() error: %v\n%s", err, data)
			}
			if got.Name != w.Name {
				t.Errorf("Name = %q, want %q", got.Name, w.Name)
			}
			if len(got.D1Databases) != 1 {
				t.Errorf("len(D1Databases) = %d, want 1", len(got.D1Databases))
			}
		})
	}
}

func TestWorkerEncode_InvalidUTF8(t *testing.T) {
	w := NewWorker("bad\xffname", "2024-01-01", "chat-history")
	if _, err := w.Encode(); err == nil {
		t.Fatal("expected error for invalid UTF-8, got nil")
	}
}

func TestWorkerEncode_QuotedEnvKey(t *testing.T) {
	w := NewWorker("app", "2024-01-01", "db")
	w.Env["staging area"] = WorkerEnv{WorkersDev: true}

	data, err := w.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !strings.Contains(string(data), `[env."staging area"]`) {
		t.Errorf("expected quoted env key:\n%s", data)
	}
}

func TestEnvTemplateEncode(t *testing.T) {
	tmpl := &EnvTemplate{
		Header: []string{"Secrets for my-app"},
		Keys: []EnvKey{
			{Name: "CLOUDFLARE_ACCOUNT_ID", Comment: "Cloudflare account"},
			{Name: "CHAT_API_KEY"},
		},
	}
	data, err := tmpl.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	want := `# Secrets for my-app

# Cloudflare account
CLOUDFLARE_ACCOUNT_ID=

CHAT_API_KEY=
`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("Encode() mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvTemplateEncode_HeaderCannotInjectKeys(t *testing.T) {
	tmpl := &EnvTemplate{
		Header: []string{"Secrets for evil\nINJECTED=1"},
		Keys:   []EnvKey{{Name: "CHAT_API_KEY"}},
	}
	data, err := tmpl.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	entries, err := DecodeEnv(data)
	if err != nil {
		t.Fatalf("DecodeEnv() error: %v", err)
	}
	want := []EnvEntry{{Key: "CHAT_API_KEY", Value: ""}}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvTemplateEncode_InvalidKey(t *testing.T) {
	tmpl := &EnvTemplate{Keys: []EnvKey{{Name: "lower-case"}}}
	if _, err := tmpl.Encode(); err == nil {
		t.Fatal("expected error for invalid key, got nil")
	}
}

func TestParseEnv(t *testing.T) {
	entries, err := ParseEnv(testPath("env.example"))
	if err != nil {
		t.Fatalf("ParseEnv() error: %v", err)
	}
	want := []EnvEntry{
		{Key: "CLOUDFLARE_ACCOUNT_ID", Value: ""},
		{Key: "CHAT_API_KEY", Value: "sk-live"},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("ParseEnv() mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePackage(t *testing.T) {
	p, err := ParsePackage(testPath("valid/package.json"))
	if err != nil {
		t.Fatalf("ParsePackage() error: %v", err)
	}
	if p.Name != "my-app" {
		t.Errorf("Name = %q, want %q", p.Name, "my-app")
	}
	if p.Scripts["build"] != "vite build" {
		t.Errorf("Scripts[build] = %q, want %q", p.Scripts["build"], "vite build")
	}
}

func TestParsePackage_Errors(t *testing.T) {
	if _, err := ParsePackage(testPath("nonexistent.json")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
	if _, err := ParsePackage(testPath("invalid-not-json.json")); err == nil {
		t.Error("expected error for malformed JSON, got nil")
	}
}
