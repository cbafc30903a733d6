package framework

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestSelect_ValidIndex(t *testing.T) {
	var out bytes.Buffer
	sel := Select(strings.NewReader("1\n"), &out)

	if sel.Framework.Key != "nextjs" {
		t.Errorf("Framework = %q, want nextjs", sel.Framework.Key)
	}
	if sel.FellBack {
		t.Error("FellBack = true for a valid index")
	}

	menu := out.String()
	for i, f := range All() {
		line := strconv.Itoa(i+1) + ") " + f.Name
		if !strings.Contains(menu, line) {
			t.Errorf("menu missing %q:\n%s", line, menu)
		}
	}
	if !strings.Contains(menu, "[1-6]") {
		t.Errorf("menu missing range hint:\n%s", menu)
	}
}

func TestSelect_Fallbacks(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty line", "\n"},
		{"eof", ""},
		{"zero", "0\n"},
		{"negative", "-2\n"},
		{"too large", "7\n"},
		{"word", "astro\n"},
		{"float", "2.5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := Select(strings.NewReader(tt.input), &bytes.Buffer{})
			if sel.Framework.Key != DefaultKey {
				t.Errorf("Framework = %q, want %q", sel.Framework.Key, DefaultKey)
			}
			if !sel.FellBack {
				t.Error("FellBack = false, want true")
			}
		})
	}
}

func TestSelect_NoTrailingNewline(t *testing.T) {
	sel := Select(strings.NewReader(" 6 "), &bytes.Buffer{})
	if sel.Framework.Key != "astro" {
		t.Errorf("Framework = %q, want astro", sel.Framework.Key)
	}
	if sel.Input != "6" {
		t.Errorf("Input = %q, want trimmed %q", sel.Input, "6")
	}
}

func TestSelect_LeavesRemainingInput(t *testing.T) {
	in := strings.NewReader("2\ny\nmore input\n")
	sel := Select(in, &bytes.Buffer{})
	if sel.Framework.Key != "remix" {
		t.Fatalf("Framework = %q, want remix", sel.Framework.Key)
	}

	rest, err := io.ReadAll(in)
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}
	if string(rest) != "y\nmore input\n" {
		t.Errorf("remaining input = %q, want the lines after the answer", rest)
	}
}

func TestSelect_LongAnswer(t *testing.T) {
	sel := Select(strings.NewReader(strings.Repeat("9", 5000)), &bytes.Buffer{})
	if !sel.FellBack {
		t.Error("FellBack = false for an oversized answer")
	}
	if len(sel.Input) != maxAnswer {
		t.Errorf("len(Input) = %d, want %d", len(sel.Input), maxAnswer)
	}
}

func TestSelectProperties(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)
	n := len(All())

	properties.Property("out-of-range index falls back to the default", prop.ForAll(
		func(i int) bool {
			sel := Select(strings.NewReader(strconv.Itoa(i)+"\n"), &bytes.Buffer{})
			return sel.FellBack && sel.Framework.Key == DefaultKey
		},
		gen.OneGenOf(gen.IntRange(-100000, 0), gen.IntRange(n+1, 100000)),
	))

	properties.Property("non-numeric input falls back to the default", prop.ForAll(
		func(s string) bool {
			sel := Select(strings.NewReader(s+"\n"), &bytes.Buffer{})
			return sel.FellBack && sel.Framework.Key == DefaultKey
		},
		gen.AlphaString(),
	))

	properties.Property("in-range index selects that framework", prop.ForAll(
		func(i int) bool {
			sel := Select(strings.NewReader(strconv.Itoa(i)+"\n"), &bytes.Buffer{})
			return !sel.FellBack && sel.Framework.Key == All()[i-1].Key
		},
		gen.IntRange(1, n),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
