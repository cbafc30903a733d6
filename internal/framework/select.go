package framework

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Selection is the outcome of an interactive framework choice.
type Selection struct {
	Framework Framework
	// Input is the trimmed line the user entered.
	Input string
	// FellBack is true when Input did not name a menu entry and the default
	// framework was used instead.
	FellBack bool
}

// Select presents the numbered framework menu on w, reads a single line from r
// and maps it to a framework. It never fails: a read error, a non-numeric
// answer or an index outside [1, N] all resolve to the default framework.
func Select(r io.Reader, w io.Writer) Selection {
	items := All()

	fmt.Fprintf(w, "\nSelect a framework:\n")
	for i, f := range items {
		fmt.Fprintf(w, "  %d) %s\n", i+1, f.Name)
	}
	fmt.Fprintf(w, "Enter number [1-%d]: ", len(items))

	line := strings.TrimSpace(readLine(r))

	idx, ok := ParseSelection(line, len(items))
	if !ok {
		return Selection{Framework: Default(), Input: line, FellBack: true}
	}
	return Selection{Framework: items[idx], Input: line}
}

// maxAnswer bounds how much of r a single answer may consume.
const maxAnswer = 1024

// readLine reads one byte at a time up to and including '\n' so that input
// after the answer stays in r for whoever reads it next. A final line without
// a newline still counts as an answer.
func readLine(r io.Reader) string {
	var b strings.Builder
	buf := make([]byte, 1)
	for b.Len() < maxAnswer {
		n, err := r.Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				break
			}
			b.WriteByte(buf[0])
		}
		if err != nil {
			break
		}
	}
	return b.String()
}

// ParseSelection converts a 1-based menu answer into a 0-based index. It
// reports false when input is not an integer in [1, n].
func ParseSelection(input string, n int) (int, bool) {
	num, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || num < 1 || num > n {
		return 0, false
	}
	return num - 1, true
}
