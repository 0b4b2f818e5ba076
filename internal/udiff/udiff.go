// Package udiff parses unified diffs and applies them strictly: either every
// hunk applies cleanly against the given content, or the content is returned
// untouched with an error describing the first failure.
package udiff

import (
	"fmt"
	"regexp"
	"strings"
)

// ParseError reports a malformed diff.
type ParseError struct {
	Line int // 1-based line in the diff text
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("diff parse error at line %d: %s", e.Line, e.Msg)
}

// ApplyError reports a hunk that does not apply to the target content.
type ApplyError struct {
	Hunk int // 1-based hunk number
	Line int // 1-based line in the target content
	Msg  string
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("hunk #%d does not apply at line %d: %s", e.Hunk, e.Line, e.Msg)
}

// Line is one hunk line: Op is ' ', '+' or '-'.
type Line struct {
	Op   byte
	Text string
}

// Hunk is a contiguous region of changes anchored at a source location.
type Hunk struct {
	OldStart, OldLines int
	NewStart, NewLines int
	Lines              []Line

	// noNewline records a `\ No newline at end of file` marker following the
	// last old-side/new-side line of the hunk.
	noNewlineOld bool
	noNewlineNew bool
}

// Patch is a parsed unified diff for a single file.
type Patch struct {
	OldFile string
	NewFile string
	Hunks   []Hunk
}

var hunkHeaderRegex = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// Parse reads a unified diff. Leading lines before the `---` header (such as
// `diff --git`) are skipped. A diff with no hunks is an error.
func Parse(diff string) (*Patch, error) {
	lines := strings.Split(diff, "\n")
	p := &Patch{}
	i := 0

	// Skip preamble until the file headers or the first hunk.
	for i < len(lines) {
		if strings.HasPrefix(lines[i], "--- ") || strings.HasPrefix(lines[i], "@@") {
			break
		}
		i++
	}
	if i < len(lines) && strings.HasPrefix(lines[i], "--- ") {
		p.OldFile = strings.TrimSpace(lines[i][4:])
		i++
		if i >= len(lines) || !strings.HasPrefix(lines[i], "+++ ") {
			return nil, &ParseError{Line: i + 1, Msg: "expected +++ header after ---"}
		}
		p.NewFile = strings.TrimSpace(lines[i][4:])
		i++
	}

	for i < len(lines) {
		line := lines[i]
		if line == "" && i == len(lines)-1 {
			break
		}
		m := hunkHeaderRegex.FindStringSubmatch(line)
		if m == nil {
			return nil, &ParseError{Line: i + 1, Msg: fmt.Sprintf("expected hunk header, got %q", line)}
		}
		h := Hunk{
			OldStart: atoi(m[1]),
			OldLines: atoiDefault(m[2], 1),
			NewStart: atoi(m[3]),
			NewLines: atoiDefault(m[4], 1),
		}
		i++

		oldCount, newCount := 0, 0
		for i < len(lines) && (oldCount < h.OldLines || newCount < h.NewLines) {
			line := lines[i]
			if line == "" && i == len(lines)-1 {
				break
			}
			var op byte = ' '
			text := line
			if line != "" {
				op = line[0]
				text = line[1:]
			} else {
				// Some producers emit empty context lines without the
				// leading space.
				text = ""
			}
			switch op {
			case ' ':
				oldCount++
				newCount++
			case '-':
				oldCount++
			case '+':
				newCount++
			case '\\':
				// `\ No newline at end of file`; attaches to the previous
				// line's side.
				if n := len(h.Lines); n > 0 {
					switch h.Lines[n-1].Op {
					case '-':
						h.noNewlineOld = true
					case '+':
						h.noNewlineNew = true
					default:
						h.noNewlineOld = true
						h.noNewlineNew = true
					}
				}
				i++
				continue
			default:
				return nil, &ParseError{Line: i + 1, Msg: fmt.Sprintf("invalid hunk line %q", line)}
			}
			h.Lines = append(h.Lines, Line{Op: op, Text: text})
			i++
		}

		if oldCount != h.OldLines || newCount != h.NewLines {
			return nil, &ParseError{
				Line: i,
				Msg: fmt.Sprintf("hunk line counts do not match header (-%d,+%d counted, -%d,+%d declared)",
					oldCount, newCount, h.OldLines, h.NewLines),
			}
		}

		// Trailing no-newline marker for the hunk's last line.
		if i < len(lines) && strings.HasPrefix(lines[i], "\\") {
			if n := len(h.Lines); n > 0 {
				switch h.Lines[n-1].Op {
				case '-':
					h.noNewlineOld = true
				case '+':
					h.noNewlineNew = true
				default:
					h.noNewlineOld = true
					h.noNewlineNew = true
				}
			}
			i++
		}

		p.Hunks = append(p.Hunks, h)
	}

	if len(p.Hunks) == 0 {
		return nil, &ParseError{Line: 1, Msg: "no hunks found"}
	}
	return p, nil
}

// Apply patches content with p. Any context mismatch, overlapping hunk, or
// out-of-range hunk fails the whole application; partial results are never
// returned.
func Apply(content string, p *Patch) (string, error) {
	var src []string
	hadTrailingNewline := true
	if content != "" {
		hadTrailingNewline = strings.HasSuffix(content, "\n")
		src = strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	}

	var out []string
	pos := 0
	lastEnd := 0
	for hi, h := range p.Hunks {
		start := h.OldStart - 1
		if h.OldLines == 0 {
			// Zero-length hunks anchor after the named line.
			start = h.OldStart
		}
		if start < lastEnd {
			return "", &ApplyError{Hunk: hi + 1, Line: h.OldStart, Msg: "overlaps previous hunk"}
		}
		if start > len(src) {
			return "", &ApplyError{Hunk: hi + 1, Line: h.OldStart, Msg: "hunk start beyond end of file"}
		}

		out = append(out, src[pos:start]...)
		pos = start

		for _, l := range h.Lines {
			switch l.Op {
			case ' ', '-':
				if pos >= len(src) {
					return "", &ApplyError{Hunk: hi + 1, Line: pos + 1, Msg: "context extends beyond end of file"}
				}
				if src[pos] != l.Text {
					return "", &ApplyError{
						Hunk: hi + 1,
						Line: pos + 1,
						Msg:  fmt.Sprintf("expected %q, found %q", l.Text, src[pos]),
					}
				}
				if l.Op == ' ' {
					out = append(out, l.Text)
				}
				pos++
			case '+':
				out = append(out, l.Text)
			}
		}
		lastEnd = pos
	}
	out = append(out, src[pos:]...)

	if len(out) == 0 {
		return "", nil
	}

	trailing := hadTrailingNewline
	last := p.Hunks[len(p.Hunks)-1]
	if last.noNewlineNew {
		trailing = false
	} else if last.noNewlineOld {
		trailing = true
	}

	result := strings.Join(out, "\n")
	if trailing {
		result += "\n"
	}
	return result, nil
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	return atoi(s)
}
