package extract

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/sokinpui/snippy/internal/block"
)

// ErrNoDelimiters is returned when a scan finds nothing that looks like a
// fenced block. Callers may treat it as "no code in this text" rather than a
// failure.
var ErrNoDelimiters = errors.New("no delimiters found")

var (
	// fenceOpenRegex matches an opening fence carrying a language tag.
	// Untagged fences only ever match fenceCloseRegex.
	fenceOpenRegex  = regexp.MustCompile("(?m)^\\s*```(\\w+)\\s*$")
	fenceCloseRegex = regexp.MustCompile("(?m)^\\s*```\\s*$")

	// headingRegex captures the first token of a markdown heading, with or
	// without surrounding backticks.
	headingRegex = regexp.MustCompile("(?m)^\\s*#+\\s*`?([^`\\s]+)`?")

	// directiveRegex matches inline filename directives in line-comment,
	// block-comment, and HTML-comment form.
	directiveRegex = regexp.MustCompile(
		`(?m)^\s*(?://|#)\s*filename:\s*(.+)|^\s*/\*\s*filename:\s*(.+)\s*\*/|^\s*<!--\s*filename:\s*(.+)\s*-->`)

	// diffFileRegex matches a unified diff source-file line.
	diffFileRegex = regexp.MustCompile(`(?m)^\s*---\s*(.+)`)
)

// marker is a positional delimiter found during the scan. Markers are
// ephemeral: produced by identifyDelimiters, consumed by Extract, never
// exposed.
type marker struct {
	startIndex   int
	contentStart int
	isStart      bool
	filename     string
	kind         block.Kind
}

type heading struct {
	pos  int
	name string
}

// identifyDelimiters scans content with four independent pattern classes and
// returns all markers sorted by position. Filename resolution for each fence
// open, in order of precedence: an inline directive (or, for diff blocks, a
// `--- path` line) on the line immediately after the fence; otherwise the
// nearest preceding heading that appears after the previous fence open.
func identifyDelimiters(content string) ([]marker, error) {
	var headings []heading
	for _, m := range headingRegex.FindAllStringSubmatchIndex(content, -1) {
		headings = append(headings, heading{
			pos:  m[0],
			name: content[m[2]:m[3]],
		})
	}

	// Filenames from directives and diff source lines, keyed by the position
	// of the line they sit on.
	filenames := make(map[int]string)
	for _, m := range directiveRegex.FindAllStringSubmatchIndex(content, -1) {
		for g := 1; g <= 3; g++ {
			if m[2*g] >= 0 {
				filenames[m[0]] = strings.TrimSpace(content[m[2*g]:m[2*g+1]])
				break
			}
		}
	}
	for _, m := range diffFileRegex.FindAllStringSubmatchIndex(content, -1) {
		filenames[m[0]] = strings.TrimSpace(content[m[2]:m[3]])
	}

	var markers []marker
	lastOpenStart := 0
	for _, m := range fenceOpenRegex.FindAllStringSubmatchIndex(content, -1) {
		startIndex, endIndex := m[0], m[1]
		lang := content[m[2]:m[3]]
		kind := block.KindForLang(lang)

		// Position of the line immediately after the fence-open line; a
		// directive or diff `---` line there names the block's file.
		filenameIndex := endIndex
		if nl := strings.IndexByte(content[endIndex:], '\n'); nl >= 0 {
			filenameIndex = endIndex + nl + 1
		}

		contentStart := endIndex
		if _, ok := filenames[filenameIndex]; ok && kind != block.UnifiedDiff {
			// The directive line is consumed, so content starts after it.
			contentStart = filenameIndex
			if nl := strings.IndexByte(content[filenameIndex:], '\n'); nl >= 0 {
				contentStart = filenameIndex + nl + 1
			}
		} else if strings.HasPrefix(content[endIndex:], "\n") {
			contentStart = endIndex + 1
		} else if strings.HasPrefix(content[endIndex:], "\r\n") {
			contentStart = endIndex + 2
		}

		filename, ok := filenames[filenameIndex]
		if !ok {
			filename = headingBefore(headings, startIndex, lastOpenStart)
		}
		filename = stripDiffPrefix(filename)

		markers = append(markers, marker{
			startIndex:   startIndex,
			contentStart: contentStart,
			isStart:      true,
			filename:     filename,
			kind:         kind,
		})
		lastOpenStart = startIndex
	}

	for _, m := range fenceCloseRegex.FindAllStringIndex(content, -1) {
		markers = append(markers, marker{
			startIndex:   m[0],
			contentStart: m[1],
			isStart:      false,
		})
	}

	sort.SliceStable(markers, func(i, j int) bool {
		return markers[i].startIndex < markers[j].startIndex
	})

	if len(markers) == 0 {
		return nil, ErrNoDelimiters
	}
	return markers, nil
}

// headingBefore returns the nearest heading before pos that does not precede
// the previous fence open. The lower bound keeps a heading from labeling two
// unrelated blocks.
func headingBefore(headings []heading, pos, lowerBound int) string {
	for i := len(headings) - 1; i >= 0; i-- {
		h := headings[i]
		if h.pos < pos && h.pos >= lowerBound {
			return h.name
		}
	}
	return ""
}

// stripDiffPrefix removes the git-style a/ or b/ prefix from a path.
func stripDiffPrefix(name string) string {
	if strings.HasPrefix(name, "a/") || strings.HasPrefix(name, "b/") {
		return name[2:]
	}
	return name
}
