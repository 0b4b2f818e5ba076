package extract

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/sokinpui/snippy/internal/block"
)

// ASTExtractor walks a markdown AST to find fenced code blocks. It is an
// alternative to DelimiterExtractor for content that is known to be
// well-formed markdown; it resolves filenames from a first-line directive, a
// diff `--- path` line, or the node immediately preceding the fence.
type ASTExtractor struct{}

// NewASTExtractor returns the markdown AST based extractor.
func NewASTExtractor() *ASTExtractor {
	return &ASTExtractor{}
}

// Extract parses content as markdown and returns all labeled fenced blocks.
func (e *ASTExtractor) Extract(content string) ([]block.Block, error) {
	source := []byte(content)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var blocks []block.Block
	found := false
	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		found = true

		var lang string
		if fence.Info != nil {
			lang = string(fence.Info.Text(source))
		}
		kind := block.KindForLang(lang)

		var buf bytes.Buffer
		lines := fence.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(source))
		}
		body := buf.String()

		if b, ok := labelBlock(fence, source, body, kind); ok {
			blocks = append(blocks, b)
		}
		return ast.WalkSkipChildren, nil
	}

	if err := ast.Walk(root, walker); err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoDelimiters
	}
	return blocks, nil
}

// labelBlock resolves the filename for one fenced block. Blocks that cannot
// be labeled are skipped.
func labelBlock(fence *ast.FencedCodeBlock, source []byte, body string, kind block.Kind) (block.Block, bool) {
	if kind == block.UnifiedDiff {
		for _, line := range strings.Split(body, "\n") {
			if m := diffFileRegex.FindStringSubmatch(line); m != nil {
				return block.Block{
					Filename: stripDiffPrefix(strings.TrimSpace(m[1])),
					Content:  body,
					Kind:     kind,
				}, true
			}
		}
		return block.Block{}, false
	}

	firstLine, rest, hasRest := strings.Cut(body, "\n")
	if m := directiveRegex.FindStringSubmatch(firstLine); m != nil {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if name == "" {
			name = m[3]
		}
		if !hasRest {
			rest = ""
		}
		return block.Block{
			Filename: stripDiffPrefix(strings.TrimSpace(name)),
			Content:  rest,
			Kind:     kind,
		}, true
	}

	if name := filenameFromContext(fence, source); name != "" {
		return block.Block{
			Filename: stripDiffPrefix(name),
			Content:  body,
			Kind:     kind,
		}, true
	}
	return block.Block{}, false
}

// filenameFromContext pulls a filename from the sibling node preceding the
// fence: heading text, an inline code span, or a bare paragraph.
func filenameFromContext(fence *ast.FencedCodeBlock, source []byte) string {
	prev := fence.PreviousSibling()
	if prev == nil {
		return ""
	}
	switch n := prev.(type) {
	case *ast.Heading:
		if last := n.LastChild(); last != nil {
			switch c := last.(type) {
			case *ast.Text:
				return strings.TrimSpace(string(c.Text(source)))
			case *ast.CodeSpan:
				return strings.TrimSpace(string(c.Text(source)))
			}
		}
	case *ast.Paragraph:
		// A short bare paragraph, or one holding a single code span, names
		// the file. Longer prose is not a label.
		label := strings.TrimSpace(string(n.Text(source)))
		if label != "" && !strings.ContainsAny(label, " \n") {
			return label
		}
		if first, ok := n.FirstChild().(*ast.CodeSpan); ok {
			return strings.TrimSpace(string(first.Text(source)))
		}
	}
	return ""
}
