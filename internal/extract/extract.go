// Package extract turns free-form text into an ordered sequence of labeled
// blocks ready for application.
package extract

import (
	"github.com/sokinpui/snippy/internal/block"
	"github.com/sokinpui/snippy/internal/ui"
)

// Extractor extracts labeled blocks from raw text.
type Extractor interface {
	Extract(content string) ([]block.Block, error)
}

// DelimiterExtractor pairs fence markers with a stack discipline. It is the
// default extractor: exact-once extraction of every well-formed top-level
// fence, with nested fences preserved verbatim inside their outer block.
type DelimiterExtractor struct{}

// NewDelimiterExtractor returns the positional-scan extractor.
func NewDelimiterExtractor() *DelimiterExtractor {
	return &DelimiterExtractor{}
}

// Extract scans content and returns all top-level labeled blocks in source
// order. Fences nested inside another fence never produce their own block.
// Unclosed fences are dropped with a warning. Blocks without a resolvable
// filename are dropped silently.
func (e *DelimiterExtractor) Extract(content string) ([]block.Block, error) {
	markers, err := identifyDelimiters(content)
	if err != nil {
		return nil, err
	}

	var blocks []block.Block
	// Index-based stack over the marker slice; nesting depth is input
	// controlled, so no recursion.
	var stack []int
	for i, m := range markers {
		if m.isStart {
			stack = append(stack, i)
			continue
		}
		if len(stack) == 0 {
			// Stray close fence, nothing open.
			continue
		}
		open := markers[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if len(stack) > 0 {
			// The popped fence was nested; its body belongs to the outer
			// block's content.
			continue
		}
		if open.filename == "" {
			continue
		}
		blocks = append(blocks, block.Block{
			Filename: open.filename,
			Content:  content[open.contentStart:m.startIndex],
			Kind:     open.kind,
		})
	}

	for _, i := range stack {
		ui.Warning("Unclosed block starting at index %d. Ignoring the incomplete block.", markers[i].startIndex)
	}

	return blocks, nil
}
