// Package block defines the units of work exchanged between the extraction
// and application layers.
package block

// Kind identifies how a block's content is applied to its target file.
type Kind int

const (
	// FullContent replaces the whole file with the block's content.
	FullContent Kind = iota
	// UnifiedDiff applies the block as a unified diff patch.
	UnifiedDiff
	// SearchReplace applies one or more SEARCH/REPLACE pairs.
	SearchReplace
)

func (k Kind) String() string {
	switch k {
	case UnifiedDiff:
		return "diff"
	case SearchReplace:
		return "replace"
	default:
		return "full"
	}
}

// KindForLang maps a fence language tag to a block kind.
func KindForLang(lang string) Kind {
	switch lang {
	case "diff":
		return UnifiedDiff
	case "replace":
		return SearchReplace
	default:
		return FullContent
	}
}

// Block is one extracted, filename-resolved unit of content ready for
// application. Filename is always a non-empty relative path; blocks whose
// filename cannot be resolved are dropped during extraction.
type Block struct {
	Filename string
	Content  string
	Kind     Kind
}
