package block

// Summary reports the outcome of applying a batch of blocks.
type Summary struct {
	Message  string
	Created  []string
	Modified []string
	Deleted  []string
	Failed   []string
}

// Empty reports whether the summary carries no file results.
func (s Summary) Empty() bool {
	return len(s.Created) == 0 && len(s.Modified) == 0 &&
		len(s.Deleted) == 0 && len(s.Failed) == 0
}
