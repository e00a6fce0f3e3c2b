package main

// Args holds the positional arguments of a run.
type Args struct {
	Directory  string
	Extensions []string // Without leading dot. Empty means no filter.
}

// FileInfo holds information about a counted file.
type FileInfo struct {
	Path  string
	Ext   string // Extension without the leading dot, "" for names ending in "."
	Size  int64
	Lines int
}

// Summary holds aggregated information about the counted files.
type Summary struct {
	TotalFiles int
	TotalLines int
	TotalSize  int64
}

// Add folds a counted file into the summary.
func (s *Summary) Add(f FileInfo) {
	s.TotalFiles++
	s.TotalLines += f.Lines
	s.TotalSize += f.Size
}
