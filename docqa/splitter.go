// Package docqa implements the document question-answering service: markdown
// and text files are split into chunks, embedded, stored in the vector index,
// and retrieved as context for the generative model.
package docqa

import "strings"

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 200
)

// separators tried in order, from coarse structure down to characters.
var separators = []string{"\n\n", "\n", ". ", "! ", "? ", ", ", " ", ""}

// Splitter breaks a document into overlapping chunks, preferring to cut on
// paragraph and sentence boundaries before falling back to words and
// characters.
type Splitter struct {
	chunkSize    int
	chunkOverlap int
}

func NewSplitter() *Splitter {
	return &Splitter{chunkSize: defaultChunkSize, chunkOverlap: defaultChunkOverlap}
}

// Split returns the chunks of text, each at most chunkSize characters, with
// adjacent chunks overlapping by up to chunkOverlap. Whitespace-only chunks
// are dropped.
func (s *Splitter) Split(text string) []string {
	pieces := s.split(text, 0)
	chunks := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		if trimmed := strings.TrimSpace(piece); trimmed != "" {
			chunks = append(chunks, trimmed)
		}
	}
	return chunks
}

func (s *Splitter) split(text string, level int) []string {
	if len(text) <= s.chunkSize {
		return []string{text}
	}
	if level >= len(separators) {
		return s.hardSplit(text)
	}

	separator := separators[level]
	if separator == "" {
		return s.hardSplit(text)
	}

	parts := strings.SplitAfter(text, separator)
	if len(parts) == 1 {
		return s.split(text, level+1)
	}

	chunks := []string{}
	current := ""
	for _, part := range parts {
		if len(current)+len(part) > s.chunkSize && current != "" {
			chunks = append(chunks, current)
			current = s.overlapTail(current)
		}
		current += part
		// A single part longer than the chunk size needs a finer separator.
		if len(current) > s.chunkSize {
			finer := s.split(current, level+1)
			chunks = append(chunks, finer[:len(finer)-1]...)
			current = finer[len(finer)-1]
		}
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

func (s *Splitter) hardSplit(text string) []string {
	chunks := []string{}
	step := s.chunkSize - s.chunkOverlap
	for start := 0; start < len(text); start += step {
		end := start + s.chunkSize
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}
		chunks = append(chunks, text[start:end])
	}
	return chunks
}

// overlapTail returns the trailing chunkOverlap characters of a finished
// chunk, carried into the next one for context continuity.
func (s *Splitter) overlapTail(chunk string) string {
	if len(chunk) <= s.chunkOverlap {
		return chunk
	}
	return chunk[len(chunk)-s.chunkOverlap:]
}
