package store

// DocumentChunk is one embedded chunk of an ingested document.
type DocumentChunk struct {
	ID        int32
	UID       string
	Source    string // origin file path, relative to the docs directory
	Ordinal   int32  // chunk position within the source document
	Content   string
	Embedding []float32
	Model     string
	CreatedTs int64
}

// DocumentChunkMatch is a chunk with its similarity score from vector search.
type DocumentChunkMatch struct {
	*DocumentChunk
	Score float64
}
