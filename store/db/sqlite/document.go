package sqlite

import (
	"context"
	"encoding/json"
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/acadassist/acadassist/store"
)

// UpsertDocumentChunk inserts or updates an embedded document chunk.
// The embedding is stored as JSON text.
func (d *DB) UpsertDocumentChunk(ctx context.Context, chunk *store.DocumentChunk) (*store.DocumentChunk, error) {
	embedding, err := json.Marshal(chunk.Embedding)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode embedding")
	}

	stmt := `
		INSERT INTO document_chunk (uid, source, ordinal, content, embedding, model, created_ts)
		VALUES (` + placeholders(7) + `)
		ON CONFLICT (source, ordinal, model)
		DO UPDATE SET
			content = excluded.content,
			embedding = excluded.embedding,
			created_ts = excluded.created_ts`

	if _, err := d.db.ExecContext(ctx, stmt,
		chunk.UID,
		chunk.Source,
		chunk.Ordinal,
		chunk.Content,
		string(embedding),
		chunk.Model,
		chunk.CreatedTs,
	); err != nil {
		return nil, errors.Wrap(err, "failed to upsert document chunk")
	}
	return chunk, nil
}

func (d *DB) DeleteDocumentChunksBySource(ctx context.Context, source string) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM document_chunk WHERE source = ?`, source); err != nil {
		return errors.Wrap(err, "failed to delete document chunks")
	}
	return nil
}

// SearchDocumentChunks scores all chunks with application-layer cosine
// similarity. Fine for the small corpora a dev instance holds; Postgres
// handles this with pgvector.
func (d *DB) SearchDocumentChunks(ctx context.Context, vector []float32, limit int) ([]*store.DocumentChunkMatch, error) {
	if limit <= 0 {
		limit = 3
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, uid, source, ordinal, content, embedding, model, created_ts
		FROM document_chunk`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load document chunks")
	}
	defer rows.Close()

	matches := []*store.DocumentChunkMatch{}
	for rows.Next() {
		chunk := &store.DocumentChunk{}
		var embedding string
		if err := rows.Scan(
			&chunk.ID,
			&chunk.UID,
			&chunk.Source,
			&chunk.Ordinal,
			&chunk.Content,
			&embedding,
			&chunk.Model,
			&chunk.CreatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan document chunk")
		}
		if err := json.Unmarshal([]byte(embedding), &chunk.Embedding); err != nil {
			return nil, errors.Wrap(err, "failed to decode embedding")
		}
		matches = append(matches, &store.DocumentChunkMatch{
			DocumentChunk: chunk,
			Score:         cosineSimilarity(vector, chunk.Embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (d *DB) CountDocumentChunks(ctx context.Context) (int64, error) {
	var count int64
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM document_chunk`).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count document chunks")
	}
	return count, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
