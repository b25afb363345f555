package postgres

import (
	"context"
	"strings"

	"github.com/pgvector/pgvector-go"
	"github.com/pkg/errors"

	"github.com/acadassist/acadassist/store"
)

// UpsertDocumentChunk inserts or updates an embedded document chunk.
func (d *DB) UpsertDocumentChunk(ctx context.Context, chunk *store.DocumentChunk) (*store.DocumentChunk, error) {
	stmt := `
		INSERT INTO document_chunk (uid, source, ordinal, content, embedding, model, created_ts)
		VALUES (` + placeholders(7) + `)
		ON CONFLICT (source, ordinal, model)
		DO UPDATE SET
			content = EXCLUDED.content,
			embedding = EXCLUDED.embedding,
			created_ts = EXCLUDED.created_ts
		RETURNING id`

	vector := pgvector.NewVector(chunk.Embedding)
	err := d.db.QueryRowContext(ctx, stmt,
		chunk.UID,
		chunk.Source,
		chunk.Ordinal,
		chunk.Content,
		vector,
		chunk.Model,
		chunk.CreatedTs,
	).Scan(&chunk.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert document chunk")
	}
	return chunk, nil
}

func (d *DB) DeleteDocumentChunksBySource(ctx context.Context, source string) error {
	stmt := `DELETE FROM document_chunk WHERE source = ` + placeholder(1)
	if _, err := d.db.ExecContext(ctx, stmt, source); err != nil {
		return errors.Wrap(err, "failed to delete document chunks")
	}
	return nil
}

// SearchDocumentChunks performs cosine similarity search using pgvector.
// The <=> operator computes cosine distance, so ordering ascending returns
// the most similar chunks first.
func (d *DB) SearchDocumentChunks(ctx context.Context, vector []float32, limit int) ([]*store.DocumentChunkMatch, error) {
	if limit <= 0 {
		limit = 3
	}

	query := strings.TrimSpace(`
		SELECT
			id, uid, source, ordinal, content, model, created_ts,
			1 - (embedding <=> ` + placeholder(1) + `) AS score
		FROM document_chunk
		ORDER BY embedding <=> ` + placeholder(2) + `
		LIMIT ` + placeholder(3))

	pgVector := pgvector.NewVector(vector)
	rows, err := d.db.QueryContext(ctx, query, pgVector, pgVector, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search document chunks")
	}
	defer rows.Close()

	results := []*store.DocumentChunkMatch{}
	for rows.Next() {
		chunk := &store.DocumentChunk{}
		match := &store.DocumentChunkMatch{DocumentChunk: chunk}
		if err := rows.Scan(
			&chunk.ID,
			&chunk.UID,
			&chunk.Source,
			&chunk.Ordinal,
			&chunk.Content,
			&chunk.Model,
			&chunk.CreatedTs,
			&match.Score,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan document chunk")
		}
		results = append(results, match)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (d *DB) CountDocumentChunks(ctx context.Context) (int64, error) {
	var count int64
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM document_chunk`).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count document chunks")
	}
	return count, nil
}
