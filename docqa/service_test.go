package docqa

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/acadassist/acadassist/ai"
	"github.com/acadassist/acadassist/internal/profile"
	"github.com/acadassist/acadassist/store"
)

// memoryDriver keeps document chunks in memory and returns them in insert
// order from search. The academic lookups are unused here.
type memoryDriver struct {
	chunks []*store.DocumentChunk
}

func (d *memoryDriver) GetDB() *sql.DB                    { return nil }
func (d *memoryDriver) Close() error                      { return nil }
func (d *memoryDriver) Migrate(ctx context.Context) error { return nil }

func (d *memoryDriver) GetUserByEmail(ctx context.Context, email string) (*store.User, error) {
	return nil, nil
}

func (d *memoryDriver) GetUserByUsername(ctx context.Context, username string) (*store.User, error) {
	return nil, nil
}

func (d *memoryDriver) GetUserByStudentCode(ctx context.Context, code string) (*store.User, error) {
	return nil, nil
}

func (d *memoryDriver) FindUsersByName(ctx context.Context, first, last string) ([]*store.User, error) {
	return nil, nil
}

func (d *memoryDriver) GetCurrentSemester(ctx context.Context) (*store.Semester, error) {
	return nil, nil
}

func (d *memoryDriver) ListCurrentCourses(ctx context.Context, studentID, semesterID int32) ([]*store.CourseRecord, error) {
	return nil, nil
}

func (d *memoryDriver) ListStudentCourses(ctx context.Context, studentID int32) ([]*store.CourseRecord, error) {
	return nil, nil
}

func (d *memoryDriver) GetStudentInfo(ctx context.Context, code string) (*store.StudentInfo, error) {
	return nil, nil
}

func (d *memoryDriver) RunQuery(ctx context.Context, query string) (*store.QueryResult, error) {
	return nil, nil
}

func (d *memoryDriver) UpsertDocumentChunk(ctx context.Context, chunk *store.DocumentChunk) (*store.DocumentChunk, error) {
	d.chunks = append(d.chunks, chunk)
	return chunk, nil
}

func (d *memoryDriver) DeleteDocumentChunksBySource(ctx context.Context, source string) error {
	kept := d.chunks[:0]
	for _, chunk := range d.chunks {
		if chunk.Source != source {
			kept = append(kept, chunk)
		}
	}
	d.chunks = kept
	return nil
}

func (d *memoryDriver) SearchDocumentChunks(ctx context.Context, vector []float32, limit int) ([]*store.DocumentChunkMatch, error) {
	matches := []*store.DocumentChunkMatch{}
	for _, chunk := range d.chunks {
		if len(matches) == limit {
			break
		}
		matches = append(matches, &store.DocumentChunkMatch{DocumentChunk: chunk, Score: 1})
	}
	return matches, nil
}

func (d *memoryDriver) CountDocumentChunks(ctx context.Context) (int64, error) {
	return int64(len(d.chunks)), nil
}

// fixedEmbedder returns a constant vector for every input.
type fixedEmbedder struct{}

func (fixedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func (fixedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range vectors {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

func (fixedEmbedder) Dimensions() int { return 3 }
func (fixedEmbedder) Model() string   { return "test-embedding" }

// cannedLLM returns a fixed answer and records the last prompt.
type cannedLLM struct {
	answer     string
	lastPrompt string
}

func (l *cannedLLM) Chat(ctx context.Context, messages []ai.Message) (string, error) {
	l.lastPrompt = messages[len(messages)-1].Content
	return l.answer, nil
}

func newTestService(driver *memoryDriver, llm ai.Service) *Service {
	return NewService(store.New(driver, &profile.Profile{}), fixedEmbedder{}, llm)
}

func TestIngest(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# Notes\n\nDatabases use indexes."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.txt"), []byte("Pipelines speed up the CPU."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "image.png"), []byte{0x89}, 0o644))

	driver := &memoryDriver{}
	service := newTestService(driver, nil)

	count, err := service.Ingest(ctx, dir)
	require.NoError(t, err)
	require.Equal(t, 2, count)
	require.Len(t, driver.chunks, 2)
	for _, chunk := range driver.chunks {
		require.NotEmpty(t, chunk.UID)
		require.Equal(t, "test-embedding", chunk.Model)
		require.Equal(t, []float32{1, 0, 0}, chunk.Embedding)
	}
}

func TestIngestReplacesExistingSource(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("first version"), 0o644))

	driver := &memoryDriver{}
	service := newTestService(driver, nil)

	_, err := service.Ingest(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("second version"), 0o644))
	_, err = service.Ingest(ctx, dir)
	require.NoError(t, err)

	require.Len(t, driver.chunks, 1)
	require.Equal(t, "second version", driver.chunks[0].Content)
}

func TestIngestMissingDir(t *testing.T) {
	_, err := newTestService(&memoryDriver{}, nil).Ingest(context.Background(), "/does/not/exist")
	require.Error(t, err)
}

func TestRespond(t *testing.T) {
	ctx := context.Background()
	driver := &memoryDriver{}
	llm := &cannedLLM{answer: "An index speeds up lookups."}
	service := newTestService(driver, llm)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("Databases use indexes for fast lookups."), 0o644))
	_, err := service.Ingest(ctx, dir)
	require.NoError(t, err)

	answer, err := service.Respond(ctx, "what is an index")
	require.NoError(t, err)

	// Retrieved chunk text lands in the prompt.
	require.Contains(t, llm.lastPrompt, "Databases use indexes")
	require.Contains(t, llm.lastPrompt, "what is an index")

	// Key terms are highlighted and survive markdown rendering.
	require.Contains(t, answer.Answer, "<mark>index</mark>")
	require.Contains(t, answer.HTML, "<mark>index</mark>")
}

func TestRespondWithoutDocuments(t *testing.T) {
	service := newTestService(&memoryDriver{}, &cannedLLM{answer: "x"})
	_, err := service.Respond(context.Background(), "anything")
	require.Error(t, err)
}
