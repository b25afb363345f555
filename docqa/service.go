package docqa

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/acadassist/acadassist/ai"
	"github.com/acadassist/acadassist/store"
)

// topK is the number of retrieved chunks used as answer context.
const topK = 3

// Answer is the response for a document question. HTML is the markdown
// rendering of Answer with key technical terms highlighted.
type Answer struct {
	Answer string `json:"answer"`
	HTML   string `json:"html,omitempty"`
}

// Service answers questions over the ingested document corpus.
type Service struct {
	store    *store.Store
	embed    ai.EmbeddingService
	llm      ai.Service
	splitter *Splitter
	markdown goldmark.Markdown
}

func NewService(s *store.Store, embed ai.EmbeddingService, llm ai.Service) *Service {
	return &Service{
		store:    s,
		embed:    embed,
		llm:      llm,
		splitter: NewSplitter(),
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			// Keep the <mark> highlighting tags in the rendered output.
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Ingest walks dir for markdown and text files, splits each into chunks,
// embeds them, and replaces the stored chunks for that source. Returns the
// number of chunks ingested.
func (s *Service) Ingest(ctx context.Context, dir string) (int, error) {
	if _, err := os.Stat(dir); err != nil {
		return 0, errors.Wrapf(err, "unable to access docs dir %s", dir)
	}

	total := 0
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".md" && ext != ".txt" {
			return nil
		}

		source, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		count, err := s.ingestFile(ctx, path, source)
		if err != nil {
			return errors.Wrapf(err, "failed to ingest %s", source)
		}
		total += count
		return nil
	})
	if err != nil {
		return total, err
	}

	slog.Info("document ingestion complete", slog.String("dir", dir), slog.Int("chunks", total))
	return total, nil
}

func (s *Service) ingestFile(ctx context.Context, path, source string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	chunks := s.splitter.Split(string(content))
	if len(chunks) == 0 {
		return 0, nil
	}

	vectors, err := s.embed.EmbedBatch(ctx, chunks)
	if err != nil {
		return 0, err
	}
	if len(vectors) != len(chunks) {
		return 0, errors.Errorf("embedding count mismatch: %d chunks, %d vectors", len(chunks), len(vectors))
	}

	// Re-ingesting a source replaces its chunks wholesale.
	if err := s.store.DeleteDocumentChunksBySource(ctx, source); err != nil {
		return 0, err
	}

	now := time.Now().Unix()
	for i, chunk := range chunks {
		if _, err := s.store.UpsertDocumentChunk(ctx, &store.DocumentChunk{
			UID:       shortuuid.New(),
			Source:    source,
			Ordinal:   int32(i),
			Content:   chunk,
			Embedding: vectors[i],
			Model:     s.embed.Model(),
			CreatedTs: now,
		}); err != nil {
			return 0, err
		}
	}
	return len(chunks), nil
}

const answerSystemPrompt = `You are an expert academic assistant specializing in computer science, mathematics, and programming.
Your responses should be:
1. Clear and concise
2. Based on the provided context
3. Include specific references to the source material
4. Highlight key technical terms
5. Include code examples when relevant
6. Explain complex concepts in simple terms`

// Respond retrieves the most relevant chunks for the question and asks the
// generative model to answer from them.
func (s *Service) Respond(ctx context.Context, question string) (*Answer, error) {
	count, err := s.store.CountDocumentChunks(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errors.New("no documents have been ingested")
	}

	vector, err := s.embed.Embed(ctx, question)
	if err != nil {
		return nil, err
	}

	matches, err := s.store.SearchDocumentChunks(ctx, vector, topK)
	if err != nil {
		return nil, err
	}

	var contextText strings.Builder
	for _, match := range matches {
		contextText.WriteString(match.Content)
		contextText.WriteString("\n\n")
	}

	userPrompt := fmt.Sprintf(`Use the following context to answer the question below. Provide a comprehensive and accurate answer.
Include specific references at the end of your response, naming the source document.

Question: %s

Context:
%s
Answer:
`, question, contextText.String())

	text, err := s.llm.Chat(ctx, []ai.Message{
		ai.SystemPrompt(answerSystemPrompt),
		ai.UserMessage(userPrompt),
	})
	if err != nil {
		return nil, err
	}

	text = highlightKeyTerms(text)

	var rendered bytes.Buffer
	if err := s.markdown.Convert([]byte(text), &rendered); err != nil {
		// Rendering is cosmetic; the plain answer still goes out.
		slog.Warn("failed to render answer markdown", slog.String("error", err.Error()))
		return &Answer{Answer: text}, nil
	}
	return &Answer{Answer: text, HTML: rendered.String()}, nil
}

var keyTermsPattern = regexp.MustCompile(`(?i)\b(` + strings.Join([]string{
	"algorithm", "function", "variable", "loop", "array", "matrix", "class", "object",
	"method", "interface", "inheritance", "polymorphism", "encapsulation",
	"database", "query", "table", "index", "transaction", "ACID", "normalization",
	"CPU", "memory", "cache", "bus", "register", "instruction", "pipeline",
	"derivative", "integral", "theorem", "proof", "equation",
}, "|") + `)\b`)

// highlightKeyTerms wraps known technical terms in <mark> tags.
func highlightKeyTerms(text string) string {
	return keyTermsPattern.ReplaceAllString(text, "<mark>$1</mark>")
}
