// Package server wires the HTTP surface: the chat pipeline, the student info
// lookup, the spam classifier, and the document QA service.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/acadassist/acadassist/ai"
	"github.com/acadassist/acadassist/chatbot"
	"github.com/acadassist/acadassist/docqa"
	"github.com/acadassist/acadassist/internal/profile"
	"github.com/acadassist/acadassist/spam"
	"github.com/acadassist/acadassist/store"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
	engine     *chatbot.Engine
	docs       *docqa.Service
	classifier *spam.Classifier

	// Retraining is serialized and rate limited; /predict stays lock-free.
	trainMu      sync.Mutex
	trainLimiter *rate.Limiter
}

// NewServer builds the server and its collaborators. The generative pipeline
// and document QA are enabled only when an LLM API key is configured; the
// specialized chat paths and the spam classifier work without one.
func NewServer(ctx context.Context, instanceProfile *profile.Profile, storeInstance *store.Store) (*Server, error) {
	s := &Server{
		Profile:      instanceProfile,
		Store:        storeInstance,
		classifier:   spam.NewClassifier(),
		trainLimiter: rate.NewLimiter(rate.Every(time.Minute), 1),
	}

	var llm ai.Service
	if instanceProfile.IsAIEnabled() {
		var err error
		llm, err = ai.NewLLMService(instanceProfile)
		if err != nil {
			return nil, fmt.Errorf("failed to create llm service: %w", err)
		}

		embedding, err := ai.NewEmbeddingService(instanceProfile)
		if err != nil {
			return nil, fmt.Errorf("failed to create embedding service: %w", err)
		}
		s.docs = docqa.NewService(storeInstance, embedding, llm)
	} else {
		slog.Warn("LLM API key not configured, generic queries and document QA are disabled")
	}
	s.engine = chatbot.NewEngine(storeInstance, llm)

	s.initSpamModel()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(requestLogger)

	e.GET("/health", s.handleHealth)
	e.GET("/metrics", metricsHandler())
	e.POST("/chat", s.handleChat)
	e.POST("/student-info", s.handleStudentInfo)
	e.POST("/predict", s.handlePredict)
	e.POST("/train", s.handleTrain)
	e.POST("/docs/chat", s.handleDocsChat)

	s.echoServer = e
	return s, nil
}

// initSpamModel loads a saved model, or trains from the configured CSV when
// none exists. A missing dataset leaves the classifier untrained; /predict
// reports the condition per request.
func (s *Server) initSpamModel() {
	modelDir := s.modelDir()
	if err := s.classifier.LoadModel(modelDir); err == nil {
		slog.Info("loaded spam model", slog.String("dir", modelDir))
		return
	}

	if _, err := os.Stat(s.Profile.SpamDataPath); err != nil {
		slog.Warn("spam training data not found, classifier disabled until /train",
			slog.String("path", s.Profile.SpamDataPath))
		return
	}

	accuracy, err := s.classifier.Train(s.Profile.SpamDataPath)
	if err != nil {
		slog.Warn("failed to train spam model", slog.String("error", err.Error()))
		return
	}
	if err := s.classifier.SaveModel(modelDir); err != nil {
		slog.Warn("failed to save spam model", slog.String("error", err.Error()))
	}
	slog.Info("trained spam model", slog.Float64("accuracy", accuracy))
}

func (s *Server) modelDir() string {
	return filepath.Join(s.Profile.Data, "models")
}

// Start begins serving and kicks off document ingestion in the background.
func (s *Server) Start(ctx context.Context) error {
	if s.docs != nil {
		go s.ingestDocs(ctx)
	}

	go func() {
		addr := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
		if err := s.echoServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start server", slog.String("error", err.Error()))
		}
	}()
	return nil
}

// ingestDocs fills the vector index from the docs directory when it is
// empty. Re-ingestion of changed files happens on restart with a cleared
// index, not automatically.
func (s *Server) ingestDocs(ctx context.Context) {
	count, err := s.Store.CountDocumentChunks(ctx)
	if err != nil {
		slog.Warn("failed to count document chunks", slog.String("error", err.Error()))
		return
	}
	if count > 0 {
		slog.Info("document index already populated", slog.Int64("chunks", count))
		return
	}
	if _, err := os.Stat(s.Profile.DocsDir); err != nil {
		slog.Warn("docs dir not found, document QA starts empty", slog.String("dir", s.Profile.DocsDir))
		return
	}
	if _, err := s.docs.Ingest(ctx, s.Profile.DocsDir); err != nil {
		slog.Error("document ingestion failed", slog.String("error", err.Error()))
	}
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", slog.String("error", err.Error()))
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", slog.String("error", err.Error()))
	}
	slog.Info("server shutdown complete")
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// requestLogger logs one line per request with a generated request id.
func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := uuid.NewString()
		c.Response().Header().Set(echo.HeaderXRequestID, requestID)
		start := time.Now()

		err := next(c)

		slog.Info("request",
			slog.String("id", requestID),
			slog.String("method", c.Request().Method),
			slog.String("path", c.Request().URL.Path),
			slog.Int("status", c.Response().Status),
			slog.Duration("duration", time.Since(start)),
		)
		return err
	}
}
