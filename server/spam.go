package server

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

type predictRequest struct {
	Message string `json:"message"`
}

type predictResponse struct {
	Message    string  `json:"message"`
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
	IsSpam     bool    `json:"is_spam"`
}

func (s *Server) handlePredict(c echo.Context) error {
	request := &predictRequest{}
	if err := c.Bind(request); err != nil || request.Message == "" {
		return badRequest(c, "Invalid request, 'message' field is required")
	}

	prediction, err := s.classifier.Predict(request.Message)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}

	spamPredictions.WithLabelValues(prediction.Label).Inc()
	return c.JSON(http.StatusOK, predictResponse{
		Message:    request.Message,
		Prediction: prediction.Label,
		Confidence: prediction.Confidence,
		IsSpam:     prediction.IsSpam(),
	})
}

type trainResponse struct {
	Success  bool    `json:"success"`
	Message  string  `json:"message"`
	Accuracy float64 `json:"accuracy"`
}

// handleTrain retrains the classifier from the configured dataset. Training
// reads the full CSV, so it is rate limited and serialized.
func (s *Server) handleTrain(c echo.Context) error {
	if !s.trainLimiter.Allow() {
		return c.JSON(http.StatusTooManyRequests, errorResponse{Error: "Training rate limit exceeded, try again later"})
	}

	s.trainMu.Lock()
	defer s.trainMu.Unlock()

	accuracy, err := s.classifier.Train(s.Profile.SpamDataPath)
	if err != nil {
		slog.Error("spam training failed", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	if err := s.classifier.SaveModel(s.modelDir()); err != nil {
		slog.Warn("failed to save spam model", slog.String("error", err.Error()))
	}

	return c.JSON(http.StatusOK, trainResponse{
		Success:  true,
		Message:  "Model trained successfully",
		Accuracy: accuracy,
	})
}
