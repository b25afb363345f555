package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSpamCSV(t *testing.T, s *Server) {
	t.Helper()
	rows := []string{
		"Category,Message",
		"ham,are we still on for lunch today",
		"ham,send me the notes from class please",
		"ham,see you at the library tonight",
		"ham,thanks for the ride home yesterday",
		"ham,the meeting moved to room 204",
		"spam,WINNER claim your free prize now",
		"spam,free cash prize call now to claim",
		"spam,urgent lottery winnings text WIN now",
		"spam,exclusive offer free ringtones text yes",
		"spam,guaranteed prize call this number now",
	}
	path := filepath.Join(s.Profile.Data, "spam.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(rows, "\n")+"\n"), 0o644))
	s.Profile.SpamDataPath = path
}

func TestHandlePredictValidation(t *testing.T) {
	s := newTestServer(t, &stubDriver{})

	rec, payload := doJSON(t, s.handlePredict, `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Invalid request, 'message' field is required", payload["error"])
}

func TestHandlePredictWithoutModel(t *testing.T) {
	s := newTestServer(t, &stubDriver{})

	rec, _ := doJSON(t, s.handlePredict, `{"message": "free prize"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleTrainThenPredict(t *testing.T) {
	s := newTestServer(t, &stubDriver{})
	writeSpamCSV(t, s)

	rec, payload := doJSON(t, s.handleTrain, `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, payload["success"])
	require.Equal(t, "Model trained successfully", payload["message"])
	require.Contains(t, payload, "accuracy")

	rec, payload = doJSON(t, s.handlePredict, `{"message": "WINNER claim your free cash prize now"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Spam", payload["prediction"])
	require.Equal(t, true, payload["is_spam"])

	// The trained model is persisted next to the data dir.
	_, err := os.Stat(filepath.Join(s.modelDir(), "spam_model.json"))
	require.NoError(t, err)
}

func TestHandleTrainRateLimited(t *testing.T) {
	s := newTestServer(t, &stubDriver{})
	writeSpamCSV(t, s)

	rec, _ := doJSON(t, s.handleTrain, `{}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, payload := doJSON(t, s.handleTrain, `{}`)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Contains(t, payload["error"], "rate limit")
}
