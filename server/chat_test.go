package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/acadassist/acadassist/chatbot"
	"github.com/acadassist/acadassist/internal/profile"
	"github.com/acadassist/acadassist/spam"
	"github.com/acadassist/acadassist/store"
)

// stubDriver serves the handler tests; only the academic lookups used by the
// specialized chat paths are wired.
type stubDriver struct {
	semester    *store.Semester
	courses     []*store.CourseRecord
	studentInfo *store.StudentInfo
}

func (d *stubDriver) GetDB() *sql.DB                    { return nil }
func (d *stubDriver) Close() error                      { return nil }
func (d *stubDriver) Migrate(ctx context.Context) error { return nil }

func (d *stubDriver) GetUserByEmail(ctx context.Context, email string) (*store.User, error) {
	return nil, nil
}

func (d *stubDriver) GetUserByUsername(ctx context.Context, username string) (*store.User, error) {
	return nil, nil
}

func (d *stubDriver) GetUserByStudentCode(ctx context.Context, code string) (*store.User, error) {
	return nil, nil
}

func (d *stubDriver) FindUsersByName(ctx context.Context, first, last string) ([]*store.User, error) {
	return nil, nil
}

func (d *stubDriver) GetCurrentSemester(ctx context.Context) (*store.Semester, error) {
	return d.semester, nil
}

func (d *stubDriver) ListCurrentCourses(ctx context.Context, studentID, semesterID int32) ([]*store.CourseRecord, error) {
	return d.courses, nil
}

func (d *stubDriver) ListStudentCourses(ctx context.Context, studentID int32) ([]*store.CourseRecord, error) {
	return d.courses, nil
}

func (d *stubDriver) GetStudentInfo(ctx context.Context, code string) (*store.StudentInfo, error) {
	return d.studentInfo, nil
}

func (d *stubDriver) RunQuery(ctx context.Context, query string) (*store.QueryResult, error) {
	return &store.QueryResult{Rows: []store.QueryRow{}}, nil
}

func (d *stubDriver) UpsertDocumentChunk(ctx context.Context, chunk *store.DocumentChunk) (*store.DocumentChunk, error) {
	return chunk, nil
}

func (d *stubDriver) DeleteDocumentChunksBySource(ctx context.Context, source string) error {
	return nil
}

func (d *stubDriver) SearchDocumentChunks(ctx context.Context, vector []float32, limit int) ([]*store.DocumentChunkMatch, error) {
	return nil, nil
}

func (d *stubDriver) CountDocumentChunks(ctx context.Context) (int64, error) {
	return 0, nil
}

func newTestServer(t *testing.T, driver store.Driver) *Server {
	t.Helper()
	p := &profile.Profile{Mode: "demo", Data: t.TempDir()}
	st := store.New(driver, p)
	return &Server{
		Profile:      p,
		Store:        st,
		engine:       chatbot.NewEngine(st, nil),
		classifier:   spam.NewClassifier(),
		trainLimiter: rate.NewLimiter(rate.Every(time.Minute), 1),
	}
}

func doJSON(t *testing.T, handler echo.HandlerFunc, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))

	payload := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return rec, payload
}

func TestHandleChatValidation(t *testing.T) {
	s := newTestServer(t, &stubDriver{})

	tests := []struct {
		body string
		want string
	}{
		{`{}`, "No question provided"},
		{`{"question": "hello"}`, "No role ID provided"},
		{`{"question": "hello", "role_id": 9}`, "Invalid role ID"},
		{`{"question": "hello", "role_id": 3}`, "User ID required for this role"},
		{`{"question": "hello", "role_id": 2}`, "User ID required for this role"},
	}
	for _, tt := range tests {
		rec, payload := doJSON(t, s.handleChat, tt.body)
		require.Equal(t, http.StatusBadRequest, rec.Code, tt.body)
		require.Equal(t, tt.want, payload["error"], tt.body)
	}
}

func TestHandleChatPermissionDenied(t *testing.T) {
	s := newTestServer(t, &stubDriver{})

	rec, payload := doJSON(t, s.handleChat,
		`{"question": "show courses for bob@example.com", "role_id": 2, "user_id": 7}`)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "Only administrators can view other students' courses", payload["error"])
}

func TestHandleChatOwnCurrentCourses(t *testing.T) {
	driver := &stubDriver{
		semester: &store.Semester{ID: 1, Name: "Fall 2026"},
		courses:  []*store.CourseRecord{{CourseCode: "CS101", Title: "Intro", CreditHours: 3}},
	}
	s := newTestServer(t, driver)

	rec, payload := doJSON(t, s.handleChat,
		`{"question": "what are my current courses", "role_id": 3, "user_id": 42}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, payload["answer"], "CS101")
	require.NotContains(t, payload, "sql_query")
	require.Len(t, payload["raw_results"], 1)
}

func TestHandleChatNoActiveSemester(t *testing.T) {
	s := newTestServer(t, &stubDriver{})

	rec, payload := doJSON(t, s.handleChat,
		`{"question": "what are my current courses", "role_id": 3, "user_id": 42}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "No active semester found", payload["error"])
}

func TestHandleChatGenericWithoutModel(t *testing.T) {
	s := newTestServer(t, &stubDriver{})

	rec, _ := doJSON(t, s.handleChat, `{"question": "how many students are there", "role_id": 1}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleStudentInfo(t *testing.T) {
	driver := &stubDriver{
		studentInfo: &store.StudentInfo{UserID: 4, Username: "stu100", StudentCode: "STU100"},
	}
	s := newTestServer(t, driver)

	rec, payload := doJSON(t, s.handleStudentInfo, `{"student_id": "STU100"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "STU100", payload["student_id"])
}

func TestHandleStudentInfoValidation(t *testing.T) {
	s := newTestServer(t, &stubDriver{})

	rec, payload := doJSON(t, s.handleStudentInfo, `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "No student ID provided", payload["error"])
}

func TestHandleStudentInfoNotFound(t *testing.T) {
	s := newTestServer(t, &stubDriver{})

	rec, payload := doJSON(t, s.handleStudentInfo, `{"student_id": "STU404"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Student not found", payload["error"])
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, &stubDriver{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, s.handleHealth(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}
