package chatbot

import (
	"context"
	"database/sql"

	"github.com/acadassist/acadassist/internal/profile"
	"github.com/acadassist/acadassist/store"
)

// fakeDriver is an in-memory store.Driver. Tests set only the function
// fields they exercise; everything else returns zero values.
type fakeDriver struct {
	getUserByEmail       func(ctx context.Context, email string) (*store.User, error)
	getUserByUsername    func(ctx context.Context, username string) (*store.User, error)
	getUserByStudentCode func(ctx context.Context, code string) (*store.User, error)
	findUsersByName      func(ctx context.Context, first, last string) ([]*store.User, error)
	getCurrentSemester   func(ctx context.Context) (*store.Semester, error)
	listCurrentCourses   func(ctx context.Context, studentID, semesterID int32) ([]*store.CourseRecord, error)
	listStudentCourses   func(ctx context.Context, studentID int32) ([]*store.CourseRecord, error)
	getStudentInfo       func(ctx context.Context, code string) (*store.StudentInfo, error)
	runQuery             func(ctx context.Context, query string) (*store.QueryResult, error)
}

func newFakeStore(driver *fakeDriver) *store.Store {
	return store.New(driver, &profile.Profile{})
}

func (d *fakeDriver) GetDB() *sql.DB                    { return nil }
func (d *fakeDriver) Close() error                      { return nil }
func (d *fakeDriver) Migrate(ctx context.Context) error { return nil }

func (d *fakeDriver) GetUserByEmail(ctx context.Context, email string) (*store.User, error) {
	if d.getUserByEmail == nil {
		return nil, nil
	}
	return d.getUserByEmail(ctx, email)
}

func (d *fakeDriver) GetUserByUsername(ctx context.Context, username string) (*store.User, error) {
	if d.getUserByUsername == nil {
		return nil, nil
	}
	return d.getUserByUsername(ctx, username)
}

func (d *fakeDriver) GetUserByStudentCode(ctx context.Context, code string) (*store.User, error) {
	if d.getUserByStudentCode == nil {
		return nil, nil
	}
	return d.getUserByStudentCode(ctx, code)
}

func (d *fakeDriver) FindUsersByName(ctx context.Context, first, last string) ([]*store.User, error) {
	if d.findUsersByName == nil {
		return nil, nil
	}
	return d.findUsersByName(ctx, first, last)
}

func (d *fakeDriver) GetCurrentSemester(ctx context.Context) (*store.Semester, error) {
	if d.getCurrentSemester == nil {
		return nil, nil
	}
	return d.getCurrentSemester(ctx)
}

func (d *fakeDriver) ListCurrentCourses(ctx context.Context, studentID, semesterID int32) ([]*store.CourseRecord, error) {
	if d.listCurrentCourses == nil {
		return nil, nil
	}
	return d.listCurrentCourses(ctx, studentID, semesterID)
}

func (d *fakeDriver) ListStudentCourses(ctx context.Context, studentID int32) ([]*store.CourseRecord, error) {
	if d.listStudentCourses == nil {
		return nil, nil
	}
	return d.listStudentCourses(ctx, studentID)
}

func (d *fakeDriver) GetStudentInfo(ctx context.Context, code string) (*store.StudentInfo, error) {
	if d.getStudentInfo == nil {
		return nil, nil
	}
	return d.getStudentInfo(ctx, code)
}

func (d *fakeDriver) RunQuery(ctx context.Context, query string) (*store.QueryResult, error) {
	if d.runQuery == nil {
		return &store.QueryResult{Rows: []store.QueryRow{}}, nil
	}
	return d.runQuery(ctx, query)
}

func (d *fakeDriver) UpsertDocumentChunk(ctx context.Context, chunk *store.DocumentChunk) (*store.DocumentChunk, error) {
	return chunk, nil
}

func (d *fakeDriver) DeleteDocumentChunksBySource(ctx context.Context, source string) error {
	return nil
}

func (d *fakeDriver) SearchDocumentChunks(ctx context.Context, vector []float32, limit int) ([]*store.DocumentChunkMatch, error) {
	return nil, nil
}

func (d *fakeDriver) CountDocumentChunks(ctx context.Context) (int64, error) {
	return 0, nil
}
