// Package store provides database access to all raw objects.
package store

import (
	"context"
	"database/sql"

	"github.com/acadassist/acadassist/internal/profile"
)

// Driver is the interface implemented by each database backend.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	// Migrate creates the tables owned by this service. The academic tables
	// (users, courses, enrollments, ...) belong to the LMS and are never
	// created or altered here.
	Migrate(ctx context.Context) error

	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByStudentCode(ctx context.Context, code string) (*User, error)
	FindUsersByName(ctx context.Context, first, last string) ([]*User, error)

	GetCurrentSemester(ctx context.Context) (*Semester, error)
	ListCurrentCourses(ctx context.Context, studentID, semesterID int32) ([]*CourseRecord, error)
	ListStudentCourses(ctx context.Context, studentID int32) ([]*CourseRecord, error)
	GetStudentInfo(ctx context.Context, studentCode string) (*StudentInfo, error)

	// RunQuery executes a generated SQL statement on a dedicated connection
	// and returns ordered row maps with dates normalized to ISO-8601 strings.
	RunQuery(ctx context.Context, query string) (*QueryResult, error)

	UpsertDocumentChunk(ctx context.Context, chunk *DocumentChunk) (*DocumentChunk, error)
	DeleteDocumentChunksBySource(ctx context.Context, source string) error
	SearchDocumentChunks(ctx context.Context, vector []float32, limit int) ([]*DocumentChunkMatch, error)
	CountDocumentChunks(ctx context.Context) (int64, error)
}

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Migrate(ctx context.Context) error {
	return s.driver.Migrate(ctx)
}

func (s *Store) Close() error {
	return s.driver.Close()
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.driver.GetUserByEmail(ctx, email)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return s.driver.GetUserByUsername(ctx, username)
}

func (s *Store) GetUserByStudentCode(ctx context.Context, code string) (*User, error) {
	return s.driver.GetUserByStudentCode(ctx, code)
}

func (s *Store) FindUsersByName(ctx context.Context, first, last string) ([]*User, error) {
	return s.driver.FindUsersByName(ctx, first, last)
}

func (s *Store) GetCurrentSemester(ctx context.Context) (*Semester, error) {
	return s.driver.GetCurrentSemester(ctx)
}

func (s *Store) ListCurrentCourses(ctx context.Context, studentID, semesterID int32) ([]*CourseRecord, error) {
	return s.driver.ListCurrentCourses(ctx, studentID, semesterID)
}

func (s *Store) ListStudentCourses(ctx context.Context, studentID int32) ([]*CourseRecord, error) {
	return s.driver.ListStudentCourses(ctx, studentID)
}

func (s *Store) GetStudentInfo(ctx context.Context, studentCode string) (*StudentInfo, error) {
	return s.driver.GetStudentInfo(ctx, studentCode)
}

func (s *Store) RunQuery(ctx context.Context, query string) (*QueryResult, error) {
	return s.driver.RunQuery(ctx, query)
}

func (s *Store) UpsertDocumentChunk(ctx context.Context, chunk *DocumentChunk) (*DocumentChunk, error) {
	return s.driver.UpsertDocumentChunk(ctx, chunk)
}

func (s *Store) DeleteDocumentChunksBySource(ctx context.Context, source string) error {
	return s.driver.DeleteDocumentChunksBySource(ctx, source)
}

func (s *Store) SearchDocumentChunks(ctx context.Context, vector []float32, limit int) ([]*DocumentChunkMatch, error) {
	return s.driver.SearchDocumentChunks(ctx, vector, limit)
}

func (s *Store) CountDocumentChunks(ctx context.Context) (int64, error) {
	return s.driver.CountDocumentChunks(ctx)
}
