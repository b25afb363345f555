package chatbot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/acadassist/acadassist/store"
)

func strptr(s string) *string { return &s }

func TestFormatCurrentCoursesEmpty(t *testing.T) {
	got := FormatCurrentCourses(nil)
	require.Equal(t, "You are not currently enrolled in any courses for this semester.", got)
}

func TestFormatCurrentCourses(t *testing.T) {
	courses := []*store.CourseRecord{
		{
			CourseCode:     "CS101",
			Title:          "Intro to Computer Science",
			CreditHours:    3,
			InstructorName: strptr("Ada Lovelace"),
			OfficeLocation: strptr("B-204"),
			OfficeHours:    strptr("Mon 10-12"),
			Description:    strptr("Fundamentals of computing."),
		},
		{
			CourseCode:  "MA201",
			Title:       "Linear Algebra",
			CreditHours: 4,
		},
	}

	got := FormatCurrentCourses(courses)
	require.Contains(t, got, "You are currently enrolled in 2 courses:")
	require.Contains(t, got, "📚 CS101 - Intro to Computer Science\n")
	require.Contains(t, got, "   Instructor: Ada Lovelace\n")
	require.Contains(t, got, "   Office: B-204\n")
	require.Contains(t, got, "   Office Hours: Mon 10-12\n")
	require.Contains(t, got, "   Description: Fundamentals of computing.\n")
	require.Contains(t, got, "📚 MA201 - Linear Algebra\n")
}

func TestFormatCurrentCoursesMissingInstructorSuppressesOfficeLines(t *testing.T) {
	courses := []*store.CourseRecord{
		{
			CourseCode:  "CS101",
			Title:       "Intro to Computer Science",
			CreditHours: 3,
			// Office fields present but no instructor; office lines are
			// nested under the instructor and must not render.
			OfficeLocation: strptr("B-204"),
		},
	}

	got := FormatCurrentCourses(courses)
	require.NotContains(t, got, "Instructor:")
	require.NotContains(t, got, "Office:")
}

func TestFormatStudentCoursesEmpty(t *testing.T) {
	require.Equal(t, "No courses found for this student.", FormatStudentCourses(nil, "John Smith"))
}

func TestFormatStudentCourses(t *testing.T) {
	courses := []*store.CourseRecord{
		{
			CourseCode:       "CS101",
			Title:            "Intro to Computer Science",
			CreditHours:      3,
			EnrollmentStatus: strptr("active"),
			EnrollmentDate:   strptr("2024-01-15T00:00:00Z"),
			SemesterName:     strptr("Fall 2024"),
		},
	}

	got := FormatStudentCourses(courses, "John Smith")
	require.Contains(t, got, "Courses for John Smith (all semesters):")
	require.Contains(t, got, "📚 CS101 - Intro to Computer Science (Fall 2024)\n")
	require.Contains(t, got, "   Status: Active\n")
	require.Contains(t, got, "   Enrollment Date: 2024-01-15\n")
}

func TestFormatStudentCoursesFallbackName(t *testing.T) {
	courses := []*store.CourseRecord{{CourseCode: "CS101", Title: "Intro", CreditHours: 3}}
	got := FormatStudentCourses(courses, "")
	require.Contains(t, got, "Courses for the student (all semesters):")
}

func TestFormatStudentCoursesUnparseableDateRendersRaw(t *testing.T) {
	courses := []*store.CourseRecord{
		{
			CourseCode:     "CS101",
			Title:          "Intro",
			CreditHours:    3,
			EnrollmentDate: strptr("spring intake"),
		},
	}
	got := FormatStudentCourses(courses, "John Smith")
	require.Contains(t, got, "   Enrollment Date: spring intake\n")
}

func TestFormatStudentCoursesMissingOptionals(t *testing.T) {
	// All optionals absent; must render the header line and nothing blows up.
	courses := []*store.CourseRecord{{CourseCode: "CS101", Title: "Intro", CreditHours: 3}}
	got := FormatStudentCourses(courses, "John Smith")
	require.Contains(t, got, "📚 CS101 - Intro\n")
	require.NotContains(t, got, "Status:")
	require.NotContains(t, got, "Enrollment Date:")
}
