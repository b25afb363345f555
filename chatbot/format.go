package chatbot

import (
	"fmt"
	"strings"
	"time"

	"github.com/acadassist/acadassist/store"
)

// Deterministic course report rendering. Optional fields render only when
// present; a missing instructor also suppresses the nested office lines.

// FormatCurrentCourses renders the current-semester course report.
func FormatCurrentCourses(courses []*store.CourseRecord) string {
	if len(courses) == 0 {
		return "You are not currently enrolled in any courses for this semester."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are currently enrolled in %d courses:\n\n", len(courses))
	for _, course := range courses {
		fmt.Fprintf(&b, "📚 %s - %s\n", course.CourseCode, course.Title)
		writeCourseDetails(&b, course)
		b.WriteString("\n")
	}
	return b.String()
}

// FormatStudentCourses renders the all-semesters course report for another
// student, looked up by an administrator.
func FormatStudentCourses(courses []*store.CourseRecord, studentName string) string {
	if len(courses) == 0 {
		return "No courses found for this student."
	}
	if studentName == "" {
		studentName = "the student"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Courses for %s (all semesters):\n\n", studentName)
	for _, course := range courses {
		if course.SemesterName != nil {
			fmt.Fprintf(&b, "📚 %s - %s (%s)\n", course.CourseCode, course.Title, *course.SemesterName)
		} else {
			fmt.Fprintf(&b, "📚 %s - %s\n", course.CourseCode, course.Title)
		}
		if course.EnrollmentStatus != nil {
			fmt.Fprintf(&b, "   Status: %s\n", titleCase(*course.EnrollmentStatus))
		}
		writeCourseDetails(&b, course)
		if course.EnrollmentDate != nil {
			fmt.Fprintf(&b, "   Enrollment Date: %s\n", formatDate(*course.EnrollmentDate))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func writeCourseDetails(b *strings.Builder, course *store.CourseRecord) {
	fmt.Fprintf(b, "   Credit Hours: %d\n", course.CreditHours)
	if course.InstructorName != nil {
		fmt.Fprintf(b, "   Instructor: %s\n", *course.InstructorName)
		if course.OfficeLocation != nil {
			fmt.Fprintf(b, "   Office: %s\n", *course.OfficeLocation)
		}
		if course.OfficeHours != nil {
			fmt.Fprintf(b, "   Office Hours: %s\n", *course.OfficeHours)
		}
	}
	if course.Description != nil {
		fmt.Fprintf(b, "   Description: %s\n", *course.Description)
	}
}

// formatDate renders a stored date as YYYY-MM-DD, falling back to the raw
// value when it does not parse.
func formatDate(value string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return value
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
