package chatbot

import (
	"fmt"
	"strings"
)

// Scope is the per-role access policy for the generic query path. PromptRules
// go into the SQL-generation system prompt; Predicate is conjoined into the
// generated query before execution, so row visibility does not depend on the
// model honoring its instructions.
type Scope struct {
	PromptRules string
	Predicate   string
}

// ScopeFor builds the scope policy for a role. Administrators are
// unrestricted; instructors see only their own courses; students see only
// their own rows.
func ScopeFor(role Role, userID int32) Scope {
	switch role {
	case RoleInstructor:
		predicate := fmt.Sprintf("course_id IN (SELECT course_id FROM course_instructors WHERE instructor_id = %d)", userID)
		return Scope{
			PromptRules: fmt.Sprintf(`
As an instructor, you can only access:
- Students enrolled in your courses (use course_instructors table to filter)
- Course information for courses you teach
- Grades and performance data for your courses only

Always include this filter in your queries:
AND %s
`, predicate),
			Predicate: predicate,
		}
	case RoleStudent:
		predicate := fmt.Sprintf("student_id = (SELECT student_id FROM student_profiles WHERE user_id = %d)", userID)
		return Scope{
			PromptRules: fmt.Sprintf(`
As a student, you can only access:
- Your own information (use student_id from student_profiles)
- Courses you are enrolled in
- Your own grades and academic records

Always include this filter in your queries:
AND %s
`, predicate),
			Predicate: predicate,
		}
	case RoleAdministrator:
		return Scope{
			PromptRules: `
As an admin, you have full access to all data. You can:
- Query any student information
- Access all course data
- View instructor assignments
- Generate departmental statistics
- Access all grades and academic records
`,
		}
	default:
		return Scope{}
	}
}

// Apply conjoins the scope predicate into the outermost WHERE clause of a
// generated query. With no predicate the query passes through unchanged
// (minus a trailing semicolon). The predicate is inserted before any
// top-level GROUP BY, HAVING, ORDER BY, or LIMIT tail; a WHERE clause is
// added when the query has none.
func (s Scope) Apply(query string) string {
	query = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(query), ";"))
	if s.Predicate == "" || query == "" {
		return query
	}

	whereIdx := -1
	tailIdx := len(query)
	depth := 0
	inString := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		if inString {
			if c == '\'' {
				inString = false
			}
			continue
		}
		switch c {
		case '\'':
			inString = true
			continue
		case '(':
			depth++
			continue
		case ')':
			depth--
			continue
		}
		if depth != 0 || !isWordStart(query, i) {
			continue
		}
		switch {
		case matchKeyword(query, i, "where"):
			if whereIdx < 0 {
				whereIdx = i
			}
		case matchKeyword(query, i, "group"),
			matchKeyword(query, i, "having"),
			matchKeyword(query, i, "order"),
			matchKeyword(query, i, "limit"):
			if i > whereIdx && i < tailIdx {
				tailIdx = i
			}
		}
	}

	clause := "WHERE " + s.Predicate
	if whereIdx >= 0 {
		clause = "AND (" + s.Predicate + ")"
	}

	head := strings.TrimRight(query[:tailIdx], " \t\n")
	tail := query[tailIdx:]
	if tail == "" {
		return head + " " + clause
	}
	return head + " " + clause + " " + tail
}

func isWordStart(s string, i int) bool {
	if i == 0 {
		return true
	}
	return !isWordChar(s[i-1])
}

func matchKeyword(s string, i int, keyword string) bool {
	end := i + len(keyword)
	if end > len(s) || !strings.EqualFold(s[i:end], keyword) {
		return false
	}
	return end == len(s) || !isWordChar(s[end])
}

func isWordChar(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
