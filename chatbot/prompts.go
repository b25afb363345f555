package chatbot

import "strings"

// databaseSchema describes the academic tables for the SQL-generation prompt.
const databaseSchema = `{
  "tables": {
    "users": {
      "columns": ["user_id", "username", "email", "first_name", "last_name", "role_id"],
      "description": "Contains user information for all users (students, instructors, admins)"
    },
    "courses": {
      "columns": ["course_id", "course_code", "title", "description", "credit_hours", "semester_id"],
      "description": "Contains course information"
    },
    "enrollments": {
      "columns": ["enrollment_id", "student_id", "course_id", "enrollment_date", "status", "final_grade"],
      "description": "Tracks student course enrollments and grades"
    },
    "course_instructors": {
      "columns": ["assignment_id", "course_id", "instructor_id"],
      "description": "Maps instructors to courses they teach"
    },
    "instructor_profiles": {
      "columns": ["profile_id", "user_id", "department", "office_location", "office_hours"],
      "description": "Contains instructor-specific information"
    },
    "student_profiles": {
      "columns": ["profile_id", "user_id", "student_id", "date_of_birth", "enrollment_date"],
      "description": "Contains student-specific information"
    },
    "grades": {
      "columns": ["grade_id", "student_id", "course_id", "points_earned", "total_score"],
      "description": "Contains student grades for courses"
    }
  }
}`

// sqlSystemPrompt is the SQL-generation system prompt: base instructions,
// the schema, then the role's access rules.
func sqlSystemPrompt(scope Scope) string {
	return `You are an expert SQL query generator for an academic database.
Your task is to convert natural language questions into valid SQL queries.
Always return ONLY the SQL query without any additional text or explanation.
The query should be optimized and follow SQL best practices.

Use the following schema to understand the database structure:
` + databaseSchema + "\n" + scope.PromptRules
}

func sqlUserPrompt(question string) string {
	return `Convert this question into a SQL query:
` + question + `

Return ONLY the SQL query without any additional text.`
}

// summaryUserPrompt asks the model to turn raw rows into a role-tailored
// natural-language answer.
func summaryUserPrompt(question, resultsJSON string, role Role) string {
	prompt := `Convert these database results into a natural language response:
Question: ` + question + `
Results: ` + resultsJSON + `

Provide a clear, concise answer that directly addresses the question.
If there are no results, say so politely.

Format the response based on the user's role:
`
	switch role {
	case RoleAdministrator:
		prompt += `- Include relevant statistics and summaries
- Highlight any concerning patterns or trends
- Provide actionable insights when applicable`
	case RoleInstructor:
		prompt += `- Focus on student performance and engagement
- Include course-specific statistics
- Highlight areas needing attention`
	case RoleStudent:
		prompt += `- Focus on personal academic progress
- Include relevant deadlines and requirements
- Provide actionable suggestions for improvement`
	}
	return prompt
}

const summarySystemPrompt = "You are a helpful academic database assistant."

// stripCodeFences removes a surrounding markdown code fence from generated
// SQL. Some models wrap output in ```sql blocks despite instructions.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if idx := strings.IndexByte(text, '\n'); idx >= 0 && !strings.ContainsAny(text[:idx], " ;") {
		// Drop the language tag line.
		text = text[idx+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
