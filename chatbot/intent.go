package chatbot

import "strings"

// Intent is the routing decision for a question.
type Intent int

const (
	// IntentGenericQuery routes through the generative SQL pipeline.
	IntentGenericQuery Intent = iota
	// IntentOwnCurrentCourses is the student "my current courses" fast path.
	IntentOwnCurrentCourses
	// IntentOtherStudentCourses is the admin lookup of another student's
	// courses by identifier.
	IntentOtherStudentCourses
)

func (i Intent) String() string {
	switch i {
	case IntentOwnCurrentCourses:
		return "own_current_courses"
	case IntentOtherStudentCourses:
		return "other_student_courses"
	default:
		return "generic_query"
	}
}

// Classification is the outcome of intent classification. Identifier is set
// only for IntentOtherStudentCourses.
type Classification struct {
	Intent     Intent
	Identifier *Identifier
}

var (
	otherStudentPhrases = []string{"courses", "enrolled", "taking", "registered"}
	ownCoursesPhrases   = []string{"current courses", "courses i take", "my courses", "enrolled courses"}
)

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// Classify decides how to route a question. The other-student check runs
// before the own-courses check, so a question matching both trigger sets is
// classified as IntentOtherStudentCourses. Role gates fire regardless of
// whether the rest of the request could succeed.
func Classify(question string, role Role, userID int32) (*Classification, error) {
	lower := strings.ToLower(question)

	if id := ExtractIdentifier(question); id != nil && containsAny(lower, otherStudentPhrases) {
		if role != RoleAdministrator {
			return nil, &PermissionError{Msg: "Only administrators can view other students' courses"}
		}
		return &Classification{Intent: IntentOtherStudentCourses, Identifier: id}, nil
	}

	if containsAny(lower, ownCoursesPhrases) {
		if role != RoleStudent {
			return nil, &PermissionError{Msg: "Only students can view their current courses"}
		}
		if userID == 0 {
			return nil, &ValidationError{Msg: "User ID required for this role"}
		}
		return &Classification{Intent: IntentOwnCurrentCourses}, nil
	}

	return &Classification{Intent: IntentGenericQuery}, nil
}
