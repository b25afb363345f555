package chatbot

import "regexp"

// IdentifierKind tags the kind of identifier found in a question.
type IdentifierKind int

const (
	IdentifierEmail IdentifierKind = iota
	IdentifierStudentCode
	IdentifierUsername
	IdentifierPersonName
)

// Identifier is a user-supplied token denoting a specific account, extracted
// from free text. Value holds the email, student code, or username; First and
// Last are set only for person names.
type Identifier struct {
	Kind  IdentifierKind
	Value string
	First string
	Last  string
}

// String returns the identifier as the user wrote it.
func (id *Identifier) String() string {
	if id.Kind == IdentifierPersonName {
		return id.First + " " + id.Last
	}
	return id.Value
}

var (
	emailPattern       = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	studentCodePattern = regexp.MustCompile(`(?i)STU[0-9]+`)
	usernamePattern    = regexp.MustCompile(`(?:for|of|user)\s+([a-zA-Z0-9._-]+)`)
	personNamePattern  = regexp.MustCompile(`(?:for|of)\s+([a-zA-Z]+)\s+([a-zA-Z]+)\b`)
)

// ExtractIdentifier scans the whole question for an account identifier.
// Precedence is fixed, first match wins:
//  1. email anywhere in the text
//  2. student code (STU followed by digits, case-insensitive)
//  3. bare token after "for", "of", or "user", read as a username
//  4. two alphabetic tokens after "for" or "of", read as a (first, last) name
//
// When exactly two alphabetic words follow the trigger, the name reading wins
// over the username reading. Returns nil when nothing matches.
func ExtractIdentifier(question string) *Identifier {
	if m := emailPattern.FindString(question); m != "" {
		return &Identifier{Kind: IdentifierEmail, Value: m}
	}
	if m := studentCodePattern.FindString(question); m != "" {
		return &Identifier{Kind: IdentifierStudentCode, Value: m}
	}
	if m := usernamePattern.FindStringSubmatch(question); m != nil {
		if nm := personNamePattern.FindStringSubmatch(question); nm != nil && nm[1] == m[1] {
			return &Identifier{Kind: IdentifierPersonName, First: nm[1], Last: nm[2]}
		}
		return &Identifier{Kind: IdentifierUsername, Value: m[1]}
	}
	if nm := personNamePattern.FindStringSubmatch(question); nm != nil {
		return &Identifier{Kind: IdentifierPersonName, First: nm[1], Last: nm[2]}
	}
	return nil
}
