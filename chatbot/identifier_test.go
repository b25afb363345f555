package chatbot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractIdentifierEmailPrecedence(t *testing.T) {
	// An email wins even when a student code also appears.
	id := ExtractIdentifier("show courses for STU100 and a@b.com")
	require.NotNil(t, id)
	require.Equal(t, IdentifierEmail, id.Kind)
	require.Equal(t, "a@b.com", id.Value)
}

func TestExtractIdentifierStudentCode(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"what is STU12345 taking", "STU12345"},
		{"what is stu42 taking", "stu42"},
		{"courses for Stu007 please", "Stu007"},
	}
	for _, tt := range tests {
		id := ExtractIdentifier(tt.question)
		require.NotNil(t, id, tt.question)
		require.Equal(t, IdentifierStudentCode, id.Kind)
		require.Equal(t, tt.want, id.Value)
	}
}

func TestExtractIdentifierUsername(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"show enrolled courses for j.doe42", "j.doe42"},
		{"courses of jdoe_2024 this year", "jdoe_2024"},
		{"list courses user bob-m", "bob-m"},
	}
	for _, tt := range tests {
		id := ExtractIdentifier(tt.question)
		require.NotNil(t, id, tt.question)
		require.Equal(t, IdentifierUsername, id.Kind)
		require.Equal(t, tt.want, id.Value)
	}
}

func TestExtractIdentifierPersonName(t *testing.T) {
	id := ExtractIdentifier("show courses for john smith")
	require.NotNil(t, id)
	require.Equal(t, IdentifierPersonName, id.Kind)
	require.Equal(t, "john", id.First)
	require.Equal(t, "smith", id.Last)

	// The name order is whatever the question says; the resolver matches
	// both orders, so both readings must extract cleanly.
	id = ExtractIdentifier("show courses for smith john")
	require.NotNil(t, id)
	require.Equal(t, IdentifierPersonName, id.Kind)
	require.Equal(t, "smith", id.First)
	require.Equal(t, "john", id.Last)
}

func TestExtractIdentifierNameWinsOverUsername(t *testing.T) {
	// Two alphabetic words after the trigger read as a name, not as a
	// username followed by noise.
	id := ExtractIdentifier("enrolled courses of jane doe")
	require.NotNil(t, id)
	require.Equal(t, IdentifierPersonName, id.Kind)
	require.Equal(t, "jane", id.First)
	require.Equal(t, "doe", id.Last)
}

func TestExtractIdentifierUsernameWithDigitsStaysUsername(t *testing.T) {
	id := ExtractIdentifier("courses for jane42 doe")
	require.NotNil(t, id)
	require.Equal(t, IdentifierUsername, id.Kind)
	require.Equal(t, "jane42", id.Value)
}

func TestExtractIdentifierNoMatch(t *testing.T) {
	require.Nil(t, ExtractIdentifier("how many courses run this semester"))
	require.Nil(t, ExtractIdentifier(""))
}

func TestIdentifierString(t *testing.T) {
	require.Equal(t, "a@b.com", (&Identifier{Kind: IdentifierEmail, Value: "a@b.com"}).String())
	require.Equal(t, "john smith", (&Identifier{Kind: IdentifierPersonName, First: "john", Last: "smith"}).String())
}
