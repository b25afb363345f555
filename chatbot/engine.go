package chatbot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/sync/semaphore"

	"github.com/acadassist/acadassist/ai"
	"github.com/acadassist/acadassist/store"
)

// maxConcurrentLLMCalls caps in-flight generative-model round trips so a
// burst of generic queries cannot exhaust the provider's rate limit.
const maxConcurrentLLMCalls = 8

// Answer is the successful response for a question. SQLQuery is set only on
// the generic path, since the specialized paths generate no SQL. Intent
// records the routing decision for observability and is not serialized.
type Answer struct {
	Answer     string `json:"answer"`
	SQLQuery   string `json:"sql_query,omitempty"`
	RawResults any    `json:"raw_results,omitempty"`
	Intent     Intent `json:"-"`
}

// Engine composes the pipeline: classify, resolve, fetch or generate, format.
type Engine struct {
	store    *store.Store
	resolver *Resolver
	llm      ai.Service
	llmSem   *semaphore.Weighted
}

// NewEngine creates an Engine. llm may be nil, in which case the generic
// query path reports the model as unavailable.
func NewEngine(s *store.Store, llm ai.Service) *Engine {
	return &Engine{
		store:    s,
		resolver: NewResolver(s),
		llm:      llm,
		llmSem:   semaphore.NewWeighted(maxConcurrentLLMCalls),
	}
}

// Respond answers a question for the given role and acting user. Errors are
// one of the pipeline taxonomy types; the caller maps them to status codes.
func (e *Engine) Respond(ctx context.Context, question string, role Role, userID int32) (*Answer, error) {
	classification, err := Classify(question, role, userID)
	if err != nil {
		return nil, err
	}

	var answer *Answer
	switch classification.Intent {
	case IntentOtherStudentCourses:
		answer, err = e.otherStudentCourses(ctx, classification.Identifier)
	case IntentOwnCurrentCourses:
		answer, err = e.ownCurrentCourses(ctx, userID)
	default:
		answer, err = e.genericQuery(ctx, question, role, userID)
	}
	if err != nil {
		return nil, err
	}
	answer.Intent = classification.Intent
	return answer, nil
}

func (e *Engine) otherStudentCourses(ctx context.Context, id *Identifier) (*Answer, error) {
	user, err := e.resolver.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	courses, err := e.store.ListStudentCourses(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &Answer{
		Answer:     FormatStudentCourses(courses, user.FullName()),
		RawResults: courses,
	}, nil
}

func (e *Engine) ownCurrentCourses(ctx context.Context, userID int32) (*Answer, error) {
	semester, err := e.store.GetCurrentSemester(ctx)
	if err != nil {
		return nil, err
	}
	if semester == nil {
		return nil, &NotFoundError{Msg: "No active semester found"}
	}

	courses, err := e.store.ListCurrentCourses(ctx, userID, semester.ID)
	if err != nil {
		return nil, err
	}

	return &Answer{
		Answer:     FormatCurrentCourses(courses),
		RawResults: courses,
	}, nil
}

// genericQuery is the two round-trip path: the model writes SQL, the scope
// predicate is conjoined server-side, the query runs on a dedicated
// connection, and the model summarizes the rows.
func (e *Engine) genericQuery(ctx context.Context, question string, role Role, userID int32) (*Answer, error) {
	if e.llm == nil {
		return nil, &UpstreamError{Msg: "generative model is not configured"}
	}

	if err := e.llmSem.Acquire(ctx, 1); err != nil {
		return nil, &UpstreamError{Msg: "request canceled while waiting for model", Err: err}
	}
	defer e.llmSem.Release(1)

	scope := ScopeFor(role, userID)

	generated, err := e.llm.Chat(ctx, []ai.Message{
		ai.SystemPrompt(sqlSystemPrompt(scope)),
		ai.UserMessage(sqlUserPrompt(question)),
	})
	if err != nil {
		return nil, &UpstreamError{Msg: "SQL generation failed", Err: err}
	}

	query := scope.Apply(stripCodeFences(generated))
	slog.Debug("executing generated query", slog.String("query", query))

	result, err := e.store.RunQuery(ctx, query)
	if err != nil {
		return nil, &ExecutionError{Msg: fmt.Sprintf("Database error: %v", err)}
	}

	resultsJSON, err := json.Marshal(result.Rows)
	if err != nil {
		return nil, err
	}

	answer, err := e.llm.Chat(ctx, []ai.Message{
		ai.SystemPrompt(summarySystemPrompt),
		ai.UserMessage(summaryUserPrompt(question, string(resultsJSON), role)),
	})
	if err != nil {
		return nil, &UpstreamError{Msg: "summary generation failed", Err: err}
	}

	return &Answer{
		Answer:     answer,
		SQLQuery:   query,
		RawResults: result.Rows,
	}, nil
}
