package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/application/ports"
	"github.com/jhoicas/elimu-hub/internal/application/usecase"
	"github.com/jhoicas/elimu-hub/internal/domain"
)

func weekJSON(n int) string {
	return fmt.Sprintf(`{"week": %d, "topic": "Numbers %d", "specificObjectives": ["Count to %d0"],
		"keyInquiryQuestions": ["How do we count?"], "learningExperiences": ["Counting bottle tops"],
		"coreCompetencies": ["Critical thinking"], "values": ["Unity"], "resources": ["Counters"],
		"assessmentMethods": ["Oral questions"]}`, n, n, n)
}

const templateID = "3c4d5e6f-7a8b-4c9d-8e0f-1a2b3c4d5e6f"

func schemeJSON(weeks int) string {
	parts := make([]string, 0, weeks)
	for i := 1; i <= weeks; i++ {
		parts = append(parts, weekJSON(i))
	}
	return `{"title": "Grade 3 Maths", "generalObjectives": ["Use numbers in daily life"], "weeklyPlans": [` +
		strings.Join(parts, ",") + `]}`
}

func newAI(llm *fakeLLM) *usecase.AIUseCase {
	return usecase.NewAIUseCase(llm, fakeTemplates{templateID: "WEEK | TOPIC | OBJECTIVES"}, fakeRefs{}, &memQueryLogs{},
		usecase.AIConfig{MaxTokens: 1000, Temperature: 0.5, Timeout: time.Second})
}

func mathsRequest() dto.GenerateSchemeRequest {
	return dto.GenerateSchemeRequest{Subject: "Mathematics", Grade: "Grade 3", Strand: "Numbers", Weeks: 2}
}

// ──────────────────────────────────────────────────────────────────────────────
// GenerateScheme
// ──────────────────────────────────────────────────────────────────────────────

// Case 1: Mathematics / Grade 3 / Numbers / 2 weeks gives exactly 2 complete weekly plans.
func TestGenerateScheme_TwoWeeks(t *testing.T) {
	llm := &fakeLLM{reply: "```json\n" + schemeJSON(2) + "\n```"}
	uc := newAI(llm)

	out, err := uc.GenerateScheme(context.Background(), mathsRequest())
	require.NoError(t, err)

	require.Len(t, out.WeeklyPlans, 2)
	assert.Equal(t, 2, out.Weeks)
	for i, w := range out.WeeklyPlans {
		assert.Equal(t, i+1, w.Week)
		assert.NotEmpty(t, w.Topic)
		assert.NotEmpty(t, w.SpecificObjectives)
	}
	assert.Equal(t, "Mathematics", out.Subject)
	assert.Equal(t, "Term 1", out.Term)
	assert.True(t, out.AIGenerated)
	assert.Empty(t, out.ID, "generated schemes are not persisted")

	require.Len(t, llm.requests, 1)
	req := llm.requests[0]
	assert.True(t, strings.HasPrefix(req.System, "You are an expert in CBC education"))
	assert.True(t, req.JSON)
	assert.Contains(t, req.Messages[0].Content, "Strand: Numbers")
	assert.Contains(t, req.Messages[0].Content, "exactly 2 entries")
}

// Case 2: identical inputs, two calls, two outbound requests.
func TestGenerateScheme_NoCaching(t *testing.T) {
	llm := &fakeLLM{reply: schemeJSON(2)}
	uc := newAI(llm)

	_, err := uc.GenerateScheme(context.Background(), mathsRequest())
	require.NoError(t, err)
	_, err = uc.GenerateScheme(context.Background(), mathsRequest())
	require.NoError(t, err)

	assert.Len(t, llm.requests, 2)
}

// Case 3: extra weekly plans are dropped.
func TestGenerateScheme_TruncatesExtraWeeks(t *testing.T) {
	uc := newAI(&fakeLLM{reply: schemeJSON(4)})

	out, err := uc.GenerateScheme(context.Background(), mathsRequest())
	require.NoError(t, err)
	assert.Len(t, out.WeeklyPlans, 2)
}

// Case 4: too few weekly plans is an upstream failure.
func TestGenerateScheme_TooFewWeeks(t *testing.T) {
	uc := newAI(&fakeLLM{reply: schemeJSON(1)})

	_, err := uc.GenerateScheme(context.Background(), mathsRequest())
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

// Case 5: provider errors and garbage replies surface as ErrUpstream.
func TestGenerateScheme_UpstreamFailures(t *testing.T) {
	for name, llm := range map[string]*fakeLLM{
		"http error": {err: errors.New("HTTP 502")},
		"not json":   {reply: "Here is your scheme: week one is about numbers"},
		"empty":      {reply: "   "},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := newAI(llm).GenerateScheme(context.Background(), mathsRequest())
			assert.ErrorIs(t, err, domain.ErrUpstream)
			assert.Len(t, llm.requests, 1, "no retry")
		})
	}
}

// Case 6: invalid input never reaches the provider.
func TestGenerateScheme_Validation(t *testing.T) {
	llm := &fakeLLM{reply: schemeJSON(2)}
	uc := newAI(llm)

	bad := mathsRequest()
	bad.Weeks = 0
	_, err := uc.GenerateScheme(context.Background(), bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad = mathsRequest()
	bad.Weeks = 21
	_, err = uc.GenerateScheme(context.Background(), bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad = mathsRequest()
	bad.Strand = ""
	_, err = uc.GenerateScheme(context.Background(), bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, llm.requests)
}

// Case 7: template text, by id or inline, is embedded in the prompt.
func TestGenerateScheme_Template(t *testing.T) {
	llm := &fakeLLM{reply: schemeJSON(2)}
	uc := newAI(llm)

	req := mathsRequest()
	req.TemplateID = templateID
	_, err := uc.GenerateScheme(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, llm.requests[0].Messages[0].Content, "WEEK | TOPIC | OBJECTIVES")

	req.TemplateContent = "INLINE LAYOUT"
	_, err = uc.GenerateScheme(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, llm.requests[1].Messages[0].Content, "INLINE LAYOUT")

	req.TemplateContent = ""
	req.TemplateID = "0b9f7c62-4e1d-4a3b-9c8d-7e6f5a4b3c2d"
	_, err = uc.GenerateScheme(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req.TemplateID = "tpl-1"
	_, err = uc.GenerateScheme(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Len(t, llm.requests, 2)
}

// Case 8: list fields sent as a single string are split.
func TestGenerateScheme_StringListsAreSplit(t *testing.T) {
	reply := `{"weeklyPlans": [
		{"topic": "Place value", "specificObjectives": "Identify tens; Identify ones"},
		{"topic": "Addition", "specificObjectives": ["Add 2-digit numbers"]}]}`
	uc := newAI(&fakeLLM{reply: reply})

	out, err := uc.GenerateScheme(context.Background(), mathsRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{"Identify tens", "Identify ones"}, out.WeeklyPlans[0].SpecificObjectives)
	assert.Equal(t, "Grade 3 Mathematics Scheme of Work - Term 1", out.Title)
	assert.Equal(t, "2 weeks", out.Duration)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lesson plans, chat and reference questions
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateLessonPlan(t *testing.T) {
	reply := `{"title": "Counting in tens", "specificObjectives": ["Count in tens up to 100"],
		"activities": [{"step": "introduction", "duration": "5 minutes", "description": "Sing a counting song"},
		{"step": "development", "description": ""}]}`
	llm := &fakeLLM{reply: reply}

	out, err := newAI(llm).GenerateLessonPlan(context.Background(), dto.GenerateLessonPlanRequest{
		Subject: "Mathematics", Grade: "Grade 3", Topic: "Counting",
	})
	require.NoError(t, err)
	assert.Equal(t, "Counting in tens", out.Title)
	assert.Equal(t, "40 minutes", out.Duration)
	assert.Len(t, out.Activities, 1, "activities without a description are dropped")
	assert.Len(t, llm.requests, 1)
}

func TestChat_AppendsReply(t *testing.T) {
	llm := &fakeLLM{reply: "Use bottle tops as counters."}
	history := []dto.ChatMessage{
		{Role: ports.RoleUser, Content: "Hi"},
		{Role: ports.RoleAssistant, Content: "Hello, how can I help?"},
	}

	out, err := newAI(llm).Chat(context.Background(), dto.ChatRequest{Messages: history, Message: "Ideas for counting?"})
	require.NoError(t, err)

	require.Len(t, out.Messages, 4)
	assert.Equal(t, "Ideas for counting?", out.Messages[2].Content)
	assert.Equal(t, ports.RoleAssistant, out.Messages[3].Role)
	assert.Equal(t, "Use bottle tops as counters.", out.Reply)
	assert.Len(t, llm.requests[0].Messages, 3)
}

func TestChat_FailureIsUpstream(t *testing.T) {
	llm := &fakeLLM{err: errors.New("connection reset")}

	_, err := newAI(llm).Chat(context.Background(), dto.ChatRequest{Message: "Hello"})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestAsk_NoReferencesSkipsTheModel(t *testing.T) {
	llm := &fakeLLM{reply: "unused"}
	logs := &memQueryLogs{}
	uc := usecase.NewAIUseCase(llm, nil, fakeRefs{}, logs, usecase.AIConfig{Timeout: time.Second})

	out, err := uc.Ask(context.Background(), "teacher-1", dto.AskRequest{Question: "What is a strand?"})
	require.NoError(t, err)

	assert.Equal(t, usecase.NoReferenceAnswer, out.Answer)
	assert.Empty(t, llm.requests)
	require.Len(t, logs.logs, 1)
	assert.Equal(t, 0, logs.logs[0].ChunksRetrieved)
}

func TestAsk_UsesReferences(t *testing.T) {
	llm := &fakeLLM{reply: "A strand is a broad learning area."}
	logs := &memQueryLogs{}
	refs := fakeRefs{hits: []dto.ReferenceHit{{DocumentTitle: "Grade 3 Design", Content: "Strands are broad areas of learning."}}}
	uc := usecase.NewAIUseCase(llm, nil, refs, logs, usecase.AIConfig{Timeout: time.Second})

	out, err := uc.Ask(context.Background(), "teacher-1", dto.AskRequest{Question: "What is a strand?", Language: "sw"})
	require.NoError(t, err)

	assert.Equal(t, "A strand is a broad learning area.", out.Answer)
	assert.Len(t, out.Sources, 1)
	assert.Contains(t, llm.requests[0].Messages[0].Content, "Strands are broad areas of learning.")
	assert.Contains(t, llm.requests[0].Messages[0].Content, "Kiswahili")
	require.Len(t, logs.logs, 1)
	assert.Equal(t, 1, logs.logs[0].ChunksRetrieved)
}
