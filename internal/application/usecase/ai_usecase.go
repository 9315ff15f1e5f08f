package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
	"github.com/jhoicas/elimu-hub/internal/application/ports"
	"github.com/jhoicas/elimu-hub/internal/domain"
	"github.com/jhoicas/elimu-hub/internal/domain/entity"
	"github.com/jhoicas/elimu-hub/internal/domain/repository"
)

// Bounds on a generated scheme.
const (
	MinSchemeWeeks = 1
	MaxSchemeWeeks = 20
)

// maxChatHistory older turns are dropped before the history is sent.
const maxChatHistory = 20

// askTopChunks reference chunks handed to the model for one question.
const askTopChunks = 5

// NoReferenceAnswer reply when no uploaded document matches a question.
const NoReferenceAnswer = "I couldn't find relevant information to answer your question. " +
	"Please try rephrasing or check if documents for your topic have been uploaded."

// TemplateTextSource resolves a template id into its extracted text.
type TemplateTextSource interface {
	Text(ctx context.Context, id string) (string, error)
}

// ReferenceSearcher finds reference chunks for a question.
type ReferenceSearcher interface {
	SearchChunks(ctx context.Context, query, subject, grade string, limit int) ([]dto.ReferenceHit, error)
}

// AIConfig completion parameters shared by every generation call.
type AIConfig struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// AIUseCase generation of schemes and lesson plans, assistant chat and reference questions.
// Each operation issues exactly one completion call, under a timeout, with no retry.
type AIUseCase struct {
	llm       ports.CompletionService
	templates TemplateTextSource
	refs      ReferenceSearcher
	queryLogs repository.QueryLogRepository
	cfg       AIConfig
}

// NewAIUseCase builds the use case around a CompletionService adapter.
func NewAIUseCase(
	llm ports.CompletionService,
	templates TemplateTextSource,
	refs ReferenceSearcher,
	queryLogs repository.QueryLogRepository,
	cfg AIConfig,
) *AIUseCase {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4000
	}
	return &AIUseCase{llm: llm, templates: templates, refs: refs, queryLogs: queryLogs, cfg: cfg}
}

// ── Scheme of work ────────────────────────────────────────────────────────────

// GenerateScheme asks the model for a scheme with exactly req.Weeks weekly plans.
// The scheme is returned unsaved.
func (uc *AIUseCase) GenerateScheme(ctx context.Context, req dto.GenerateSchemeRequest) (*dto.SchemeResponse, error) {
	req.Subject = strings.TrimSpace(req.Subject)
	req.Grade = strings.TrimSpace(req.Grade)
	req.Strand = strings.TrimSpace(req.Strand)
	req.SubStrand = strings.TrimSpace(req.SubStrand)
	req.Term = strings.TrimSpace(req.Term)
	if req.Subject == "" || req.Grade == "" || req.Strand == "" {
		return nil, fmt.Errorf("%w: subject, grade and strand are required", domain.ErrInvalidInput)
	}
	if req.Weeks < MinSchemeWeeks || req.Weeks > MaxSchemeWeeks {
		return nil, fmt.Errorf("%w: weeks must be between %d and %d", domain.ErrInvalidInput, MinSchemeWeeks, MaxSchemeWeeks)
	}
	if req.Term == "" {
		req.Term = "Term 1"
	}

	templateText, err := uc.templateText(ctx, req.TemplateID, req.TemplateContent)
	if err != nil {
		return nil, err
	}

	raw, err := uc.complete(ctx, ports.CompletionRequest{
		System:      cbcSystemPrompt,
		Messages:    []ports.Message{{Role: ports.RoleUser, Content: buildSchemePrompt(req, templateText)}},
		MaxTokens:   uc.cfg.MaxTokens,
		Temperature: uc.cfg.Temperature,
		JSON:        true,
	})
	if err != nil {
		return nil, err
	}

	var payload llmScheme
	if err := decodeModelJSON(raw, &payload); err != nil {
		return nil, err
	}
	if len(payload.WeeklyPlans) < req.Weeks {
		return nil, fmt.Errorf("%w: model returned %d weekly plans, %d requested", domain.ErrUpstream, len(payload.WeeklyPlans), req.Weeks)
	}

	scheme := &entity.SchemeOfWork{
		Title:             strings.TrimSpace(payload.Title),
		Subject:           req.Subject,
		Grade:             req.Grade,
		Term:              req.Term,
		Strand:            req.Strand,
		SubStrand:         req.SubStrand,
		Duration:          strings.TrimSpace(payload.Duration),
		GeneralObjectives: nonNil(payload.GeneralObjectives),
		TemplateID:        req.TemplateID,
		AIGenerated:       true,
	}
	if scheme.Title == "" {
		scheme.Title = fmt.Sprintf("%s %s Scheme of Work - %s", req.Grade, req.Subject, req.Term)
	}
	if scheme.Duration == "" {
		scheme.Duration = fmt.Sprintf("%d weeks", req.Weeks)
	}
	for i, w := range payload.WeeklyPlans[:req.Weeks] {
		plan := entity.WeeklyPlan{
			Topic:               strings.TrimSpace(w.Topic),
			SpecificObjectives:  nonNil(w.SpecificObjectives),
			KeyInquiryQuestions: nonNil(w.KeyInquiryQuestions),
			LearningExperiences: nonNil(w.LearningExperiences),
			CoreCompetencies:    nonNil(w.CoreCompetencies),
			Values:              nonNil(w.Values),
			Resources:           nonNil(w.Resources),
			AssessmentMethods:   nonNil(w.AssessmentMethods),
		}
		if plan.Topic == "" || len(plan.SpecificObjectives) == 0 {
			return nil, fmt.Errorf("%w: week %d has no topic or objectives", domain.ErrUpstream, i+1)
		}
		scheme.WeeklyPlans = append(scheme.WeeklyPlans, plan)
	}
	scheme.SyncWeeks()
	return ToSchemeResponse(scheme), nil
}

// ── Lesson plan ───────────────────────────────────────────────────────────────

// GenerateLessonPlan asks the model for a single lesson plan, returned unsaved.
func (uc *AIUseCase) GenerateLessonPlan(ctx context.Context, req dto.GenerateLessonPlanRequest) (*dto.LessonPlanResponse, error) {
	req.Subject = strings.TrimSpace(req.Subject)
	req.Grade = strings.TrimSpace(req.Grade)
	if req.Subject == "" || req.Grade == "" {
		return nil, fmt.Errorf("%w: subject and grade are required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Topic) == "" && strings.TrimSpace(req.SubStrand) == "" {
		return nil, fmt.Errorf("%w: topic or subStrand is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Duration) == "" {
		req.Duration = "40 minutes"
	}

	templateText, err := uc.templateText(ctx, req.TemplateID, req.TemplateContent)
	if err != nil {
		return nil, err
	}

	raw, err := uc.complete(ctx, ports.CompletionRequest{
		System:      cbcSystemPrompt,
		Messages:    []ports.Message{{Role: ports.RoleUser, Content: buildLessonPlanPrompt(req, templateText)}},
		MaxTokens:   uc.cfg.MaxTokens,
		Temperature: uc.cfg.Temperature,
		JSON:        true,
	})
	if err != nil {
		return nil, err
	}

	var payload llmLessonPlan
	if err := decodeModelJSON(raw, &payload); err != nil {
		return nil, err
	}
	plan := &entity.LessonPlan{
		Title:               strings.TrimSpace(payload.Title),
		Subject:             req.Subject,
		Grade:               req.Grade,
		Strand:              strings.TrimSpace(req.Strand),
		SubStrand:           strings.TrimSpace(req.SubStrand),
		Duration:            strings.TrimSpace(payload.Duration),
		SpecificObjectives:  nonNil(payload.SpecificObjectives),
		KeyInquiryQuestions: nonNil(payload.KeyInquiryQuestions),
		CoreCompetencies:    nonNil(payload.CoreCompetencies),
		Values:              nonNil(payload.Values),
		Resources:           nonNil(payload.Resources),
		Assessment:          nonNil(payload.Assessment),
		Reflection:          strings.TrimSpace(payload.Reflection),
		AIGenerated:         true,
	}
	if plan.Title == "" {
		plan.Title = fmt.Sprintf("%s %s: %s", req.Grade, req.Subject, firstNonEmpty(req.Topic, req.SubStrand))
	}
	if plan.Duration == "" {
		plan.Duration = req.Duration
	}
	if len(plan.SpecificObjectives) == 0 {
		return nil, fmt.Errorf("%w: lesson plan has no objectives", domain.ErrUpstream)
	}
	for _, a := range payload.Activities {
		if strings.TrimSpace(a.Description) == "" {
			continue
		}
		plan.Activities = append(plan.Activities, entity.LessonPlanActivity{
			Step:        strings.TrimSpace(a.Step),
			Duration:    strings.TrimSpace(a.Duration),
			Description: strings.TrimSpace(a.Description),
		})
	}
	return ToLessonPlanResponse(plan), nil
}

// ── Chat ──────────────────────────────────────────────────────────────────────

// Chat sends the history plus the new message and returns the extended history.
// On failure the caller's history is returned untouched by the handler.
func (uc *AIUseCase) Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}

	history := make([]dto.ChatMessage, 0, len(req.Messages)+2)
	for _, m := range req.Messages {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		if m.Role != ports.RoleUser && m.Role != ports.RoleAssistant {
			return nil, fmt.Errorf("%w: message role must be user or assistant", domain.ErrInvalidInput)
		}
		history = append(history, m)
	}
	history = append(history, dto.ChatMessage{Role: ports.RoleUser, Content: msg})

	window := history
	if len(window) > maxChatHistory {
		window = window[len(window)-maxChatHistory:]
	}
	msgs := make([]ports.Message, 0, len(window))
	for _, m := range window {
		msgs = append(msgs, ports.Message{Role: m.Role, Content: m.Content})
	}

	reply, err := uc.complete(ctx, ports.CompletionRequest{
		System:      cbcSystemPrompt,
		Messages:    msgs,
		MaxTokens:   uc.cfg.MaxTokens,
		Temperature: uc.cfg.Temperature,
	})
	if err != nil {
		return nil, err
	}
	reply = strings.TrimSpace(reply)
	history = append(history, dto.ChatMessage{Role: ports.RoleAssistant, Content: reply})
	return &dto.ChatResponse{Messages: history, Reply: reply}, nil
}

// ── Reference questions ───────────────────────────────────────────────────────

// Ask answers a question from the best matching reference chunks and logs the query.
func (uc *AIUseCase) Ask(ctx context.Context, userID string, req dto.AskRequest) (*dto.AskResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is required", domain.ErrInvalidInput)
	}
	started := time.Now()

	hits, err := uc.refs.SearchChunks(ctx, question, req.Subject, req.Grade, askTopChunks)
	if err != nil {
		return nil, err
	}

	answer := NoReferenceAnswer
	if len(hits) > 0 {
		answer, err = uc.complete(ctx, ports.CompletionRequest{
			System:      cbcSystemPrompt,
			Messages:    []ports.Message{{Role: ports.RoleUser, Content: buildAskPrompt(question, req.Language, hits)}},
			MaxTokens:   uc.cfg.MaxTokens,
			Temperature: uc.cfg.Temperature,
		})
		if err != nil {
			return nil, err
		}
		answer = strings.TrimSpace(answer)
	}

	elapsed := time.Since(started).Milliseconds()
	uc.logQuery(ctx, &entity.QueryLog{
		ID:               uuid.New().String(),
		UserID:           userID,
		Query:            question,
		Filters:          map[string]string{"subject": req.Subject, "grade": req.Grade, "language": req.Language},
		Response:         answer,
		ChunksRetrieved:  len(hits),
		ProcessingTimeMS: elapsed,
		CreatedAt:        time.Now(),
	})
	if hits == nil {
		hits = []dto.ReferenceHit{}
	}
	return &dto.AskResponse{Answer: answer, Sources: hits, ProcessingTimeMS: elapsed}, nil
}

func (uc *AIUseCase) logQuery(ctx context.Context, q *entity.QueryLog) {
	if uc.queryLogs == nil {
		return
	}
	if err := uc.queryLogs.Create(ctx, q); err != nil {
		log.Error().Err(err).Str("user_id", q.UserID).Msg("ai: could not record query log")
	}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// complete runs one completion call under the configured timeout.
// Every failure, timeouts included, comes back wrapped in domain.ErrUpstream.
func (uc *AIUseCase) complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	out, err := uc.llm.Complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("%w: empty completion", domain.ErrUpstream)
	}
	return out, nil
}

func (uc *AIUseCase) templateText(ctx context.Context, id, inline string) (string, error) {
	if t := strings.TrimSpace(inline); t != "" {
		return t, nil
	}
	if id == "" || uc.templates == nil {
		return "", nil
	}
	if !domain.ValidID(id) {
		return "", fmt.Errorf("%w: templateId is not a valid id", domain.ErrInvalidInput)
	}
	text, err := uc.templates.Text(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("%w: template %s does not exist", domain.ErrInvalidInput, id)
		}
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// jsonBlockRe captures from the first '{' to the last '}'.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON pulls the JSON object out of a completion, tolerating markdown fences
// and chatter around it.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}

func decodeModelJSON(raw string, v any) error {
	clean := extractJSON(raw)
	if clean == "" {
		return fmt.Errorf("%w: no JSON object in completion", domain.ErrUpstream)
	}
	if err := json.Unmarshal([]byte(clean), v); err != nil {
		return fmt.Errorf("%w: completion is not valid JSON: %v", domain.ErrUpstream, err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// ── Model payloads ────────────────────────────────────────────────────────────

// flexList accepts either a JSON array of strings or a single string.
// A single string is split on newlines and semicolons.
type flexList []string

func (l *flexList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*l = list
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == ';' })
	*l = parts
	return nil
}

type llmWeek struct {
	Week                int      `json:"week"`
	Topic               string   `json:"topic"`
	SpecificObjectives  flexList `json:"specificObjectives"`
	KeyInquiryQuestions flexList `json:"keyInquiryQuestions"`
	LearningExperiences flexList `json:"learningExperiences"`
	CoreCompetencies    flexList `json:"coreCompetencies"`
	Values              flexList `json:"values"`
	Resources           flexList `json:"resources"`
	AssessmentMethods   flexList `json:"assessmentMethods"`
}

type llmScheme struct {
	Title             string    `json:"title"`
	Duration          string    `json:"duration"`
	GeneralObjectives flexList  `json:"generalObjectives"`
	WeeklyPlans       []llmWeek `json:"weeklyPlans"`
}

type llmLessonPlan struct {
	Title               string   `json:"title"`
	Duration            string   `json:"duration"`
	SpecificObjectives  flexList `json:"specificObjectives"`
	KeyInquiryQuestions flexList `json:"keyInquiryQuestions"`
	CoreCompetencies    flexList `json:"coreCompetencies"`
	Values              flexList `json:"values"`
	Resources           flexList `json:"resources"`
	Activities          []struct {
		Step        string `json:"step"`
		Duration    string `json:"duration"`
		Description string `json:"description"`
	} `json:"activities"`
	Assessment flexList `json:"assessment"`
	Reflection string   `json:"reflection"`
}
