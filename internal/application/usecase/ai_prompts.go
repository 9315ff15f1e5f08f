package usecase

import (
	"fmt"
	"strings"

	"github.com/jhoicas/elimu-hub/internal/application/dto"
)

// maxTemplateRunes template text beyond this length is cut before it goes into a prompt.
const maxTemplateRunes = 4000

const cbcSystemPrompt = `You are an expert in CBC education (Kenya's Competency-Based Curriculum). ` +
	`You help teachers write schemes of work, lesson plans and learning materials that follow the ` +
	`KICD curriculum designs: strands, sub-strands, specific learning outcomes, key inquiry questions, ` +
	`learning experiences, core competencies, values and assessment methods. ` +
	`Be accurate, practical and age-appropriate for the grade requested.`

const schemeJSONShape = `{
  "title": "string",
  "duration": "string",
  "generalObjectives": ["string"],
  "weeklyPlans": [
    {
      "week": 1,
      "topic": "string",
      "specificObjectives": ["string"],
      "keyInquiryQuestions": ["string"],
      "learningExperiences": ["string"],
      "coreCompetencies": ["string"],
      "values": ["string"],
      "resources": ["string"],
      "assessmentMethods": ["string"]
    }
  ]
}`

const lessonPlanJSONShape = `{
  "title": "string",
  "duration": "string",
  "specificObjectives": ["string"],
  "keyInquiryQuestions": ["string"],
  "coreCompetencies": ["string"],
  "values": ["string"],
  "resources": ["string"],
  "activities": [{"step": "string", "duration": "string", "description": "string"}],
  "assessment": ["string"],
  "reflection": "string"
}`

func buildSchemePrompt(req dto.GenerateSchemeRequest, templateText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a CBC scheme of work for %s, %s, %s.\n", req.Subject, req.Grade, req.Term)
	fmt.Fprintf(&b, "Strand: %s\n", req.Strand)
	if req.SubStrand != "" {
		fmt.Fprintf(&b, "Sub-strand: %s\n", req.SubStrand)
	}
	fmt.Fprintf(&b, "Number of weeks: %d\n\n", req.Weeks)
	fmt.Fprintf(&b, "Return exactly %d entries in weeklyPlans, numbered 1 to %d. ", req.Weeks, req.Weeks)
	b.WriteString("Every week needs a topic and at least one specific objective.\n")
	if templateText != "" {
		b.WriteString("\nFollow the structure, headings and level of detail of this sample scheme used by the school:\n")
		b.WriteString("--- TEMPLATE START ---\n")
		b.WriteString(truncateRunes(templateText, maxTemplateRunes))
		b.WriteString("\n--- TEMPLATE END ---\n")
	}
	if req.AdditionalInstructions != "" {
		fmt.Fprintf(&b, "\nAdditional instructions from the teacher: %s\n", req.AdditionalInstructions)
	}
	b.WriteString("\nRespond with a single JSON object of this shape and nothing else:\n")
	b.WriteString(schemeJSONShape)
	return b.String()
}

func buildLessonPlanPrompt(req dto.GenerateLessonPlanRequest, templateText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a CBC lesson plan for %s, %s.\n", req.Subject, req.Grade)
	if req.Strand != "" {
		fmt.Fprintf(&b, "Strand: %s\n", req.Strand)
	}
	if req.SubStrand != "" {
		fmt.Fprintf(&b, "Sub-strand: %s\n", req.SubStrand)
	}
	if req.Topic != "" {
		fmt.Fprintf(&b, "Lesson topic: %s\n", req.Topic)
	}
	fmt.Fprintf(&b, "Lesson duration: %s\n", req.Duration)
	b.WriteString("Organise the activities as introduction, development and conclusion.\n")
	if templateText != "" {
		b.WriteString("\nFollow the structure of this sample lesson plan:\n")
		b.WriteString("--- TEMPLATE START ---\n")
		b.WriteString(truncateRunes(templateText, maxTemplateRunes))
		b.WriteString("\n--- TEMPLATE END ---\n")
	}
	b.WriteString("\nRespond with a single JSON object of this shape and nothing else:\n")
	b.WriteString(lessonPlanJSONShape)
	return b.String()
}

func buildAskPrompt(question, language string, hits []dto.ReferenceHit) string {
	var b strings.Builder
	b.WriteString("Context information from the uploaded curriculum documents:\n\n")
	for i, h := range hits {
		fmt.Fprintf(&b, "[Source %d (%s", i+1, h.DocumentTitle)
		if h.Grade != "" {
			fmt.Fprintf(&b, ", %s", h.Grade)
		}
		fmt.Fprintf(&b, ")]\n%s\n\n", h.Content)
	}
	b.WriteString("Instructions:\n")
	b.WriteString("1. Answer the question based ONLY on the context above.\n")
	b.WriteString("2. If the context does not contain enough information, say so clearly.\n")
	b.WriteString("3. Mention the sources you rely on naturally in the answer.\n")
	switch language {
	case "sw":
		b.WriteString("4. Respond in Kiswahili.\n")
	case "en":
		b.WriteString("4. Respond in English.\n")
	default:
		b.WriteString("4. Respond in English unless the question is asked in Kiswahili.\n")
	}
	fmt.Fprintf(&b, "\nQuestion: %s\n", question)
	return b.String()
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "\n[...]"
}
