package services

import (
	"fmt"
	"strings"

	"github.com/soaringjerry/evoa/internal/models"
)

const (
	maxQuestionRunes    = 500
	maxFieldRunes       = 200
	maxDescriptionRunes = 4000
)

const analystPreamble = `You are an analytical AI assistant helping investors evaluate startup pitches. Be neutral, analytical, and slightly skeptical. Never use emojis or hype words like "revolutionary" or "huge potential".`

const analysisSchema = `{
  "brief": {
    "problem": "One-line problem statement",
    "solution": "One-line solution statement",
    "targetCustomer": "Who is the target customer",
    "currentStage": "Current stage of the startup",
    "ask": "What they are asking for (funding, incubation, mentorship)"
  },
  "readinessSignals": {
    "clarity": "High, Medium, or Low",
    "traction": "Strong, Early, or None",
    "market": "Large, Niche, or Unclear",
    "founderSignal": "Convincing, Average, or Needs Depth"
  },
  "questionsToAsk": [
    "3-5 sharp, stage-aware investor questions"
  ],
  "risksAndGaps": [
    "Short, neutral bullet points about risks"
  ],
  "comparableContext": {
    "similarStartups": "Similar startups or patterns in this space",
    "differentiation": "Whether differentiation is clear or weak"
  },
  "recommendation": {
    "verdict": "Worth a short intro call, Track for later, or Skip for now",
    "reasoning": "One-line reasoning for the verdict"
  }
}`

func pitchBlock(p *models.Pitch) string {
	var b strings.Builder
	b.WriteString("Analyze this startup pitch:\n\n")
	fmt.Fprintf(&b, "Startup: %s\n", clip(p.Startup, maxFieldRunes))
	fmt.Fprintf(&b, "Founder: %s\n", clip(p.Founder, maxFieldRunes))
	fmt.Fprintf(&b, "Category: %s\n", clip(p.Category, maxFieldRunes))
	fmt.Fprintf(&b, "Stage: %s\n", clip(string(p.Stage), maxFieldRunes))
	fmt.Fprintf(&b, "Location: %s\n", clip(p.Place, maxFieldRunes))
	fmt.Fprintf(&b, "Description: %s\n", clip(p.Description, maxDescriptionRunes))
	fmt.Fprintf(&b, "Title: %s\n", clip(p.Title, maxFieldRunes))
	return b.String()
}

func analysisPrompt(p *models.Pitch) string {
	return analystPreamble + " No numeric scores or ratings.\n\n" +
		pitchBlock(p) +
		"\nProvide a structured analysis in the following JSON format:\n\n" +
		analysisSchema +
		"\n\nReturn ONLY valid JSON, no markdown, no explanations."
}

func questionPrompt(p *models.Pitch, question string) string {
	q := strings.ReplaceAll(clip(question, maxQuestionRunes), `"`, `'`)
	return analystPreamble + "\n\n" +
		pitchBlock(p) +
		"\nAnswer this specific question from the investor: \"" + q + "\"\n\n" +
		"Provide a direct, concise answer (2-4 sentences). Be analytical and fact-based. If you need to speculate, say so explicitly."
}

// clip trims s and cuts it to at most n runes.
func clip(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// stripCodeFences removes markdown fences a model sometimes wraps JSON in.
func stripCodeFences(text string) string {
	r := strings.NewReplacer("```json\r\n", "", "```json\n", "", "```json", "", "```\r\n", "", "```\n", "", "```", "")
	return strings.TrimSpace(r.Replace(text))
}
