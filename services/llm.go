package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GenerateFunc produces model output for a system instruction and a
// prompt. It is a seam so tests can substitute a stub for the real
// Gemini call.
type GenerateFunc func(ctx context.Context, system, prompt string, temperature float32) (string, error)

// Fallback texts returned when the model call fails or times out. The
// endpoints degrade to these with HTTP 200 rather than surfacing an
// error to the caller.
const (
	ParentFallbackAnswer = "I'm sorry, I'm having trouble interpreting the data right now."
	TutorFallbackAnswer  = "I'm sorry, I'm having trouble answering right now. Please try again in a moment."

	ParentRefusalAnswer = "I can't share specific activity details. " +
		"My role is to explain the overall interpretation and what it means for support, " +
		"rather than provide records or measurements."

	ParentChatDisclaimer = "I can't share specific activity details. My role is to explain overall interpretation rather than provide raw data."
)

// forbiddenKeywords trigger the refusal policy: parent questions that
// probe for raw numbers, dates, or logs never reach the model.
var forbiddenKeywords = []string{
	"number", "minutes", "spent", "log", "date", "time", "statistics", "detail",
}

const parentSystemPrompt = "You explain a child's recent learning flow to a parent.\n\n" +
	"CRITICAL RULES:\n" +
	"- You do NOT see raw data\n" +
	"- You do NOT see logs, numbers, dates, or titles\n" +
	"- You explain patterns, not events\n" +
	"- You avoid judgment, diagnosis, or urgency\n" +
	"- You never suggest punishment or pressure\n" +
	"- You speak calmly and reassuringly\n" +
	"- You frame all conclusions as interpretations, not facts\n" +
	"- If a parent asks for numbers, dates, or specific logs, politely refuse to share them and explain your role"

const tutorSystemPrompt = "You are a helpful and friendly AI tutor. " +
	"Explain concepts clearly and concisely using simple examples. " +
	"If the question is unclear or missing information, ask one short clarifying question. " +
	"Do NOT refuse unless the request is truly impossible."

const summarySystemPrompt = "You summarize a user's daily activity logs. " +
	"Write 2-3 reflective sentences. " +
	"Focus on learning, mindset, and progress."

// ParentInterpretation is the narrative verdict handed back to the
// parent dashboard.
type ParentInterpretation struct {
	CurrentGuidance         string
	InterpretationRationale string
}

// LLMService wraps the Gemini collaborator behind narrowly-typed
// functions. Every call runs under a bounded timeout; only abstract
// narrative sentences ever cross this boundary, never raw counts.
type LLMService struct {
	generate GenerateFunc
	timeout  time.Duration
}

// NewLLMService connects to the Gemini API. model is typically
// "gemini-2.5-flash".
func NewLLMService(apiKey, model string, timeout time.Duration) (*LLMService, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	generate := func(ctx context.Context, system, prompt string, temperature float32) (string, error) {
		resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
			Temperature:       genai.Ptr[float32](temperature),
			MaxOutputTokens:   300,
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		})
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(resp.Text()), nil
	}

	return &LLMService{generate: generate, timeout: timeout}, nil
}

// NewLLMServiceWithGenerator injects a custom generator. Used by tests.
func NewLLMServiceWithGenerator(generate GenerateFunc, timeout time.Duration) *LLMService {
	return &LLMService{generate: generate, timeout: timeout}
}

func formatNarrative(features []string) string {
	var b strings.Builder
	b.WriteString("The following are abstract narrative features prepared by the backend.\n")
	b.WriteString("They already reflect a 14-day rolling interpretation.\n")
	b.WriteString("Do NOT attempt to reconstruct or infer concrete details.\n\n")
	for _, f := range features {
		b.WriteString("- ")
		b.WriteString(f)
		b.WriteString("\n")
	}
	return b.String()
}

// refusesQuestion applies the keyword policy for raw-data probes.
func refusesQuestion(question string) bool {
	lower := strings.ToLower(question)
	for _, kw := range forbiddenKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Interpret generates the standing guidance shown on the parent
// dashboard. The first paragraph of the model output becomes the
// guidance, the remainder the rationale.
func (s *LLMService) Interpret(ctx context.Context, narrative []string) ParentInterpretation {
	prompt := formatNarrative(narrative) +
		"\nParent Question: Please provide a general interpretation of the child's learning flow." +
		"\n\nAnswer in two short paragraphs separated by a blank line: first the current guidance, then the reasoning behind it."

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.generate(ctx, parentSystemPrompt, prompt, 0.15)
	if err != nil || out == "" {
		log.Printf("parent interpretation call failed: %v", err)
		return ParentInterpretation{
			CurrentGuidance:         ParentFallbackAnswer,
			InterpretationRationale: ParentFallbackAnswer,
		}
	}

	guidance, rationale := splitParagraphs(cleanAnswer(out))
	return ParentInterpretation{
		CurrentGuidance:         guidance,
		InterpretationRationale: rationale,
	}
}

// Answer responds to a free-text parent question over the narrative
// features. Questions probing for raw numbers or dates are refused
// locally without a model call.
func (s *LLMService) Answer(ctx context.Context, narrative []string, question string) string {
	if refusesQuestion(question) {
		return ParentRefusalAnswer
	}

	if len(narrative) == 0 {
		narrative = []string{"No recent activity has been recorded; interpretation is based on usual patterns."}
	}

	prompt := formatNarrative(narrative) +
		"\nParent Question: " + question +
		"\n\nGenerate a single concise answer in plain text."

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.generate(ctx, parentSystemPrompt, prompt, 0.15)
	if err != nil || out == "" {
		log.Printf("parent chat call failed: %v", err)
		return ParentFallbackAnswer
	}
	return cleanAnswer(out)
}

// TutorReply answers a student's question given the recent
// conversation history.
func (s *LLMService) TutorReply(ctx context.Context, history, message string) string {
	if strings.TrimSpace(history) == "" {
		history = "No prior conversation."
	}

	prompt := history + "\n\n" + message

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.generate(ctx, tutorSystemPrompt, prompt, 0.3)
	if err != nil || out == "" {
		log.Printf("tutor call failed: %v", err)
		return TutorFallbackAnswer
	}
	return out
}

// SummarizeLogs writes a short reflective summary of a day's activity
// log text.
func (s *LLMService) SummarizeLogs(ctx context.Context, logsText string) string {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.generate(ctx, summarySystemPrompt, logsText, 0.2)
	if err != nil || out == "" {
		log.Printf("summary call failed: %v", err)
		return TutorFallbackAnswer
	}
	return out
}

// cleanAnswer strips the headers and bullet prefixes some model
// responses insist on adding.
func cleanAnswer(out string) string {
	out = strings.TrimSpace(out)
	for _, prefix := range []string{"Current Guidance:", "Current Guidance", "Interpretation:", "- "} {
		out = strings.TrimSpace(strings.TrimPrefix(out, prefix))
	}
	return out
}

func splitParagraphs(out string) (first, rest string) {
	parts := strings.SplitN(out, "\n\n", 2)
	if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return out, out
}
