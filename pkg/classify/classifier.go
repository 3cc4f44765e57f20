// Package classify turns raw captured text into a structured note: category,
// title, formatted body, tags and an optional target date. Keyword rules decide
// the cheap, unambiguous cases; everything else goes through the LLM provider.
package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"notesync-be/pkg/llm"
)

// ErrEmptyText is returned when the working text is empty after trimming.
var ErrEmptyText = errors.New("classify: empty text")

// Result is the classified tuple the pipeline persists.
type Result struct {
	Category         Category
	Title            string
	FormattedContent string
	TargetDate       *time.Time
	Tags             []string
}

type Classifier interface {
	Classify(ctx context.Context, text string, submittedAt time.Time) (*Result, error)
}

type NoteClassifier struct {
	llm llm.LLMProvider
}

var _ Classifier = &NoteClassifier{}

func NewNoteClassifier(provider llm.LLMProvider) *NoteClassifier {
	return &NoteClassifier{llm: provider}
}

func (c *NoteClassifier) Classify(ctx context.Context, text string, submittedAt time.Time) (*Result, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyText
	}

	// Dates always resolve locally against the submission timestamp, never the
	// model, so a retried submission yields the same calendar date.
	targetDate, datePhrase := ResolveTargetDate(trimmed, submittedAt)

	if category, ok := DetectCategory(trimmed); ok {
		return &Result{
			Category:         category,
			Title:            DeriveTitle(trimmed),
			FormattedContent: FormatContent(category, trimmed, datePhrase),
			TargetDate:       targetDate,
			Tags:             []string{string(category)},
		}, nil
	}

	result, err := c.infer(ctx, trimmed, submittedAt)
	if err != nil {
		return nil, fmt.Errorf("classify inference: %w", err)
	}
	result.TargetDate = targetDate

	return result, nil
}

type inferredNote struct {
	Category         string   `json:"category"`
	Title            string   `json:"title"`
	FormattedContent string   `json:"formatted_content"`
	Tags             []string `json:"tags"`
}

func (c *NoteClassifier) infer(ctx context.Context, text string, submittedAt time.Time) (*Result, error) {
	raw, err := c.llm.Generate(ctx, buildPrompt(text, submittedAt), llm.WithTemperature(0.1))
	if err != nil {
		return nil, err
	}

	var parsed inferredNote
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}

	category := Category(parsed.Category)
	if !ValidCategory(parsed.Category) {
		category = CategoryNote
	}

	title := strings.TrimSpace(parsed.Title)
	if title == "" {
		title = DeriveTitle(text)
	}
	if len([]rune(title)) > maxTitleLength {
		title = string([]rune(title)[:maxTitleLength])
	}

	content := strings.TrimSpace(parsed.FormattedContent)
	if content == "" {
		content = FormatContent(category, text, "")
	}

	return &Result{
		Category:         category,
		Title:            title,
		FormattedContent: content,
		Tags:             mergeTags(parsed.Tags, string(category)),
	}, nil
}

// stripCodeFence unwraps ```json fenced replies, which most chat models produce
// despite the "JSON only" instruction.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func mergeTags(tags []string, category string) []string {
	out := make([]string, 0, len(tags)+1)
	seen := make(map[string]bool)
	for _, t := range append(tags, category) {
		t = strings.TrimSpace(t)
		if t == "" || seen[strings.ToLower(t)] {
			continue
		}
		seen[strings.ToLower(t)] = true
		out = append(out, t)
	}
	return out
}
