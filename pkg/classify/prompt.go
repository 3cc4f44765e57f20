package classify

import (
	"fmt"
	"time"
)

// buildPrompt is the inference-path prompt for text no rule could place.
// The model only decides category/title/content/tags; target dates are resolved
// locally so retried submissions classify identically.
func buildPrompt(text string, submittedAt time.Time) string {
	return fmt.Sprintf(`You are a smart assistant for classifying captured notes.
%s

Your Tasks:
1. Classify the input as exactly one of: "Task", "Reminder", "Idea", "Note".
2. Extract/Generate a short Title (max 60 characters).
3. FORMAT CONTENT:
   - IF TASK or REMINDER: format as a checklist line starting with "- [ ] ". Remove time words like "tomorrow". Start with a verb.
   - IF NOTE/IDEA: standard Markdown.
4. Extract up to 4 tags.

Output JSON only:
{
    "category": "Task|Reminder|Idea|Note",
    "title": "Title",
    "formatted_content": "Markdown...",
    "tags": ["tag1"]
}

Input: %s`, dateContext(submittedAt), text)
}
