package classify

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type Category string

const (
	CategoryTask     Category = "Task"
	CategoryReminder Category = "Reminder"
	CategoryIdea     Category = "Idea"
	CategoryNote     Category = "Note"
)

// ValidCategory reports whether s is in the closed category set.
func ValidCategory(s string) bool {
	switch Category(s) {
	case CategoryTask, CategoryReminder, CategoryIdea, CategoryNote:
		return true
	}
	return false
}

// Imperative verbs that open a task ("buy milk", "call the bank").
var taskVerbs = map[string]struct{}{
	"buy": {}, "call": {}, "send": {}, "email": {}, "fix": {}, "schedule": {},
	"clean": {}, "finish": {}, "pay": {}, "book": {}, "pick": {}, "submit": {},
	"review": {}, "write": {}, "update": {}, "order": {}, "cancel": {}, "renew": {},
	"prepare": {}, "plan": {}, "check": {}, "bring": {}, "return": {}, "sign": {},
	"print": {}, "install": {}, "upload": {}, "deploy": {}, "ship": {}, "invite": {},
}

var reminderMarkers = []string{
	"remind", "remember to", "don't forget", "dont forget",
}

var ideaMarkers = []string{
	"idea", "what if", "it would be cool", "maybe we could", "we could build",
	"brainstorm", "concept:",
}

// DetectCategory applies the keyword rules. The bool is false when no rule fired
// and the text needs the inference path. Ties resolve Task > Reminder > Idea; Note
// is never a rule hit, only the inference fallback.
func DetectCategory(text string) (Category, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	words := strings.Fields(lower)
	if len(words) == 0 {
		return CategoryNote, false
	}

	first := strings.TrimFunc(words[0], func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	_, hasTask := taskVerbs[first]
	hasReminder := containsAny(lower, reminderMarkers)
	hasIdea := containsAny(lower, ideaMarkers)

	switch {
	case hasTask:
		return CategoryTask, true
	case hasReminder:
		return CategoryReminder, true
	case hasIdea:
		return CategoryIdea, true
	}

	return CategoryNote, false
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

const maxTitleLength = 60

// DeriveTitle takes the first salient clause and bounds it to maxTitleLength.
func DeriveTitle(text string) string {
	t := collapseWhitespace(text)

	// Cut at the first clause boundary.
	if i := strings.IndexAny(t, ".;!?\n"); i > 0 {
		t = t[:i]
	}
	t = strings.TrimSpace(t)

	runes := []rune(t)
	if len(runes) > maxTitleLength {
		cut := maxTitleLength
		// Back up to a word boundary so the title doesn't end mid-word.
		for cut > 0 && !unicode.IsSpace(runes[cut-1]) {
			cut--
		}
		if cut == 0 {
			cut = maxTitleLength
		}
		t = strings.TrimSpace(string(runes[:cut]))
	}

	return capitalize(t)
}

// FormatContent normalizes the working text into the note body. Tasks and
// reminders become checklist items with the resolved date phrase stripped, the
// rest becomes plain markdown paragraphs.
func FormatContent(category Category, text string, datePhrase string) string {
	body := collapseWhitespace(text)
	if datePhrase != "" && (category == CategoryTask || category == CategoryReminder) {
		body = stripPhrase(body, datePhrase)
	}

	body = capitalize(strings.TrimSpace(body))
	if body == "" {
		return ""
	}

	if category == CategoryTask || category == CategoryReminder {
		return "- [ ] " + body
	}

	last, _ := utf8.DecodeLastRuneInString(body)
	if !strings.ContainsRune(".!?…。！？", last) {
		body += "."
	}
	return body
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// stripPhrase removes a phrase case-insensitively and tidies leftover spacing.
func stripPhrase(s, phrase string) string {
	lower := strings.ToLower(s)
	idx := strings.Index(lower, strings.ToLower(phrase))
	if idx < 0 {
		return s
	}
	out := s[:idx] + s[idx+len(phrase):]
	return collapseWhitespace(out)
}
