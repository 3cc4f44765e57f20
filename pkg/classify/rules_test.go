package classify

import (
	"strings"
	"testing"
)

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantCategory Category
		wantDecisive bool
	}{
		{
			name:         "imperative verb opens a task",
			text:         "buy milk tomorrow",
			wantCategory: CategoryTask,
			wantDecisive: true,
		},
		{
			name:         "task verb with punctuation",
			text:         "Call: the bank about the mortgage",
			wantCategory: CategoryTask,
			wantDecisive: true,
		},
		{
			name:         "reminder marker",
			text:         "remind me to water the plants",
			wantCategory: CategoryReminder,
			wantDecisive: true,
		},
		{
			name:         "dont forget without apostrophe",
			text:         "dont forget the tickets",
			wantCategory: CategoryReminder,
			wantDecisive: true,
		},
		{
			name:         "idea marker",
			text:         "what if we built a garden on the roof",
			wantCategory: CategoryIdea,
			wantDecisive: true,
		},
		{
			name:         "task verb beats reminder marker",
			text:         "schedule a reminder to check the oven",
			wantCategory: CategoryTask,
			wantDecisive: true,
		},
		{
			name:         "reminder marker beats idea marker",
			text:         "remember to write down that idea about the app",
			wantCategory: CategoryReminder,
			wantDecisive: true,
		},
		{
			name:         "free text is not decisive",
			text:         "had a long chat with Sarah about the trip",
			wantCategory: CategoryNote,
			wantDecisive: false,
		},
		{
			name:         "empty text is not decisive",
			text:         "   ",
			wantCategory: CategoryNote,
			wantDecisive: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, decisive := DetectCategory(tt.text)

			if category != tt.wantCategory {
				t.Errorf("category = %s, want %s", category, tt.wantCategory)
			}
			if decisive != tt.wantDecisive {
				t.Errorf("decisive = %v, want %v", decisive, tt.wantDecisive)
			}
		})
	}
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "short text is capitalized as-is",
			text: "buy milk",
			want: "Buy milk",
		},
		{
			name: "cut at first sentence boundary",
			text: "call the dentist. also ask about the invoice",
			want: "Call the dentist",
		},
		{
			name: "cut at newline",
			text: "meeting notes\nEveryone agreed on the budget",
			want: "Meeting notes",
		},
		{
			name: "whitespace collapsed",
			text: "  pay   the   rent  ",
			want: "Pay the rent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveTitle(tt.text); got != tt.want {
				t.Errorf("DeriveTitle(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDeriveTitleLength(t *testing.T) {
	long := strings.Repeat("every word here counts ", 10)
	title := DeriveTitle(long)

	if len([]rune(title)) > maxTitleLength {
		t.Errorf("title length = %d, want <= %d", len([]rune(title)), maxTitleLength)
	}
	if strings.HasSuffix(title, " ") {
		t.Errorf("title has trailing space: %q", title)
	}
	// Word-boundary truncation must not leave a partial word.
	lastWord := title[strings.LastIndex(title, " ")+1:]
	if lastWord != "every" && lastWord != "word" && lastWord != "here" && lastWord != "counts" {
		t.Errorf("title ends mid-word: %q", title)
	}
}

func TestFormatContent(t *testing.T) {
	tests := []struct {
		name       string
		category   Category
		text       string
		datePhrase string
		want       string
	}{
		{
			name:       "task becomes checklist with date phrase stripped",
			category:   CategoryTask,
			text:       "buy milk tomorrow",
			datePhrase: "tomorrow",
			want:       "- [ ] Buy milk",
		},
		{
			name:       "reminder becomes checklist",
			category:   CategoryReminder,
			text:       "remind me to call John next friday",
			datePhrase: "next friday",
			want:       "- [ ] Remind me to call John",
		},
		{
			name:     "note keeps prose and gains terminal punctuation",
			category: CategoryNote,
			text:     "had a long chat with Sarah about the trip",
			want:     "Had a long chat with Sarah about the trip.",
		},
		{
			name:     "existing punctuation preserved",
			category: CategoryNote,
			text:     "what a day!",
			want:     "What a day!",
		},
		{
			name:       "idea keeps its date phrase",
			category:   CategoryIdea,
			text:       "maybe we could launch next week",
			datePhrase: "next week",
			want:       "Maybe we could launch next week.",
		},
		{
			name:     "multi-byte terminal punctuation preserved",
			category: CategoryNote,
			text:     "not sure where this goes…",
			want:     "Not sure where this goes…",
		},
		{
			name:     "fullwidth terminal punctuation preserved",
			category: CategoryNote,
			text:     "scheduled the demo。",
			want:     "Scheduled the demo。",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatContent(tt.category, tt.text, tt.datePhrase)
			if got != tt.want {
				t.Errorf("FormatContent() = %q, want %q", got, tt.want)
			}
		})
	}
}
