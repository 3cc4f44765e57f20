package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"notesync-be/internal/config"
	"notesync-be/pkg/classify"
	"notesync-be/pkg/llm/factory"

	"github.com/fatih/color"
)

// Feeds sample phrasings (or the ones passed on the command line) through the
// classifier so pipeline changes can be eyeballed without a running server.
func main() {
	cfg := config.Load()

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.HuggingFace,
	)
	if err != nil {
		log.Fatalf("Failed to initialize LLM Provider: %v", err)
	}

	classifier := classify.NewNoteClassifier(llmProvider)

	inputs := os.Args[1:]
	if len(inputs) == 0 {
		inputs = []string{
			"buy milk tomorrow",
			"remind me to call John next Friday",
			"what if we built a garden on the roof",
			"had a long chat with Sarah about the trip",
			"schedule dentist appointment in 2 weeks",
		}
	}

	now := time.Now()
	color.Cyan("Classifying %d input(s) against %s (%s)\n", len(inputs), cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	for _, text := range inputs {
		color.Yellow("\n> %s", text)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Ai.ClassifyTimeout)
		result, err := classifier.Classify(ctx, text, now)
		cancel()
		if err != nil {
			color.Red("  classification failed: %v", err)
			continue
		}

		color.Green("  category: %s", result.Category)
		fmt.Printf("  title:    %s\n", result.Title)
		if result.TargetDate != nil {
			fmt.Printf("  date:     %s\n", classify.FormatDate(*result.TargetDate))
		}
		if len(result.Tags) > 0 {
			fmt.Printf("  tags:     %s\n", strings.Join(result.Tags, ", "))
		}
		fmt.Printf("  content:\n")
		for _, line := range strings.Split(result.FormattedContent, "\n") {
			fmt.Printf("    %s\n", line)
		}
	}
}
