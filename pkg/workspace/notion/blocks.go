package notion

import "strings"

// Block building helpers for the Notion API shape.

func richText(text string) []map[string]interface{} {
	return []map[string]interface{}{
		{"type": "text", "text": map[string]interface{}{"content": text}},
	}
}

func textBlock(blockType, text string) map[string]interface{} {
	return map[string]interface{}{
		"object":  "block",
		"type":    blockType,
		blockType: map[string]interface{}{"rich_text": richText(text)},
	}
}

func todoBlock(text string, checked bool) map[string]interface{} {
	return map[string]interface{}{
		"object": "block",
		"type":   "to_do",
		"to_do": map[string]interface{}{
			"rich_text": richText(text),
			"checked":   checked,
		},
	}
}

func codeBlock(code, language string) map[string]interface{} {
	if language == "" {
		language = "plain text"
	}
	return map[string]interface{}{
		"object": "block",
		"type":   "code",
		"code": map[string]interface{}{
			"language":  language,
			"rich_text": richText(code),
		},
	}
}

func dividerBlock() map[string]interface{} {
	return map[string]interface{}{
		"object":  "block",
		"type":    "divider",
		"divider": map[string]interface{}{},
	}
}

// MarkdownToBlocks converts the formatted note body into Notion block objects.
// Supported: headings, bullet/numbered lists, checklists, fenced code, dividers
// and plain paragraphs.
func MarkdownToBlocks(markdown string) []map[string]interface{} {
	var children []map[string]interface{}

	inCode := false
	var codeLines []string
	codeLang := ""

	for _, raw := range strings.Split(markdown, "\n") {
		line := strings.TrimRight(raw, " \t")

		if strings.HasPrefix(line, "```") {
			if !inCode {
				inCode = true
				codeLang = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				codeLines = nil
			} else {
				children = append(children, codeBlock(strings.Join(codeLines, "\n"), codeLang))
				inCode = false
			}
			continue
		}
		if inCode {
			codeLines = append(codeLines, raw)
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case trimmed == "---":
			children = append(children, dividerBlock())
		case strings.HasPrefix(trimmed, "### "):
			children = append(children, textBlock("heading_3", strings.TrimPrefix(trimmed, "### ")))
		case strings.HasPrefix(trimmed, "## "):
			children = append(children, textBlock("heading_2", strings.TrimPrefix(trimmed, "## ")))
		case strings.HasPrefix(trimmed, "# "):
			children = append(children, textBlock("heading_1", strings.TrimPrefix(trimmed, "# ")))
		case strings.HasPrefix(trimmed, "- [ ] "):
			children = append(children, todoBlock(strings.TrimPrefix(trimmed, "- [ ] "), false))
		case strings.HasPrefix(trimmed, "- [x] "), strings.HasPrefix(trimmed, "- [X] "):
			children = append(children, todoBlock(trimmed[6:], true))
		case strings.HasPrefix(trimmed, "- "):
			children = append(children, textBlock("bulleted_list_item", strings.TrimPrefix(trimmed, "- ")))
		case strings.HasPrefix(trimmed, "* "):
			children = append(children, textBlock("bulleted_list_item", strings.TrimPrefix(trimmed, "* ")))
		case hasNumberedPrefix(trimmed):
			children = append(children, textBlock("numbered_list_item", stripNumberedPrefix(trimmed)))
		default:
			children = append(children, textBlock("paragraph", trimmed))
		}
	}

	// Unterminated fence: emit what we collected rather than dropping it.
	if inCode && len(codeLines) > 0 {
		children = append(children, codeBlock(strings.Join(codeLines, "\n"), codeLang))
	}

	return children
}

func hasNumberedPrefix(s string) bool {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i > 0 && i+1 < len(s) && s[i] == '.' && s[i+1] == ' '
}

func stripNumberedPrefix(s string) string {
	i := strings.Index(s, ". ")
	if i < 0 {
		return s
	}
	return s[i+2:]
}
