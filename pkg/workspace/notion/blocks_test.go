package notion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blockTypes(blocks []map[string]interface{}) []string {
	types := make([]string, 0, len(blocks))
	for _, b := range blocks {
		types = append(types, b["type"].(string))
	}
	return types
}

func TestMarkdownToBlocks(t *testing.T) {
	markdown := "# Heading\n" +
		"## Sub\n" +
		"### Deep\n" +
		"plain paragraph\n" +
		"- bullet one\n" +
		"* bullet two\n" +
		"1. first\n" +
		"2. second\n" +
		"- [ ] open item\n" +
		"- [x] done item\n" +
		"---\n" +
		"```go\nfmt.Println(\"hi\")\n```"

	blocks := MarkdownToBlocks(markdown)

	assert.Equal(t, []string{
		"heading_1", "heading_2", "heading_3",
		"paragraph",
		"bulleted_list_item", "bulleted_list_item",
		"numbered_list_item", "numbered_list_item",
		"to_do", "to_do",
		"divider",
		"code",
	}, blockTypes(blocks))
}

func TestMarkdownToBlocksChecklist(t *testing.T) {
	blocks := MarkdownToBlocks("- [ ] buy milk\n- [x] call John")
	require.Len(t, blocks, 2)

	open := blocks[0]["to_do"].(map[string]interface{})
	assert.False(t, open["checked"].(bool))

	done := blocks[1]["to_do"].(map[string]interface{})
	assert.True(t, done["checked"].(bool))
}

func TestMarkdownToBlocksSkipsBlankLines(t *testing.T) {
	blocks := MarkdownToBlocks("one\n\n\ntwo\n")
	assert.Len(t, blocks, 2)
}

func TestMarkdownToBlocksUnterminatedFence(t *testing.T) {
	blocks := MarkdownToBlocks("```\ncode without end")
	require.Len(t, blocks, 1)
	assert.Equal(t, "code", blocks[0]["type"])
}

func TestMarkdownToBlocksEmpty(t *testing.T) {
	assert.Empty(t, MarkdownToBlocks(""))
}
