package extract

import "strings"

// promptHeader is the fixed part of the annotation task prompt.
const promptHeader = `You are an entity extraction assistant. Extract structured field values from the document text you are given.

Rules:
1. Extract one mention per entity.
2. Tag each mention with a class label exactly equal to one of the allowed fields below.
3. Never invent fields that are not in the allowed list.
4. Never fabricate text that does not appear in the source document.
5. Use the exact text as it appears in the document.`

// BuildPrompt creates the shared annotation prompt for a batch. The same
// prompt is used for every document in the call.
func BuildPrompt(fields []string) string {
	var b strings.Builder

	b.WriteString(promptHeader)
	b.WriteString("\n\nAllowed fields:\n")
	for _, f := range fields {
		b.WriteString("- ")
		b.WriteString(f)
		b.WriteString("\n")
	}

	return b.String()
}
