package translator

import (
	"fmt"
	"strings"
)

// The prompt quotes at most this many context lines on each side even
// when the collected window is larger.
const (
	promptPreviousLimit = 3
	promptNextLimit     = 2
)

func systemPrompt(targetLanguage string) string {
	return fmt.Sprintf("You are a subtitle translation expert. Produce natural, readable %s subtitles.", targetLanguage)
}

// buildEntryPrompt assembles the per-entry translation prompt from the
// entry text and its context window.
func buildEntryPrompt(text string, ctx Context, targetLanguage string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "This is one subtitle from video content. Translate it into natural, readable %s.\n\n", targetLanguage)
	sb.WriteString("Guidelines:\n")
	sb.WriteString("- Keep the translation short enough for comfortable on-screen reading\n")
	sb.WriteString("- Use the surrounding context so the line reads naturally in sequence\n")
	sb.WriteString("- Return only the translated text, with no explanations or extra output\n\n")

	if len(ctx.Previous) > 0 {
		previous := ctx.Previous
		if len(previous) > promptPreviousLimit {
			previous = previous[len(previous)-promptPreviousLimit:]
		}
		sb.WriteString("Preceding lines:\n")
		for _, line := range previous {
			fmt.Fprintf(&sb, "- %s\n", line)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "Text to translate:\n%s\n", text)

	if len(ctx.Next) > 0 {
		next := ctx.Next
		if len(next) > promptNextLimit {
			next = next[:promptNextLimit]
		}
		sb.WriteString("\nFollowing lines:\n")
		for _, line := range next {
			fmt.Fprintf(&sb, "- %s\n", line)
		}
	}

	if ctx.Scene != "" {
		fmt.Fprintf(&sb, "\nScene: %s\n", ctx.Scene)
	}
	if ctx.Speaker != "" {
		fmt.Fprintf(&sb, "\nSpeaker: %s\n", ctx.Speaker)
	}

	return sb.String()
}

// buildBulkPrompt assembles the whole-chunk translation prompt. The
// serialized SRT blob rides along verbatim; the response is expected to
// mirror its block structure so positional reassembly can recover it.
func buildBulkPrompt(serialized string, targetLanguage string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Translate the text of the following SRT subtitles into natural, readable %s.\n\n", targetLanguage)
	sb.WriteString("Rules:\n")
	sb.WriteString("- Keep the SRT structure exactly: sequence number line, timing line, translated text, blank line between blocks\n")
	sb.WriteString("- Translate only the text lines; copy sequence numbers and timing lines unchanged\n")
	sb.WriteString("- Return the same number of blocks in the same order\n")
	sb.WriteString("- Return only the SRT output, with no explanations\n\n")
	sb.WriteString(serialized)

	return sb.String()
}
