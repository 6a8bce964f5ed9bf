// Package prompt assembles natural-language instructions for the generation
// provider from a story context. Everything here is pure: no I/O, no clock,
// no provider calls.
package prompt

import (
	"fmt"
	"regexp"
	"strings"

	"jongubooks/pkg/schema"
)

// fallbackInstruction replaces the context block when the caller supplied no
// story details at all.
const fallbackInstruction = "No story details have been provided. Invent the title, setting, characters, and plot from scratch, suitable for a children's picture book."

// contextClauses renders one labeled clause per present, non-empty context
// field. Absent fields contribute nothing; there are no placeholder values.
func contextClauses(ctx schema.StoryContext) []string {
	var clauses []string
	if ctx.Title != "" {
		clauses = append(clauses, "Title: "+ctx.Title)
	}
	if ctx.Theme != "" {
		clauses = append(clauses, "Theme: "+ctx.Theme)
	}
	if ctx.Lesson != "" {
		clauses = append(clauses, "Core message: "+ctx.Lesson)
	}
	if ctx.Outline != "" {
		clauses = append(clauses, "Outline: "+ctx.Outline)
	}
	if ctx.AgeRange != "" {
		clauses = append(clauses, "Target age range: "+ctx.AgeRange)
	}
	if ctx.Tone != "" {
		clauses = append(clauses, "Tone: "+ctx.Tone)
	}
	if len(ctx.Characters) > 0 {
		clauses = append(clauses, "Characters:\n"+characterSummary(ctx.Characters))
	}
	if len(ctx.Pages) > 0 {
		clauses = append(clauses, "Story so far:\n"+pageSummary(ctx.Pages))
	}
	return clauses
}

func contextBlock(ctx schema.StoryContext) string {
	clauses := contextClauses(ctx)
	if len(clauses) == 0 {
		return fallbackInstruction
	}
	return strings.Join(clauses, "\n")
}

// characterSummary renders the compact per-character lines interpolated into
// character-aware prompts.
func characterSummary(chars []schema.Character) string {
	lines := make([]string, 0, len(chars))
	for _, c := range chars {
		line := "- " + c.Name
		if c.Type != "" {
			line += " (" + c.Type + ")"
		}
		if c.Personality != "" {
			line += ": " + c.Personality
		}
		if c.VisualDescription != "" {
			line += " Appearance: " + c.VisualDescription
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func pageSummary(pages []schema.Page) string {
	lines := make([]string, 0, len(pages))
	for _, p := range pages {
		lines = append(lines, fmt.Sprintf("Page %d: %s", p.PageNumber, p.Text))
	}
	return strings.Join(lines, "\n")
}

// Characters builds the prompt for drafting n new characters.
func Characters(ctx schema.StoryContext, n int) string {
	if n <= 0 {
		n = 3
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Draft %d characters for a children's picture book.\n\n", n)
	b.WriteString(contextBlock(ctx))
	b.WriteString("\n\nEach character needs a name, a type, a personality, a visual description an illustrator could paint from, and a role in the story.")
	return b.String()
}

// Foundation builds the prompt for drafting the story's title, theme, lesson,
// outline, age range, and tone. idea is the author's free-form seed, if any.
func Foundation(ctx schema.StoryContext, idea string) string {
	var b strings.Builder
	b.WriteString("Draft the foundation of a new children's picture book: a title, a theme, the core message it teaches, a beginning-middle-end outline, a target age range, and a tone.\n\n")
	if idea != "" {
		b.WriteString("The author's idea: " + idea + "\n\n")
	}
	b.WriteString(contextBlock(ctx))
	return b.String()
}

// PageText builds the prompt for drafting a single page's text.
func PageText(ctx schema.StoryContext, pageNumber, totalPages int, previousText string) string {
	var b strings.Builder
	if totalPages > 0 {
		fmt.Fprintf(&b, "Write the text for page %d of a %d-page children's picture book.\n\n", pageNumber, totalPages)
	} else {
		fmt.Fprintf(&b, "Write the text for page %d of a children's picture book.\n\n", pageNumber)
	}
	b.WriteString(contextBlock(ctx))
	if previousText != "" {
		b.WriteString("\n\nThe previous page reads:\n" + previousText)
	}
	b.WriteString("\n\nWrite 2-4 short sentences, simple enough to read aloud, continuing the story naturally.")
	return b.String()
}

// AllPages builds the prompt for drafting the full page set in one call.
func AllPages(ctx schema.StoryContext, n int) string {
	if n <= 0 {
		n = 10
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Write all %d pages of a children's picture book.\n\n", n)
	b.WriteString(contextBlock(ctx))
	b.WriteString("\n\nNumber the pages 1 through ")
	fmt.Fprintf(&b, "%d. Each page needs its text (2-4 short sentences) and an illustration prompt describing the scene visually.", n)
	return b.String()
}

// MentionsName reports whether name appears in text as a whole word,
// case-insensitively.
func MentionsName(text, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || text == "" {
		return false
	}
	rx, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
	if err != nil {
		return false
	}
	return rx.MatchString(text)
}
