package prompt

import (
	"fmt"
	"sort"
	"strings"

	"jongubooks/pkg/schema"
)

// antiTextDirectives are layered into every image prompt. Image models love
// to render gibberish lettering; these push against it.
var antiTextDirectives = []string{
	"Absolutely no text anywhere in the image.",
	"No words, no letters, no numbers, no captions, no labels, no signage.",
	"Any books, signs, or papers in the scene must be blank or purely decorative.",
	"Pure wordless illustration only.",
}

// AntiTextBlock is the fixed directive block appended to image prompts.
func AntiTextBlock() string {
	return strings.Join(antiTextDirectives, " ")
}

// PageRefs carries previously issued illustration URLs referenced by a page
// image prompt. Characters maps character name to reference image URL.
type PageRefs struct {
	Previous   string
	Next       string
	Characters map[string]string
}

// Portrait builds the prompt for a single character portrait.
func Portrait(c schema.Character, style string) string {
	var b strings.Builder
	b.WriteString("A children's book character portrait of " + c.Name)
	if c.Type != "" {
		b.WriteString(", a " + c.Type)
	}
	b.WriteString(".")
	if c.VisualDescription != "" {
		b.WriteString(" " + c.VisualDescription + ".")
	}
	if c.Personality != "" {
		b.WriteString(" Their personality shows through: " + c.Personality + ".")
	}
	if style != "" {
		b.WriteString(" Art style: " + style + ".")
	} else {
		b.WriteString(" Soft, warm, friendly storybook illustration style.")
	}
	b.WriteString(" " + AntiTextBlock())
	return b.String()
}

// PageImage builds the scene illustration prompt for one page. Reference URLs
// for adjacent pages and for characters mentioned (whole-word,
// case-insensitive) in the page text or illustration prompt are cited so the
// image model can keep likeness and style continuous.
func PageImage(ctx schema.StoryContext, pageNumber int, text, illustrationPrompt string, refs PageRefs) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A children's picture book illustration for page %d.\n\n", pageNumber)

	scene := illustrationPrompt
	if scene == "" {
		scene = text
	}
	if scene != "" {
		b.WriteString("Scene: " + scene + "\n")
	}

	if mentioned := mentionedCharacters(ctx.Characters, text, illustrationPrompt); len(mentioned) > 0 {
		b.WriteString("Characters in this scene:\n" + characterSummary(mentioned) + "\n")
	}
	if ctx.Tone != "" {
		b.WriteString("Mood: " + ctx.Tone + "\n")
	}
	if ctx.AgeRange != "" {
		b.WriteString("For readers aged " + ctx.AgeRange + ".\n")
	}

	if refs.Previous != "" {
		b.WriteString("Keep the style consistent with the previous page's illustration: " + refs.Previous + "\n")
	}
	if refs.Next != "" {
		b.WriteString("Keep the style consistent with the next page's illustration: " + refs.Next + "\n")
	}
	for _, name := range sortedRefNames(refs.Characters) {
		if MentionsName(text, name) || MentionsName(illustrationPrompt, name) {
			fmt.Fprintf(&b, "Match %s's likeness to this reference image: %s\n", name, refs.Characters[name])
		}
	}

	b.WriteString("\n" + AntiTextBlock())
	return b.String()
}

// MinimalImage builds a deliberately sparse prompt: a simple scene with heavy
// text suppression and nothing else.
func MinimalImage(description string) string {
	var b strings.Builder
	b.WriteString("A minimal, low-detail children's book illustration.")
	if description != "" {
		b.WriteString(" " + description + ".")
	}
	b.WriteString(" Flat colors, simple shapes, plain background. " + AntiTextBlock())
	return b.String()
}

func mentionedCharacters(chars []schema.Character, text, illustrationPrompt string) []schema.Character {
	var out []schema.Character
	for _, c := range chars {
		if MentionsName(text, c.Name) || MentionsName(illustrationPrompt, c.Name) {
			out = append(out, c)
		}
	}
	return out
}

func sortedRefNames(refs map[string]string) []string {
	names := make([]string, 0, len(refs))
	for name := range refs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
