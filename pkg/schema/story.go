package schema

import "time"

const (
	DefaultAgeRange = "4-6 years"
	DefaultTone     = "Gentle & Nurturing"
	DefaultStatus   = "draft"
	DefaultAuthor   = "Anonymous"
	DefaultRole     = "supporting character"
)

// Story is the root resource. Characters and pages are owned by the story and
// never shared across stories.
type Story struct {
	ID         string      `json:"id,omitempty"`
	Title      string      `json:"title"`
	Theme      string      `json:"theme,omitempty"`
	Lesson     string      `json:"lesson,omitempty"`
	Outline    string      `json:"outline,omitempty"`
	AgeRange   string      `json:"age_range,omitempty"`
	Tone       string      `json:"tone,omitempty"`
	Characters []Character `json:"characters"`
	Pages      []Page      `json:"pages"`
	CreatedAt  time.Time   `json:"created_at,omitzero"`
	Status     string      `json:"status,omitempty"`
	Author     string      `json:"author,omitempty"`
}

type Character struct {
	ID                string `json:"id,omitempty"`
	Name              string `json:"name" jsonschema_description:"Character's name, short and easy for children to say"`
	Type              string `json:"type" jsonschema_description:"What the character is (e.g., bunny, dragon, little girl)"`
	Personality       string `json:"personality" jsonschema_description:"One or two sentences describing the character's personality"`
	VisualDescription string `json:"visual_description,omitempty" jsonschema_description:"What the character looks like, for illustrations"`
	Role              string `json:"role,omitempty" jsonschema:"enum=main character,enum=supporting character,enum=villain" jsonschema_description:"The character's role in the story"`
	ReferenceImageURL string `json:"reference_image_url,omitempty" jsonschema:"-"`
}

type Page struct {
	ID                 string `json:"id,omitempty"`
	PageNumber         int    `json:"page_number" jsonschema_description:"Position of the page in the story, starting at 1"`
	Text               string `json:"text" jsonschema_description:"The page's story text, 2-4 short sentences"`
	IllustrationPrompt string `json:"illustration_prompt,omitempty" jsonschema_description:"A visual description of the scene for the illustrator"`
	IllustrationURL    string `json:"illustration_url,omitempty" jsonschema:"-"`
}

// Foundation is the AI-drafted starting point of a story: everything except
// the characters and pages themselves.
type Foundation struct {
	Title    string `json:"title" jsonschema_description:"A catchy, child-friendly story title"`
	Theme    string `json:"theme" jsonschema_description:"The story's central theme (e.g., friendship, courage)"`
	Lesson   string `json:"lesson" jsonschema_description:"The core message the story teaches"`
	Outline  string `json:"outline" jsonschema_description:"A short beginning-middle-end outline of the plot"`
	AgeRange string `json:"age_range" jsonschema_description:"Target reader age range (e.g., '4-6 years')"`
	Tone     string `json:"tone" jsonschema_description:"The story's tone (e.g., 'Gentle & Nurturing', 'Playful & Silly')"`
}

// StoryContext is the loosely-typed bag of story fields that grounds prompt
// generation. Every field is optional; absent fields simply contribute no
// prompt clause.
type StoryContext struct {
	Title      string      `json:"title,omitempty"`
	Theme      string      `json:"theme,omitempty"`
	Lesson     string      `json:"lesson,omitempty"`
	Outline    string      `json:"outline,omitempty"`
	AgeRange   string      `json:"age_range,omitempty"`
	Tone       string      `json:"tone,omitempty"`
	Characters []Character `json:"characters,omitempty"`
	Pages      []Page      `json:"pages,omitempty"`
}

// ContextOf projects a stored story into the prompt-builder context bag.
func ContextOf(s Story) StoryContext {
	return StoryContext{
		Title:      s.Title,
		Theme:      s.Theme,
		Lesson:     s.Lesson,
		Outline:    s.Outline,
		AgeRange:   s.AgeRange,
		Tone:       s.Tone,
		Characters: s.Characters,
		Pages:      s.Pages,
	}
}
