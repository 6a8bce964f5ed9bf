package schema

import (
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
)

func generateSchema[T any]() any {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return r.Reflect(v)
}

type CharacterList struct {
	Characters []Character `json:"characters" jsonschema_description:"Drafted story characters"`
}

type PageList struct {
	Pages []Page `json:"pages" jsonschema_description:"Full set of story pages in reading order"`
}

type PageDraft struct {
	Text string `json:"text" jsonschema_description:"The drafted page text"`
}

var (
	CharacterListSchema = generateSchema[CharacterList]()
	FoundationSchema    = generateSchema[Foundation]()
	PageListSchema      = generateSchema[PageList]()
	PageDraftSchema     = generateSchema[PageDraft]()
)

func responseFormat(name, description string, schema any) openai.ChatCompletionNewParamsResponseFormatUnion {
	p := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        name,
		Description: openai.String(description),
		Schema:      schema,
		Strict:      openai.Bool(true),
	}
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: p},
	}
}

func CharacterListResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return responseFormat("character_list", "Characters drafted for a children's story", CharacterListSchema)
}

func FoundationResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return responseFormat("story_foundation", "Title, theme, lesson, outline, age range, and tone for a children's story", FoundationSchema)
}

func PageListResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return responseFormat("page_list", "Complete page set drafted for a children's story", PageListSchema)
}

func PageDraftResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	return responseFormat("page_draft", "A single drafted story page", PageDraftSchema)
}
