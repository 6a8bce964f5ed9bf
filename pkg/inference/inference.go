package inference

import (
	"context"

	"github.com/openai/openai-go/v3"
)

// Message is one turn of a caller-supplied conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Inferencer defines an interface for running chat-completion inference.
type Inferencer interface {
	Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error)
	Chat(ctx context.Context, params *openai.ChatCompletionNewParams, system string, history []Message) (string, error)
}

// Painter defines an interface for generating a single image and returning
// the provider's URL for it.
type Painter interface {
	Paint(ctx context.Context, prompt string) (string, error)
}
