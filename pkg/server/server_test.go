package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jongubooks/pkg/gateway"
	"jongubooks/pkg/inference"
	"jongubooks/pkg/schema"
	"jongubooks/pkg/store"
)

type fixedInferencer struct {
	reply string
	err   error
}

func (f *fixedInferencer) Infer(context.Context, *openai.ChatCompletionNewParams, string, string) (string, error) {
	return f.reply, f.err
}

func (f *fixedInferencer) Chat(context.Context, *openai.ChatCompletionNewParams, string, []inference.Message) (string, error) {
	return f.reply, f.err
}

type fixedPainter struct {
	url string
	err error
}

func (f *fixedPainter) Paint(context.Context, string) (string, error) {
	return f.url, f.err
}

func newTestServer(reply, imageURL string, configured bool) *Server {
	gw := gateway.New(
		&fixedInferencer{reply: reply},
		&fixedPainter{url: imageURL},
		configured, configured,
		gateway.Options{MaxConcurrent: 4, Timeout: time.Second},
	)
	return NewServer(context.Background(), store.NewMemory(), gw)
}

func do(s *Server, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func createStory(t *testing.T, s *Server, title string) schema.Story {
	t.Helper()
	rec := do(s, http.MethodPost, "/api/stories", map[string]string{"title": title})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)
	var story schema.Story
	require.NoError(t, json.Unmarshal(env.Data, &story))
	return story
}

func TestStoryLifecycle(t *testing.T) {
	s := newTestServer("", "", false)

	story := createStory(t, s, "The Lost Acorn")
	assert.NotEmpty(t, story.ID)
	assert.Equal(t, schema.DefaultStatus, story.Status)
	assert.Equal(t, schema.DefaultAuthor, story.Author)

	rec := do(s, http.MethodGet, "/api/stories/"+story.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	var got schema.Story
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "The Lost Acorn", got.Title)

	rec = do(s, http.MethodDelete, "/api/stories/"+story.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "deleted successfully")

	rec = do(s, http.MethodGet, "/api/stories/"+story.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Story not found")
}

func TestCreateStoryRequiresTitle(t *testing.T) {
	s := newTestServer("", "", false)

	rec := do(s, http.MethodPost, "/api/stories", map[string]string{"theme": "friendship"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "title is required")
}

func TestListStoriesCount(t *testing.T) {
	s := newTestServer("", "", false)
	createStory(t, s, "One")
	createStory(t, s, "Two")

	rec := do(s, http.MethodGet, "/api/stories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Count)
	assert.Equal(t, 2, *env.Count)
}

func TestUpdateStoryPreservesIdentity(t *testing.T) {
	s := newTestServer("", "", false)
	story := createStory(t, s, "Before")

	rec := do(s, http.MethodPut, "/api/stories/"+story.ID, map[string]any{
		"id":    "spoofed",
		"title": "After",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	var updated schema.Story
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, story.ID, updated.ID)
	assert.Equal(t, "After", updated.Title)
}

func TestAddCharacterAndPage(t *testing.T) {
	s := newTestServer("", "", false)
	story := createStory(t, s, "The Lost Acorn")

	rec := do(s, http.MethodPost, "/api/stories/"+story.ID+"/characters", map[string]string{
		"name": "Pip", "type": "squirrel", "personality": "curious",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	var ch schema.Character
	require.NoError(t, json.Unmarshal(env.Data, &ch))
	assert.NotEmpty(t, ch.ID)
	assert.Equal(t, schema.DefaultRole, ch.Role)
	assert.Contains(t, env.Message, "Pip")

	for i := 1; i <= 3; i++ {
		rec = do(s, http.MethodPost, "/api/stories/"+story.ID+"/pages", map[string]string{
			"text": fmt.Sprintf("Page body %d.", i),
		})
		require.Equal(t, http.StatusOK, rec.Code)
		env = decodeEnvelope(t, rec)
		var page schema.Page
		require.NoError(t, json.Unmarshal(env.Data, &page))
		assert.Equal(t, i, page.PageNumber)
	}
}

func TestAddPageToUnknownStory(t *testing.T) {
	s := newTestServer("", "", false)

	rec := do(s, http.MethodPost, "/api/stories/missing/pages", map[string]string{"text": "hi"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGPTFamilyUsesQueryParam(t *testing.T) {
	s := newTestServer("", "", false)
	story := createStory(t, s, "Agent Story")

	rec := do(s, http.MethodPost, "/api/gpt/add_page", map[string]string{"text": "hi"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "story_id is required")

	rec = do(s, http.MethodPost, "/api/gpt/add_page?story_id="+story.ID, map[string]string{"text": "First page."})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page 1 added to story!")

	rec = do(s, http.MethodPost, "/api/gpt/add_character?story_id="+story.ID, map[string]string{
		"name": "Momo", "type": "owl", "personality": "wise",
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGenerateCharactersParsesFencedReply(t *testing.T) {
	reply := "```json\n{\"characters\":[{\"name\":\"Pip\",\"type\":\"squirrel\",\"personality\":\"curious\"}]}\n```"
	s := newTestServer(reply, "", true)

	rec := do(s, http.MethodPost, "/api/gpt/generate_characters", map[string]any{
		"story_context":  map[string]string{"title": "The Lost Acorn"},
		"num_characters": 1,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	var chars []schema.Character
	require.NoError(t, json.Unmarshal(env.Data, &chars))
	require.Len(t, chars, 1)
	assert.Equal(t, "Pip", chars[0].Name)
}

func TestGenerateWithoutCredentialIs503(t *testing.T) {
	s := newTestServer("", "", false)

	rec := do(s, http.MethodPost, "/api/gpt/generate_story_foundation", map[string]any{
		"idea": "a shy cloud",
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "credential not configured")
}

func TestImageEndpointsWithoutImageCredentialAre503(t *testing.T) {
	// A Gemini-only deployment: text generation works, image generation has
	// no credential behind it.
	gw := gateway.New(
		&fixedInferencer{reply: `{"text":"Pip peeked outside."}`},
		&fixedPainter{url: "https://img.example/never.png"},
		true, false,
		gateway.Options{MaxConcurrent: 4, Timeout: time.Second},
	)
	s := NewServer(context.Background(), store.NewMemory(), gw)

	rec := do(s, http.MethodPost, "/api/gpt/generate_minimal_image", map[string]string{
		"description": "a single cloud",
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "credential not configured")

	rec = do(s, http.MethodPost, "/api/gpt/generate_page_text", map[string]any{
		"page_number": 1,
	})
	require.Equal(t, http.StatusOK, rec.Code, "text endpoints stay available")
}

func TestGenerateUnparseableReplyIs500(t *testing.T) {
	s := newTestServer("Once upon a time...", "", true)

	rec := do(s, http.MethodPost, "/api/gpt/generate_all_pages", map[string]any{
		"num_pages": 3,
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "generation failed")
}

func TestGeneratePageTextRejectsBadPageNumber(t *testing.T) {
	s := newTestServer("", "", true)

	rec := do(s, http.MethodPost, "/api/gpt/generate_page_text", map[string]any{
		"page_number": 0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateImage(t *testing.T) {
	s := newTestServer("", "https://img.example/pip.png", true)

	rec := do(s, http.MethodPost, "/api/gpt/generate_image", map[string]any{
		"character": map[string]string{"name": "Pip", "type": "squirrel"},
		"style":     "watercolor",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	var img imageResponse
	require.NoError(t, json.Unmarshal(env.Data, &img))
	assert.Equal(t, "https://img.example/pip.png", img.URL)

	rec = do(s, http.MethodPost, "/api/gpt/generate_image", map[string]any{
		"character": map[string]string{"type": "squirrel"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidatePromptShape(t *testing.T) {
	s := newTestServer("", "", false)

	rec := do(s, http.MethodPost, "/api/validate_prompt", map[string]string{
		"prompt": "A shop sign above the door",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Original string   `json:"original"`
		Cleaned  string   `json:"cleaned"`
		Issues   []string `json:"issues"`
		IsSafe   bool     `json:"is_safe"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.False(t, out.IsSafe)
	assert.NotEmpty(t, out.Issues)
	assert.NotContains(t, out.Cleaned, "sign")
}

func TestCharacterReferenceRoundTrip(t *testing.T) {
	s := newTestServer("", "", false)

	rec := do(s, http.MethodPost, "/api/store_character_reference", map[string]string{
		"story_id": "story-1", "name": "Pip", "url": "https://img.example/pip.png",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(s, http.MethodGet, "/api/character_reference?story_id=story-1&name=pip", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://img.example/pip.png")

	rec = do(s, http.MethodGet, "/api/character_reference?story_id=story-1&name=momo", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(s, http.MethodPost, "/api/store_character_reference", map[string]string{
		"story_id": "story-1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat(t *testing.T) {
	s := newTestServer("Hello, little author!", "", true)

	rec := do(s, http.MethodPost, "/api/gpt/chat", map[string]any{
		"messages": []map[string]string{{"role": "user", "content": "hi"}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	var out chatResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "Hello, little author!", out.Reply)

	rec = do(s, http.MethodPost, "/api/gpt/chat", map[string]any{"messages": []any{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer("", "", false)
	createStory(t, s, "One")

	rec := do(s, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "healthy", out["status"])
	assert.EqualValues(t, 1, out["stories_count"])
}

func TestExportPDF(t *testing.T) {
	s := newTestServer("", "", false)
	story := createStory(t, s, "The Lost Acorn")
	do(s, http.MethodPost, "/api/stories/"+story.ID+"/pages", map[string]string{"text": "Pip found an acorn."})

	rec := do(s, http.MethodGet, "/api/export/"+story.ID+"/pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec = do(s, http.MethodGet, "/api/export/missing/pdf", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
