package server

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"jongubooks/pkg/gateway"
	"jongubooks/pkg/refcache"
	"jongubooks/pkg/store"
)

type Server struct {
	Echo    *echo.Echo
	Store   store.Store
	Gateway *gateway.Gateway
	Refs    *refcache.Cache
	Ctx     context.Context
}

func NewServer(ctx context.Context, st store.Store, gw *gateway.Gateway) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	s := &Server{
		Echo:    e,
		Store:   st,
		Gateway: gw,
		Refs:    refcache.New(),
		Ctx:     ctx,
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.Echo.GET("/", s.handleGetRoot)
	s.Echo.GET("/health", s.handleGetHealth)

	// interactive client family
	api := s.Echo.Group("/api")
	api.GET("/stories", s.handleListStories)
	api.POST("/stories", s.handleCreateStory)
	api.GET("/stories/:id", s.handleGetStory)
	api.PUT("/stories/:id", s.handleUpdateStory)
	api.DELETE("/stories/:id", s.handleDeleteStory)
	api.POST("/stories/:id/characters", s.handleAddCharacter)
	api.POST("/stories/:id/pages", s.handleAddPage)

	api.POST("/validate_prompt", s.handleValidatePrompt)
	api.POST("/store_character_reference", s.handleStoreCharacterReference)
	api.GET("/character_reference", s.handleGetCharacterReference)
	api.GET("/export/:id/pdf", s.handleExportPDF)

	// agent family: same operations, story_id carried as a query parameter
	gpt := s.Echo.Group("/api/gpt")
	gpt.POST("/create_story", s.handleCreateStory)
	gpt.POST("/add_character", s.handleAddCharacterQuery)
	gpt.POST("/add_page", s.handleAddPageQuery)

	gpt.POST("/generate_characters", s.handleGenerateCharacters)
	gpt.POST("/generate_story_foundation", s.handleGenerateFoundation)
	gpt.POST("/generate_page_text", s.handleGeneratePageText)
	gpt.POST("/generate_all_pages", s.handleGenerateAllPages)
	gpt.POST("/generate_image", s.handleGenerateImage)
	gpt.POST("/generate_page_image", s.handleGeneratePageImage)
	gpt.POST("/generate_minimal_image", s.handleGenerateMinimalImage)
	gpt.POST("/chat", s.handleChat)
}

func (s *Server) Start(addr string) error {
	log.Info("server listening", "addr", addr)
	return s.Echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("shutting down server")
	return s.Echo.Shutdown(ctx)
}
