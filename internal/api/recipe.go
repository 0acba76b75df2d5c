package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipegen/internal/middleware"
	"github.com/pageza/recipegen/internal/service"
	"github.com/pageza/recipegen/internal/session"
)

// DownloadFilename is the name offered to the browser for the recipe document
const DownloadFilename = "recipe.pdf"

// RecipeHandler serves the recipe page and the JSON recipe API
type RecipeHandler struct {
	recipes *service.RecipeService
	store   session.Store
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(recipes *service.RecipeService, store session.Store) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		store:   store,
	}
}

// RegisterRoutes registers the page routes on router and the JSON routes under
// /api/v1. generateGuards run in front of every route that calls the
// generation service.
func (h *RecipeHandler) RegisterRoutes(router gin.IRouter, generateGuards ...gin.HandlerFunc) {
	guarded := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, generateGuards...), handler)
	}

	router.GET("/", h.Index)
	router.POST("/generate", guarded(h.GeneratePage)...)
	router.POST("/download", h.DownloadPage)

	recipes := router.Group("/api/v1/recipes")
	{
		recipes.POST("", guarded(h.CreateRecipe)...)
		recipes.GET("/current", h.GetCurrentRecipe)
		recipes.GET("/pdf", h.DownloadRecipe)
		recipes.POST("/pdf/share", h.ShareRecipe)
	}
}

func (h *RecipeHandler) loadSession(c *gin.Context) (*session.Session, error) {
	return h.store.Get(c.Request.Context(), middleware.SessionID(c))
}

func newPage(sess *session.Session) pageData {
	return pageData{
		Ingredients: sess.Ingredients,
		NumPeople:   sess.NumPeople,
		Recipe:      renderMarkdown(sess.Recipe),
	}
}

func (h *RecipeHandler) renderPage(c *gin.Context, status int, page pageData) {
	if page.NumPeople < session.DefaultNumPeople {
		page.NumPeople = session.DefaultNumPeople
	}
	c.HTML(status, indexTemplate, page)
}

// Index renders the recipe page with the session's last result
func (h *RecipeHandler) Index(c *gin.Context) {
	sess, err := h.loadSession(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.renderPage(c, http.StatusOK, newPage(sess))
}

// GeneratePage handles the form submission of the "Generate Recipe" button
func (h *RecipeHandler) GeneratePage(c *gin.Context) {
	sess, err := h.loadSession(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	page := newPage(sess)

	req := GenerateRequest{NumPeople: session.DefaultNumPeople}
	if err := c.ShouldBind(&req); err != nil {
		page.Warning = service.MsgInvalidNumPeople
		h.renderPage(c, http.StatusOK, page)
		return
	}
	page.Ingredients = req.Ingredients
	page.NumPeople = req.NumPeople

	recipe, err := h.recipes.GenerateRecipe(c.Request.Context(), sess, req.Ingredients, req.NumPeople)
	if err != nil {
		var inputErr *service.InputError
		if errors.As(err, &inputErr) {
			page.Warning = inputErr.Message
			h.renderPage(c, http.StatusOK, page)
			return
		}
		status, message := middleware.Classify(err)
		log.Printf("[RecipeHandler] Generation failed: %v", err)
		page.Error = message
		h.renderPage(c, status, page)
		return
	}

	if err := h.store.Save(c.Request.Context(), sess); err != nil {
		_ = c.Error(err)
		return
	}

	page.Recipe = renderMarkdown(recipe)
	h.renderPage(c, http.StatusOK, page)
}

// DownloadPage handles the form submission of the "Download Recipe as PDF" button
func (h *RecipeHandler) DownloadPage(c *gin.Context) {
	sess, err := h.loadSession(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	path, err := h.recipes.DownloadRecipe(sess)
	if err != nil {
		page := newPage(sess)
		var stateErr *service.StateError
		if errors.As(err, &stateErr) {
			page.Warning = stateErr.Message
			h.renderPage(c, http.StatusOK, page)
			return
		}
		status, message := middleware.Classify(err)
		log.Printf("[RecipeHandler] Document generation failed: %v", err)
		page.Error = message
		h.renderPage(c, status, page)
		return
	}

	c.FileAttachment(path, DownloadFilename)
}

// CreateRecipe generates a recipe from a JSON request
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	sess, err := h.loadSession(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	req := GenerateRequest{NumPeople: session.DefaultNumPeople}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: "Invalid request body"})
		return
	}

	recipe, err := h.recipes.GenerateRecipe(c.Request.Context(), sess, req.Ingredients, req.NumPeople)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.store.Save(c.Request.Context(), sess); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, RecipeResponse{
		Recipe:      recipe,
		Ingredients: req.Ingredients,
		NumPeople:   req.NumPeople,
	})
}

// GetCurrentRecipe returns the session's last generated recipe
func (h *RecipeHandler) GetCurrentRecipe(c *gin.Context) {
	sess, err := h.loadSession(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !sess.HasRecipe {
		_ = c.Error(&service.StateError{Message: service.MsgNoRecipe})
		return
	}

	c.JSON(http.StatusOK, RecipeResponse{
		Recipe:      sess.Recipe,
		Ingredients: sess.Ingredients,
		NumPeople:   sess.NumPeople,
	})
}

// DownloadRecipe writes the session's recipe document and sends it as an attachment
func (h *RecipeHandler) DownloadRecipe(c *gin.Context) {
	sess, err := h.loadSession(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	path, err := h.recipes.DownloadRecipe(sess)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.FileAttachment(path, DownloadFilename)
}

// ShareRecipe archives the session's recipe document and returns a temporary link
func (h *RecipeHandler) ShareRecipe(c *gin.Context) {
	sess, err := h.loadSession(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	url, err := h.recipes.ShareRecipe(c.Request.Context(), sess)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ShareResponse{URL: url})
}

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
