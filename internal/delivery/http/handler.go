package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/creditwise/backend/internal/auth"
	"github.com/creditwise/backend/internal/domain"
	"github.com/creditwise/backend/internal/usecase"
	val "github.com/creditwise/backend/internal/validator"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	conversation *usecase.Conversation
	catalog      *usecase.CatalogService
	scorer       *usecase.Scorer
	tokens       *auth.TokenService
	adminUser    string
	adminPass    string
}

// NewHandler creates a new HTTP handler
func NewHandler(conversation *usecase.Conversation, catalog *usecase.CatalogService, scorer *usecase.Scorer, tokens *auth.TokenService, adminUser, adminPass string) *Handler {
	return &Handler{
		conversation: conversation,
		catalog:      catalog,
		scorer:       scorer,
		tokens:       tokens,
		adminUser:    adminUser,
		adminPass:    adminPass,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "creditwise-backend",
		"version": "1.0.0",
	})
}

type messageRequest struct {
	Message string `json:"message" validate:"required,notblank,max=2000"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

type cardRequest struct {
	domain.CardRecord
}

func (r cardRequest) validate() error {
	card := r.Normalize()
	probe := struct {
		Name   string `validate:"required,notblank"`
		Issuer string `validate:"required,notblank"`
		Tier   string `validate:"cardtier"`
	}{Name: card.Name, Issuer: card.Issuer, Tier: card.Tier}
	return val.Validate.Struct(probe)
}

// CreateSession starts a chat session and returns it with the greeting.
func (h *Handler) CreateSession(c *gin.Context) {
	s := h.conversation.StartSession()
	state, _ := s.Snapshot()
	c.JSON(http.StatusCreated, gin.H{
		"sessionId": s.ID,
		"state":     state,
		"messages":  s.Messages(),
	})
}

// GetSession returns a session transcript.
func (h *Handler) GetSession(c *gin.Context) {
	s, err := h.conversation.Session(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	state, profile := s.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"sessionId": s.ID,
		"state":     state,
		"profile":   profile,
		"messages":  s.Messages(),
	})
}

// EndSession discards a session.
func (h *Handler) EndSession(c *gin.Context) {
	if err := h.conversation.EndSession(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// PostMessage runs one conversation turn.
func (h *Handler) PostMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := val.Validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	messages, err := h.conversation.HandleMessage(c.Request.Context(), c.Param("id"), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		case errors.Is(err, domain.ErrSessionBusy):
			c.JSON(http.StatusConflict, gin.H{"error": "Previous message is still being processed"})
		default:
			log.Printf("[HTTP] message handling failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process message"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// QuestionnaireRecommendations scores the pool against form responses.
func (h *Handler) QuestionnaireRecommendations(c *gin.Context) {
	var req usecase.QuestionnaireResponses
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	pool := h.catalog.Pool(c.Request.Context())
	recs := h.scorer.RecommendFromQuestionnaire(req, pool)
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

// ListCards returns the catalog.
func (h *Handler) ListCards(c *gin.Context) {
	cards := h.catalog.List(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"cards": cards, "total": len(cards)})
}

// GetCard returns one card by id.
func (h *Handler) GetCard(c *gin.Context) {
	card, err := h.catalog.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		log.Printf("[HTTP] get card failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get card"})
		return
	}
	c.JSON(http.StatusOK, card)
}

// SearchCards filters the catalog by query parameters.
func (h *Handler) SearchCards(c *gin.Context) {
	var filter domain.CardFilter
	filter.Term = c.Query("q")
	filter.Tier = c.Query("tier")
	filter.Network = c.Query("network")
	if v, err := queryInt(c, "minIncome"); err == nil {
		filter.MinIncome = v
	}
	if v, err := queryInt(c, "maxIncome"); err == nil {
		filter.MaxIncome = v
	}

	cards, err := h.catalog.Search(c.Request.Context(), filter)
	if err != nil {
		log.Printf("[HTTP] card search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cards": cards, "total": len(cards)})
}

// CardStats returns catalog aggregates for the dashboard.
func (h *Handler) CardStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Stats(c.Request.Context()))
}

// AdminLogin exchanges the admin credentials for a JWT.
func (h *Handler) AdminLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := val.Validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Username != h.adminUser || req.Password != h.adminPass {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.tokens.GenerateToken(req.Username)
	if err != nil {
		log.Printf("[HTTP] token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// CreateCard inserts a catalog card.
func (h *Handler) CreateCard(c *gin.Context) {
	var req cardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.catalog.Create(c.Request.Context(), req.Normalize())
	if err != nil {
		log.Printf("[HTTP] card create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create card"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateCard replaces a catalog card.
func (h *Handler) UpdateCard(c *gin.Context) {
	var req cardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.catalog.Update(c.Request.Context(), c.Param("id"), req.Normalize())
	if err != nil {
		if errors.Is(err, domain.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		log.Printf("[HTTP] card update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update card"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteCard removes a catalog card.
func (h *Handler) DeleteCard(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		log.Printf("[HTTP] card delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card"})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteAllCards wipes the catalog ahead of a reimport.
func (h *Handler) DeleteAllCards(c *gin.Context) {
	if err := h.catalog.DeleteAll(c.Request.Context()); err != nil {
		log.Printf("[HTTP] catalog wipe failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear catalog"})
		return
	}
	c.Status(http.StatusNoContent)
}

func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, errors.New("missing")
	}
	return strconv.Atoi(raw)
}
