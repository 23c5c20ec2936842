package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/cloudwego/eino/schema"
	"github.com/gin-gonic/gin"

	"nomadcity/internal/catalog"
	"nomadcity/internal/chat"
	"nomadcity/internal/models"
	"nomadcity/internal/service/nomad"
)

// ChatStreamer opens one streaming completion per call.
type ChatStreamer interface {
	Stream(ctx context.Context, messages []*schema.Message) (chat.ChunkStream, error)
}

// Handler wires HTTP routes to the chat relay and the profile service.
type Handler struct {
	ai    ChatStreamer
	nomad *nomad.Service
}

// NewHandler constructs a Handler instance.
func NewHandler(ai ChatStreamer, nomadService *nomad.Service) *Handler {
	return &Handler{ai: ai, nomad: nomadService}
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.GET("/test", h.testRoute)
	api.POST("/chat", h.streamChat)

	api.GET("/cities", h.listCities)
	api.GET("/cities/:id", h.getCity)
	api.GET("/cities/:id/governance", h.getCityGovernance)
	api.GET("/cities/:id/events", h.getCityEvents)

	api.POST("/profiles", h.createProfile)
	profileRoutes := api.Group("/profiles/:wallet")
	profileRoutes.GET("", h.getProfile)
	profileRoutes.PUT("", h.updateProfile)
	profileRoutes.GET("/stats", h.getStats)
	profileRoutes.GET("/badges", h.listBadges)
	profileRoutes.POST("/badges", h.awardBadge)
	profileRoutes.GET("/memberships", h.listMemberships)
	profileRoutes.GET("/applications", h.listApplications)
	profileRoutes.GET("/journey", h.getJourney)

	api.POST("/applications", h.submitApplication)
	api.POST("/applications/:id/approve", h.approveApplication)
}

func (h *Handler) testRoute(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Test route works"})
}

// Chat interface

type chatRequest struct {
	Messages json.RawMessage `json:"messages"`
}

func (h *Handler) streamChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": chat.ErrInvalidMessages})
		return
	}
	history, err := chat.ParseMessages(req.Messages)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": chat.ErrInvalidMessages})
		return
	}

	stream, err := h.ai.Stream(c.Request.Context(), chat.Compose(history))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Error processing chat request",
			"details": err.Error(),
		})
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Status(http.StatusOK)
	delivered, err := chat.Relay(c.Request.Context(), c.Writer, stream)
	if err != nil {
		// Headers are already out; the chunks sent so far stand and the
		// response simply ends. Log which way the stream died.
		var upstream *chat.UpstreamError
		switch {
		case errors.As(err, &upstream):
			log.Printf("chat stream failed after %d chunks: %v", delivered, upstream.Err)
		case errors.Is(err, context.Canceled):
			log.Printf("chat client disconnected after %d chunks", delivered)
		default:
			log.Printf("chat stream write failed after %d chunks: %v", delivered, err)
		}
	}
}

// City catalog interface

func (h *Handler) listCities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cities": catalog.Cities()})
}

func (h *Handler) getCity(c *gin.Context) {
	city, ok := catalog.Lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "city not found"})
		return
	}
	c.JSON(http.StatusOK, city)
}

func (h *Handler) getCityGovernance(c *gin.Context) {
	snapshot, ok := catalog.Governance(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "city not found"})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) getCityEvents(c *gin.Context) {
	events, ok := catalog.Events(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "city not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// Profile interface

type createProfileRequest struct {
	WalletAddress string `json:"wallet_address"`
}

func (h *Handler) createProfile(c *gin.Context) {
	var req createProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.WalletAddress == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wallet_address is required"})
		return
	}
	profile, created, err := h.nomad.GetOrCreateProfile(c.Request.Context(), req.WalletAddress)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, profile)
}

// profileByWallet resolves the :wallet path segment, writing the error
// response itself when the profile is missing.
func (h *Handler) profileByWallet(c *gin.Context) (*models.UserProfile, bool) {
	profile, err := h.nomad.GetProfile(c.Request.Context(), c.Param("wallet"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	return profile, true
}

func (h *Handler) getProfile(c *gin.Context) {
	profile, ok := h.profileByWallet(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, profile)
}

type updateProfileRequest struct {
	Username  string   `json:"username"`
	Bio       string   `json:"bio"`
	Location  string   `json:"location"`
	Interests []string `json:"interests"`
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	profile, err := h.nomad.UpdateProfile(c.Request.Context(), c.Param("wallet"),
		req.Username, req.Bio, req.Location, req.Interests)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) getStats(c *gin.Context) {
	profile, ok := h.profileByWallet(c)
	if !ok {
		return
	}
	stats, err := h.nomad.GetStats(c.Request.Context(), profile.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "stats not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Badge interface

func (h *Handler) listBadges(c *gin.Context) {
	profile, ok := h.profileByWallet(c)
	if !ok {
		return
	}
	badges, err := h.nomad.ListBadges(c.Request.Context(), profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"badges": badges})
}

type awardBadgeRequest struct {
	Name        string `json:"badge_name"`
	Description string `json:"badge_description"`
	Icon        string `json:"badge_icon"`
	Rarity      string `json:"rarity"`
}

func (h *Handler) awardBadge(c *gin.Context) {
	profile, ok := h.profileByWallet(c)
	if !ok {
		return
	}
	var req awardBadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	badge, err := h.nomad.AwardBadge(c.Request.Context(), profile.ID,
		req.Name, req.Description, req.Icon, models.BadgeRarity(req.Rarity))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, badge)
}

// Membership and application interface

func (h *Handler) listMemberships(c *gin.Context) {
	profile, ok := h.profileByWallet(c)
	if !ok {
		return
	}
	memberships, err := h.nomad.ListMemberships(c.Request.Context(), profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"memberships": memberships})
}

func (h *Handler) listApplications(c *gin.Context) {
	profile, ok := h.profileByWallet(c)
	if !ok {
		return
	}
	apps, err := h.nomad.ListApplications(c.Request.Context(), profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

type submitApplicationRequest struct {
	WalletAddress   string          `json:"wallet_address"`
	CityName        string          `json:"city_name"`
	ApplicationData json.RawMessage `json:"application_data"`
}

func (h *Handler) submitApplication(c *gin.Context) {
	var req submitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.WalletAddress == "" || req.CityName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wallet_address and city_name are required"})
		return
	}
	profile, _, err := h.nomad.GetOrCreateProfile(c.Request.Context(), req.WalletAddress)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	app, err := h.nomad.SubmitApplication(c.Request.Context(), profile.ID, req.CityName, req.ApplicationData)
	if err != nil {
		switch {
		case errors.Is(err, nomad.ErrUnknownCity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown city"})
		case errors.Is(err, nomad.ErrDuplicateApplication):
			c.JSON(http.StatusConflict, gin.H{"error": "application already pending for this city"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *Handler) approveApplication(c *gin.Context) {
	membership, err := h.nomad.ApproveApplication(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "pending application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, membership)
}

func (h *Handler) getJourney(c *gin.Context) {
	profile, ok := h.profileByWallet(c)
	if !ok {
		return
	}
	events, err := h.nomad.Journey(c.Request.Context(), profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"journey": events})
}
