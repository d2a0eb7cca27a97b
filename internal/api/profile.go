package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aptlinks/backend/internal/ans"
	"github.com/aptlinks/backend/internal/chain"
	"github.com/aptlinks/backend/internal/service"
	"github.com/aptlinks/backend/internal/types"
)

// LedgerViewer exposes the read-only ledger calls the handlers proxy.
type LedgerViewer interface {
	ViewBio(ctx context.Context, address string) (*types.CombinedBio, error)
	ViewLinks(ctx context.Context, address string) ([]types.ProfileLink, error)
	ProfileExists(ctx context.Context, address string) (bool, error)
}

// NameResolver resolves a name to its target address.
type NameResolver interface {
	ResolveAddress(ctx context.Context, name string) (string, error)
}

// ProfileFetcher assembles a full profile for a name.
type ProfileFetcher interface {
	Fetch(ctx context.Context, name string) (*types.Profile, error)
}

// SavePlanner plans the write-path transactions for a draft.
type SavePlanner interface {
	PlanSave(ctx context.Context, owner string, draft types.ProfileDraft) ([]chain.TransactionPayload, error)
}

// ProfileHandler serves the public profile API. Every endpoint is a
// read-only proxy over the ledger and the name service except save, which
// returns an ordered transaction plan for the caller's wallet to sign.
type ProfileHandler struct {
	ledger   LedgerViewer
	names    NameResolver
	profiles ProfileFetcher
	editor   SavePlanner
}

// NewProfileHandler wires the handler's dependencies.
func NewProfileHandler(ledger LedgerViewer, names NameResolver, profiles ProfileFetcher, editor SavePlanner) *ProfileHandler {
	return &ProfileHandler{
		ledger:   ledger,
		names:    names,
		profiles: profiles,
		editor:   editor,
	}
}

// RegisterRoutes mounts the profile API.
func (h *ProfileHandler) RegisterRoutes(router *gin.Engine) {
	profile := router.Group("/api/profile")
	{
		profile.GET("/bio", h.GetBio)
		profile.GET("/links", h.GetLinks)
		profile.GET("/name", h.GetName)
		profile.GET("/exists", h.GetExists)
		profile.POST("/save", h.PlanSave)
	}
	router.GET("/p/:name", h.GetProfile)
}

// GetBio handles GET /api/profile/bio?address=
func (h *ProfileHandler) GetBio(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}

	bio, err := h.ledger.ViewBio(c.Request.Context(), address)
	if errors.Is(err, chain.ErrNoBio) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no bio set for address"})
		return
	}
	if err != nil {
		log.Printf("bio fetch %s: %v", address, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bio"})
		return
	}

	c.JSON(http.StatusOK, bio)
}

// GetLinks handles GET /api/profile/links?address=
func (h *ProfileHandler) GetLinks(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}

	links, err := h.ledger.ViewLinks(c.Request.Context(), address)
	if err != nil {
		log.Printf("links fetch %s: %v", address, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch links"})
		return
	}

	c.JSON(http.StatusOK, links)
}

// GetName handles GET /api/profile/name?name= and returns the resolved
// long-form address as a JSON string.
func (h *ProfileHandler) GetName(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	address, err := h.names.ResolveAddress(c.Request.Context(), name)
	if errors.Is(err, ans.ErrNameNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "address not found for name"})
		return
	}
	if err != nil {
		log.Printf("name resolution %s: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve name"})
		return
	}

	c.JSON(http.StatusOK, address)
}

// GetExists handles GET /api/profile/exists?address=
func (h *ProfileHandler) GetExists(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}

	exists, err := h.ledger.ProfileExists(c.Request.Context(), address)
	if err != nil {
		log.Printf("existence check %s: %v", address, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check profile"})
		return
	}

	c.JSON(http.StatusOK, exists)
}

// GetProfile handles GET /p/:name, the public profile page data. A suffixed
// name is redirected once to the unsuffixed canonical path, so resolution
// always observes the unsuffixed form and re-suffixes deterministically.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	name := c.Param("name")
	if stripped := ans.StripSuffix(name); stripped != name {
		c.Redirect(http.StatusMovedPermanently, "/p/"+stripped)
		return
	}

	profile, err := h.profiles.Fetch(c.Request.Context(), name)
	if errors.Is(err, service.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	if err != nil {
		log.Printf("profile fetch %s: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// SaveRequest is the body of POST /api/profile/save.
type SaveRequest struct {
	Owner string             `json:"owner" binding:"required"`
	Draft types.ProfileDraft `json:"draft"`
}

// SaveResponse carries the ordered transaction payloads the wallet must sign.
type SaveResponse struct {
	Transactions []chain.TransactionPayload `json:"transactions"`
}

// PlanSave handles POST /api/profile/save. The server decides create versus
// update and orders the payloads; signing stays with the caller's wallet.
func (h *ProfileHandler) PlanSave(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	plan, err := h.editor.PlanSave(c.Request.Context(), chain.NormalizeAddress(req.Owner), req.Draft)
	if err != nil {
		log.Printf("save plan %s: %v", req.Owner, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile"})
		return
	}

	c.JSON(http.StatusOK, SaveResponse{Transactions: plan})
}
