package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pitchfork-audio/pitchfork/internal/organization/domain"
)

type CreateOrgRequest struct {
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	Logo     *string `json:"logo"`
	Metadata *string `json:"metadata"`
}

type UpdateOrgRequest struct {
	Name     *string `json:"name"`
	Slug     *string `json:"slug"`
	Logo     *string `json:"logo"`
	Metadata *string `json:"metadata"`
}

func (s *Server) CreateOrg(c *gin.Context) {
	session, ok := s.sessionFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req CreateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	org, err := s.organizationSvc.Create(c.Request.Context(), session.UserID, domain.CreateRequest{
		Name:     req.Name,
		Slug:     req.Slug,
		Logo:     req.Logo,
		Metadata: req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"org": org})
}

func (s *Server) ListMyOrgs(c *gin.Context) {
	session, ok := s.sessionFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	orgs, err := s.organizationSvc.ListByUser(c.Request.Context(), session.UserID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orgs": orgs})
}

func (s *Server) GetOrg(c *gin.Context) {
	orgID, err := orgIDFromRoute(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	org, err := s.organizationSvc.GetByID(c.Request.Context(), orgID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"org": org})
}

func (s *Server) UpdateOrg(c *gin.Context) {
	orgID, err := orgIDFromRoute(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req UpdateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	org, err := s.organizationSvc.Update(c.Request.Context(), orgID, domain.UpdateRequest{
		Name:     req.Name,
		Slug:     req.Slug,
		Logo:     req.Logo,
		Metadata: req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"org": org})
}

func (s *Server) DeleteOrg(c *gin.Context) {
	orgID, err := orgIDFromRoute(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.organizationSvc.Delete(c.Request.Context(), orgID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
