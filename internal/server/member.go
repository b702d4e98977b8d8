package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/pitchfork-audio/pitchfork/internal/member/domain"
)

type AddMemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Type   string `json:"type"`
}

type UpdateMemberRequest struct {
	Role *string `json:"role"`
	Type *string `json:"type"`
}

func (s *Server) AddMember(c *gin.Context) {
	orgID, err := orgIDFromRoute(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	userID, err := snowflake.ParseString(req.UserID)
	if err != nil {
		AbortWithError(c, newValidationError("user_id", "invalid_user_id", "invalid user id"))
		return
	}

	member, err := s.memberSvc.Add(c.Request.Context(), orgID, domain.AddMemberRequest{
		UserID: userID,
		Role:   req.Role,
		Type:   req.Type,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"member": member})
}

func (s *Server) ListMembers(c *gin.Context) {
	orgID, err := orgIDFromRoute(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	members, err := s.memberSvc.ListByOrganization(c.Request.Context(), orgID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (s *Server) GetMember(c *gin.Context) {
	orgID, err := orgIDFromRoute(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	memberID, err := idParam(c, "memberId")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	member, err := s.memberSvc.GetByID(c.Request.Context(), memberID, orgID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"member": member})
}

func (s *Server) UpdateMember(c *gin.Context) {
	orgID, err := orgIDFromRoute(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	memberID, err := idParam(c, "memberId")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	session, ok := s.sessionFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	member, err := s.memberSvc.Update(c.Request.Context(), memberID, orgID, session.UserID, domain.UpdateMemberRequest{
		Role: req.Role,
		Type: req.Type,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"member": member})
}

func (s *Server) RemoveMember(c *gin.Context) {
	orgID, err := orgIDFromRoute(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	memberID, err := idParam(c, "memberId")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.memberSvc.Remove(c.Request.Context(), memberID, orgID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
