package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type CreateTagRequest struct {
	Name string `json:"name"`
}

func (s *Server) CreateTag(c *gin.Context) {
	member, ok := s.memberFromContext(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	tag, err := s.tagSvc.Create(c.Request.Context(), member.OrgID, req.Name)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tag": tag})
}

func (s *Server) ListTags(c *gin.Context) {
	member, ok := s.memberFromContext(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	tags, err := s.tagSvc.ListByOrganization(c.Request.Context(), member.OrgID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (s *Server) DeleteTag(c *gin.Context) {
	member, ok := s.memberFromContext(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}
	tagID, err := idParam(c, "tagId")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.tagSvc.Delete(c.Request.Context(), tagID, member.OrgID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
