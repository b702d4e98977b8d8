package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pitchfork-audio/pitchfork/internal/audit/domain"
	"github.com/pitchfork-audio/pitchfork/pkg/db/pagination"
)

func (s *Server) ListAuditLogs(c *gin.Context) {
	member, ok := s.memberFromContext(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	pageSize := 50
	if raw := strings.TrimSpace(c.Query("page_size")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			AbortWithError(c, newValidationError("page_size", "invalid_page_size", "invalid page size"))
			return
		}
		pageSize = parsed
	}

	resp, err := s.auditSvc.List(c.Request.Context(), member.OrgID, domain.ListRequest{
		Pagination: pagination.Pagination{
			PageToken: strings.TrimSpace(c.Query("page_token")),
			PageSize:  pageSize,
		},
		Action:     strings.TrimSpace(c.Query("action")),
		TargetType: strings.TrimSpace(c.Query("target_type")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
