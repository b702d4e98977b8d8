package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/pitchfork-audio/pitchfork/internal/auth/domain"
	memberdomain "github.com/pitchfork-audio/pitchfork/internal/member/domain"
)

func (s *Server) ListUserOrgs(c *gin.Context) {
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

// UseOrg switches the session's active organization. Membership is verified
// before the session is rebound; switching is the only way a request can
// change tenants.
func (s *Server) UseOrg(c *gin.Context) {
	session, ok := s.sessionFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	orgID, err := idParam(c, "orgId")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if _, err := s.memberSvc.GetByUserAndOrg(c.Request.Context(), session.UserID, orgID); err != nil {
		if errors.Is(err, memberdomain.ErrMemberNotFound) {
			AbortWithError(c, ErrForbidden)
			return
		}
		AbortWithError(c, err)
		return
	}

	if err := s.authsvc.UpdateSessionOrgContext(c.Request.Context(), session.ID, &orgID); err != nil {
		AbortWithError(c, err)
		return
	}

	session.ActiveOrgID = &orgID

	metadata := map[string]any{
		"user_id":       session.UserID.String(),
		"active_org_id": orgID.String(),
	}
	c.JSON(http.StatusOK, &authdomain.SessionView{Metadata: metadata})
}
