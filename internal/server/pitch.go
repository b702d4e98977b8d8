package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/pitchfork-audio/pitchfork/internal/pitch/domain"
)

type CreatePitchRequest struct {
	SongID        string   `json:"song_id"`
	Description   *string  `json:"description"`
	Tags          []string `json:"tags"`
	TargetArtists []string `json:"target_artists"`
}

type UpdatePitchRequest struct {
	Description   *string   `json:"description"`
	Tags          *[]string `json:"tags"`
	TargetArtists *[]string `json:"target_artists"`
}

func (s *Server) CreatePitch(c *gin.Context) {
	member, ok := s.memberFromContext(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	var req CreatePitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	songID, err := snowflake.ParseString(req.SongID)
	if err != nil {
		AbortWithError(c, newValidationError("song_id", "invalid_song_id", "invalid song id"))
		return
	}

	pitch, err := s.pitchSvc.Create(c.Request.Context(), member.OrgID, member.UserID, domain.CreateRequest{
		SongID:        songID,
		Description:   req.Description,
		Tags:          req.Tags,
		TargetArtists: req.TargetArtists,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pitch": pitch})
}

func (s *Server) ListPitches(c *gin.Context) {
	member, ok := s.memberFromContext(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	pitches, err := s.pitchSvc.ListByOrganization(c.Request.Context(), member.OrgID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pitches": pitches})
}

func (s *Server) ListPitchesBySong(c *gin.Context) {
	member, ok := s.memberFromContext(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}
	songID, err := idParam(c, "songId")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	pitches, err := s.pitchSvc.ListBySong(c.Request.Context(), member.OrgID, songID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pitches": pitches})
}

func (s *Server) GetPitch(c *gin.Context) {
	member, ok := s.memberFromContext(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}
	pitchID, err := idParam(c, "pitchId")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	pitch, err := s.pitchSvc.GetByID(c.Request.Context(), pitchID, member.OrgID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pitch": pitch})
}

func (s *Server) UpdatePitch(c *gin.Context) {
	member, ok := s.memberFromContext(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}
	pitchID, err := idParam(c, "pitchId")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req UpdatePitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	pitch, err := s.pitchSvc.Update(c.Request.Context(), pitchID, member.OrgID, domain.UpdateRequest{
		Description:   req.Description,
		Tags:          req.Tags,
		TargetArtists: req.TargetArtists,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pitch": pitch})
}

func (s *Server) DeletePitch(c *gin.Context) {
	member, ok := s.memberFromContext(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}
	pitchID, err := idParam(c, "pitchId")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.pitchSvc.Delete(c.Request.Context(), pitchID, member.OrgID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
