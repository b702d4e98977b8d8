package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pitchfork-audio/pitchfork/internal/song/domain"
)

type CreateSongRequest struct {
	Title       string  `json:"title"`
	Artist      *string `json:"artist"`
	DurationSec *int    `json:"duration_sec"`
	FilePath    string  `json:"file_path"`
	FileName    string  `json:"file_name"`
	MimeType    string  `json:"mime_type"`
	SizeBytes   int64   `json:"size_bytes"`
}

type UpdateSongRequest struct {
	Title       *string `json:"title"`
	Artist      *string `json:"artist"`
	DurationSec *int    `json:"duration_sec"`
}

func (s *Server) CreateSong(c *gin.Context) {
	member, ok := s.memberFromContext(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	var req CreateSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	song, err := s.songSvc.Create(c.Request.Context(), member.OrgID, member.UserID, domain.CreateRequest{
		Title:       req.Title,
		Artist:      req.Artist,
		DurationSec: req.DurationSec,
		FilePath:    req.FilePath,
		FileName:    req.FileName,
		MimeType:    req.MimeType,
		SizeBytes:   req.SizeBytes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"song": song})
}

func (s *Server) ListSongs(c *gin.Context) {
	member, ok := s.memberFromContext(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	songs, err := s.songSvc.ListByOrganization(c.Request.Context(), member.OrgID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"songs": songs})
}

func (s *Server) ListMySongs(c *gin.Context) {
	member, ok := s.memberFromContext(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	songs, err := s.songSvc.ListByUploader(c.Request.Context(), member.OrgID, member.UserID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"songs": songs})
}

func (s *Server) GetSong(c *gin.Context) {
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

	song, err := s.songSvc.GetByID(c.Request.Context(), songID, member.OrgID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"song": song})
}

func (s *Server) UpdateSong(c *gin.Context) {
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

	var req UpdateSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	song, err := s.songSvc.UpdateOwn(c.Request.Context(), songID, member.OrgID, member.UserID, domain.UpdateRequest{
		Title:       req.Title,
		Artist:      req.Artist,
		DurationSec: req.DurationSec,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"song": song})
}

func (s *Server) DeleteSong(c *gin.Context) {
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

	if err := s.songSvc.DeleteOwn(c.Request.Context(), songID, member.OrgID, member.UserID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
