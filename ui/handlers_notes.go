package ui

import (
	"net/http"

	"leadcrm/domain/lead"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type noteRequest struct {
	Content string        `json:"content"`
	Type    lead.NoteType `json:"type"`
	Status  lead.Status   `json:"status"`
}

func (s *Server) handleListNotes(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid lead id"})
		return
	}

	l, err := s.leads.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "notes": l.Notes})
}

func (s *Server) handleAddNote(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid lead id"})
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	note, err := s.leads.AddNote(c.Request.Context(), id, req.Content, req.Type, req.Status, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "note": note})
}

func (s *Server) handleUpdateNote(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid lead id"})
		return
	}
	noteID, err := uuid.Parse(c.Param("noteID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid note id"})
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	note, err := s.leads.UpdateNote(c.Request.Context(), leadID, noteID, req.Content, req.Type, req.Status, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "note updated", "note": note})
}

func (s *Server) handleDeleteNote(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid lead id"})
		return
	}
	noteID, err := uuid.Parse(c.Param("noteID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid note id"})
		return
	}

	if err := s.leads.DeleteNote(c.Request.Context(), leadID, noteID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "note deleted"})
}
