package ui

import (
	"net/http"

	"leadcrm/domain/lead"
	"leadcrm/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) handleCreateLead(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}

	var l lead.Lead
	if err := c.ShouldBindJSON(&l); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	created, err := s.leads.Create(c.Request.Context(), &l, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "lead": created})
}

func (s *Server) handleListLeads(c *gin.Context) {
	var filter ports.LeadFilter
	if v := c.Query("branch_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid branch_id"})
			return
		}
		filter.BranchID = &id
	}
	if v := c.Query("assigned_to"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid assigned_to"})
			return
		}
		filter.AssignedTo = &id
	}
	filter.Status = lead.Status(c.Query("status"))
	filter.Priority = lead.Priority(c.Query("priority"))
	filter.Source = lead.Source(c.Query("lead_source"))
	filter.Segment = lead.Segment(c.Query("segment"))

	leads, err := s.leads.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "leads": leads})
}

func (s *Server) handleGetLead(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"success": true, "lead": l})
}

func (s *Server) handleUpdateLead(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid lead id"})
		return
	}

	var l lead.Lead
	if err := c.ShouldBindJSON(&l); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	l.ID = id

	updated, err := s.leads.Update(c.Request.Context(), &l, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "lead": updated})
}

func (s *Server) handleDeleteLead(c *gin.Context) {
	if _, ok := actor(c); !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid lead id"})
		return
	}

	if err := s.leads.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "lead deleted"})
}

type statusRequest struct {
	Status lead.Status `json:"status" binding:"required"`
}

func (s *Server) handleUpdateStatus(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid lead id"})
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	l, err := s.leads.UpdateStatus(c.Request.Context(), id, req.Status, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "lead": l})
}

type priorityRequest struct {
	Priority lead.Priority `json:"priority" binding:"required"`
}

func (s *Server) handleUpdatePriority(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid lead id"})
		return
	}

	var req priorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	l, err := s.leads.UpdatePriority(c.Request.Context(), id, req.Priority, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "lead": l})
}

type assignRequest struct {
	UserID *uuid.UUID `json:"user_id"` // null unassigns
}

func (s *Server) handleAssign(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid lead id"})
		return
	}

	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	l, err := s.leads.Assign(c.Request.Context(), id, req.UserID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "lead": l})
}

type bulkAssignRequest struct {
	LeadIDs []uuid.UUID `json:"lead_ids" binding:"required"`
	UserID  uuid.UUID   `json:"user_id" binding:"required"`
}

func (s *Server) handleBulkAssign(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}

	var req bulkAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	updated, err := s.leads.BulkAssign(c.Request.Context(), req.LeadIDs, req.UserID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "assigned": updated})
}

func (s *Server) handleRegisterDeviceToken(c *gin.Context) {
	if _, ok := actor(c); !ok {
		return
	}

	var token ports.DeviceToken
	if err := c.ShouldBindJSON(&token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if token.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "token is required"})
		return
	}
	if token.UserType != "admin" {
		token.UserType = "user"
	}

	if err := s.tokens.Register(c.Request.Context(), &token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}
