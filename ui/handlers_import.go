package ui

import (
	"io"
	"net/http"
	"strconv"

	"leadcrm/adapters/excel"
	"leadcrm/app"
	"leadcrm/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// readUpload pulls the uploaded workbook out of the multipart form
func (s *Server) readUpload(c *gin.Context) ([]byte, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Excel file required"})
		return nil, false
	}
	if fileHeader.Size > s.maxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"success": false, "message": "file too large"})
		return nil, false
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "failed to read upload"})
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "failed to read upload"})
		return nil, false
	}
	return data, true
}

func (s *Server) runImport(c *gin.Context, params app.ImportParams) {
	result, err := s.importer.Import(c.Request.Context(), params)
	if err != nil {
		// Batch structure error: the workbook never yielded rows.
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"imported":   result.Imported,
		"duplicates": result.Duplicates,
		"failed":     result.Failed,
		"errors":     result.Errors,
		"leads":      result.Leads,
	})
}

// handleImport performs an admin import: leads land unattached to a
// branch unless the form says otherwise. dry_run=true previews the
// result without persisting anything.
func (s *Server) handleImport(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	data, ok := s.readUpload(c)
	if !ok {
		return
	}

	dryRun, _ := strconv.ParseBool(c.PostForm("dry_run"))

	params := app.ImportParams{
		Data:       data,
		CreatedBy:  userID,
		SaveToDB:   !dryRun,
		BatchLabel: c.PostForm("batch_label"),
	}
	if v := c.PostForm("branch_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid branch_id"})
			return
		}
		params.BranchID = &id
	}
	if v := c.PostForm("assigned_to"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid assigned_to"})
			return
		}
		params.AssignedTo = &id
	}

	s.runImport(c, params)
}

// handleImportForUser imports a workbook directly into one user's
// queue within a branch.
func (s *Server) handleImportForUser(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}

	branchID, err := uuid.Parse(c.Param("branchID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid branch id"})
		return
	}
	assigneeID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid user id"})
		return
	}

	data, ok := s.readUpload(c)
	if !ok {
		return
	}

	s.runImport(c, app.ImportParams{
		Data:       data,
		BranchID:   &branchID,
		AssignedTo: &assigneeID,
		CreatedBy:  userID,
		SaveToDB:   true,
		BatchLabel: c.PostForm("batch_label"),
	})
}

func (s *Server) handleImportTemplate(c *gin.Context) {
	data, err := excel.WriteTemplate()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename=lead_import_template.xlsx`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (s *Server) handleExport(c *gin.Context) {
	var filter ports.LeadFilter
	if v := c.Query("branch_id"); v != "" && v != "null" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid branch_id"})
			return
		}
		filter.BranchID = &id
	}
	if v := c.Query("assigned_to"); v != "" && v != "null" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid assigned_to"})
			return
		}
		filter.AssignedTo = &id
	}

	leads, err := s.leads.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	data, err := excel.WriteLeads(leads)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename=leads.xlsx`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
