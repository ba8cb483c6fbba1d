package ui

import (
	"context"
	"log"
	"net/http"

	"leadcrm/app"
	"leadcrm/internal/config"
	"leadcrm/internal/errors"
	"leadcrm/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Server is the HTTP surface over the lead services
type Server struct {
	router    *gin.Engine
	leads     *app.LeadService
	importer  *app.ImportService
	tokens    ports.DeviceTokenRepository
	maxUpload int64

	httpServer *http.Server
}

// NewServer creates the API server and registers all routes
func NewServer(cfg *config.Config, leads *app.LeadService, importer *app.ImportService, tokens ports.DeviceTokenRepository) *Server {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		router:    gin.Default(),
		leads:     leads,
		importer:  importer,
		tokens:    tokens,
		maxUpload: cfg.Import.MaxUploadBytes,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")

	leads := api.Group("/leads")
	leads.POST("", s.handleCreateLead)
	leads.GET("", s.handleListLeads)

	// Import/export routes come before the :id routes so gin does not
	// treat "import" as a lead id.
	leads.POST("/import", s.handleImport)
	leads.POST("/import/:branchID/:userID", s.handleImportForUser)
	leads.GET("/import/template", s.handleImportTemplate)
	leads.GET("/export", s.handleExport)
	leads.POST("/bulk-assign", s.handleBulkAssign)

	leads.GET("/:id", s.handleGetLead)
	leads.PUT("/:id", s.handleUpdateLead)
	leads.DELETE("/:id", s.handleDeleteLead)
	leads.PATCH("/:id/status", s.handleUpdateStatus)
	leads.PATCH("/:id/priority", s.handleUpdatePriority)
	leads.PATCH("/:id/assign", s.handleAssign)

	leads.GET("/:id/notes", s.handleListNotes)
	leads.POST("/:id/notes", s.handleAddNote)
	leads.PUT("/:id/notes/:noteID", s.handleUpdateNote)
	leads.DELETE("/:id/notes/:noteID", s.handleDeleteNote)

	api.POST("/device-tokens", s.handleRegisterDeviceToken)
}

// Run serves HTTP until the context is cancelled, then drains
func (s *Server) Run(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{Addr: addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] listening on %s", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.httpServer.Shutdown(context.Background())
	}
}

// Router exposes the gin engine for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// actor extracts the acting user's id. Authentication happens upstream;
// the gateway forwards the verified identity in this header.
func actor(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetHeader("X-User-ID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "missing or invalid X-User-ID header",
		})
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps application error codes to HTTP statuses
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeExternalService:
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"success": false, "message": err.Error()})
}
