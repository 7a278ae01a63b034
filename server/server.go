package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/archonhq/archon/core"
	"github.com/archonhq/archon/logging"
	"github.com/archonhq/archon/manager"
)

// APIResponse is the uniform JSON envelope for every endpoint.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Options configures the HTTP server.
type Options struct {
	// Debug leaves gin in its default mode with request logging. Off by
	// default.
	Debug bool

	// Logger receives request handling diagnostics.
	Logger logging.Logger
}

// Server routes HTTP requests to a Manager.
type Server struct {
	manager *manager.Manager
	engine  *gin.Engine
	logger  logging.Logger
}

// New constructs the HTTP layer over a manager.
func New(m *manager.Manager, optFns ...func(o *Options)) *Server {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	if !opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	if opts.Debug {
		engine.Use(gin.Logger())
	}

	s := &Server{manager: m, engine: engine, logger: opts.Logger}
	s.registerRoutes()
	return s
}

// Engine exposes the underlying router, mainly for tests and embedding.
func (s *Server) Engine() *gin.Engine { return s.engine }

// Run starts serving on addr and blocks.
func (s *Server) Run(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	return s.engine.Run(addr)
}

func (s *Server) registerRoutes() {
	s.engine.GET("/architectures", s.listArchitectures)
	s.engine.POST("/architecture", s.setArchitecture)
	s.engine.POST("/tasks", s.processTask)
	s.engine.GET("/history", s.history)
	s.engine.GET("/performance", s.performance)
	s.engine.GET("/export/latest", s.exportLatest)
}

func (s *Server) listArchitectures(c *gin.Context) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: gin.H{
		"architectures": s.manager.Architectures(),
		"current":       s.manager.CurrentArchitecture(),
	}})
}

type setArchitectureRequest struct {
	Architecture string `json:"architecture" binding:"required"`
}

func (s *Server) setArchitecture(c *gin.Context) {
	var req setArchitectureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{Success: false, Error: "invalid request: " + err.Error()})
		return
	}

	if err := s.manager.SetArchitecture(req.Architecture); err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{Success: true, Data: gin.H{"current": req.Architecture}})
}

func (s *Server) processTask(c *gin.Context) {
	var task core.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{Success: false, Error: "invalid request: " + err.Error()})
		return
	}
	if task.ID == "" || task.Title == "" {
		c.JSON(http.StatusBadRequest, APIResponse{Success: false, Error: "task id and title are required"})
		return
	}

	result, err := s.manager.ProcessTask(c.Request.Context(), task)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{Success: true, Data: gin.H{
		"architecture": result.Architecture,
		"task_id":      result.Task.ID,
		"duration":     result.Duration.String(),
		"metadata":     result.Metadata,
		"summary":      result.Summary,
	}})
}

func (s *Server) history(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, APIResponse{Success: false, Error: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	records := s.manager.History(limit)
	views := make([]gin.H, len(records))
	for i, r := range records {
		views[i] = gin.H{
			"architecture": r.Architecture,
			"task":         r.Task,
			"duration":     r.Duration.String(),
			"timestamp":    r.Timestamp,
			"metadata":     r.Metadata,
		}
	}

	c.JSON(http.StatusOK, APIResponse{Success: true, Data: gin.H{"count": len(records), "results": views}})
}

func (s *Server) performance(c *gin.Context) {
	stats, err := s.manager.ComparePerformance()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: stats})
}

func (s *Server) exportLatest(c *gin.Context) {
	format := c.DefaultQuery("format", "json")

	latest := s.manager.History(1)
	if len(latest) == 0 {
		s.fail(c, core.ErrNoHistory)
		return
	}

	report, err := s.manager.Export(&latest[0], format)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{Success: true, Data: gin.H{"format": format, "report": report}})
}

// fail maps the error taxonomy onto HTTP status codes.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrInvalidArchitecture), errors.Is(err, core.ErrUnsupportedFormat):
		status = http.StatusBadRequest
	case errors.Is(err, core.ErrNotImplemented):
		status = http.StatusNotImplemented
	case errors.Is(err, core.ErrNoHistory):
		status = http.StatusNotFound
	}

	s.logger.Warn("request failed", "status", status, "error", err.Error())
	c.JSON(status, APIResponse{Success: false, Error: err.Error()})
}
