// Package api exposes receipt rendering, previewing, and printing over
// HTTP and WebSocket.
package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/printcore/thermoprint/internal/preview"
	"github.com/printcore/thermoprint/internal/printer"
	"github.com/printcore/thermoprint/pkg/receipt"
	"github.com/printcore/thermoprint/pkg/template"
)

// Server is the HTTP API.
type Server struct {
	router   *gin.Engine
	manager  *printer.Manager
	pool     *printer.Pool
	queue    *printer.Queue
	log      *zap.Logger
	upgrader websocket.Upgrader
	hub      *hub
}

// NewServer wires the API around the device manager, connection pool
// and job queue.
func NewServer(manager *printer.Manager, pool *printer.Pool, queue *printer.Queue,
	allowedOrigins []string, log *zap.Logger) *Server {

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = allowedOrigins
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Content-Type", "Authorization"}
	corsCfg.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsCfg))

	s := &Server{
		router:  router,
		manager: manager,
		pool:    pool,
		queue:   queue,
		log:     log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		hub: newHub(),
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.POST("/render", s.handleRender)
	s.router.POST("/preview", s.handlePreview)
	s.router.POST("/print", s.handlePrint)

	s.router.GET("/jobs", s.handleJobs)
	s.router.GET("/job/:id", s.handleJob)

	s.router.GET("/printers", s.handlePrinters)
	s.router.POST("/printer/:id/name", s.handleSetPrinterName)
	s.router.POST("/printer/network", s.handleAddNetworkPrinter)

	s.router.GET("/ws", s.handleWebSocket)

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// Run starts serving on addr and blocks.
func (s *Server) Run(addr string) error {
	s.log.Info("API listening", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// handleRender renders the posted document to raw ESC/POS bytes.
func (s *Server) handleRender(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := template.Render(body)
	if err != nil {
		c.JSON(renderErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/octet-stream", data)
}

// handlePreview renders the posted document to a PNG approximation.
func (s *Server) handlePreview(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := template.Parse(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	png, err := preview.RenderPNG(doc)
	if err != nil {
		c.JSON(renderErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// handlePrint renders a document and queues it for a device.
func (s *Server) handlePrint(c *gin.Context) {
	var req struct {
		DeviceID string             `json:"device_id" binding:"required"`
		Document *template.Document `json:"document" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if s.manager.Get(req.DeviceID) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "device not found"})
		return
	}

	data, err := req.Document.Render()
	if err != nil {
		c.JSON(renderErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	jobID := s.queue.Enqueue(req.DeviceID, data)
	c.JSON(http.StatusAccepted, gin.H{"job_id": jobID})
}

func (s *Server) handleJobs(c *gin.Context) {
	jobs := s.queue.All()
	out := make([]gin.H, len(jobs))
	for i, job := range jobs {
		out[i] = jobJSON(job)
	}
	c.JSON(http.StatusOK, gin.H{"jobs": out})
}

func (s *Server) handleJob(c *gin.Context) {
	job := s.queue.Get(c.Param("id"))
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, jobJSON(job))
}

func (s *Server) handlePrinters(c *gin.Context) {
	devices := s.manager.All()
	out := make([]gin.H, len(devices))
	for i, d := range devices {
		out[i] = deviceJSON(d)
	}
	c.JSON(http.StatusOK, gin.H{"printers": out})
}

func (s *Server) handleSetPrinterName(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if !s.manager.SetName(c.Param("id"), req.Name) {
		c.JSON(http.StatusNotFound, gin.H{"error": "device not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleAddNetworkPrinter(c *gin.Context) {
	var req struct {
		Host        string `json:"host" binding:"required"`
		Port        int    `json:"port"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "host is required"})
		return
	}

	id := s.manager.AddNetwork(req.Host, req.Port, req.Description)
	c.JSON(http.StatusOK, gin.H{
		"printer_id": id,
		"printer":    deviceJSON(s.manager.Get(id)),
	})
}

func jobJSON(job *printer.Job) gin.H {
	out := gin.H{
		"id":         job.ID,
		"device_id":  job.DeviceID,
		"status":     job.Status,
		"retries":    job.Retries,
		"created_at": job.CreatedAt,
	}
	if job.Error != "" {
		out["error"] = job.Error
	}
	return out
}

func deviceJSON(d *printer.Device) gin.H {
	return gin.H{
		"id":          d.ID,
		"type":        d.Type,
		"description": d.Description,
		"name":        d.Name,
	}
}

// renderErrorStatus maps render failures to HTTP statuses. Everything
// the document author controls is a 400.
func renderErrorStatus(err error) int {
	var (
		parseErr   *template.ParseError
		decErr     *template.InvalidDecimalError
		widthErr   template.UnknownWidthError
		langErr    template.UnknownLanguageError
		alignErr   template.UnknownAlignError
		elemErr    template.UnknownElementError
		ditherErr  template.UnknownDitherMethodError
		rangeErr   *template.ValueRangeError
		barcodeErr *receipt.InvalidBarcodeError
	)
	switch {
	case errors.As(err, &parseErr),
		errors.As(err, &decErr),
		errors.As(err, &widthErr),
		errors.As(err, &langErr),
		errors.As(err, &alignErr),
		errors.As(err, &elemErr),
		errors.As(err, &ditherErr),
		errors.As(err, &rangeErr),
		errors.As(err, &barcodeErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
