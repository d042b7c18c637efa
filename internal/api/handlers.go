package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ytget/mediafetch/internal/config"
	"github.com/ytget/mediafetch/internal/job"
	"github.com/ytget/mediafetch/internal/model"
	"github.com/ytget/mediafetch/internal/registry"
)

// downloadRequest is the submit payload
type downloadRequest struct {
	URL      string `json:"url"`
	Format   string `json:"format"`
	Quality  string `json:"quality"`
	Location string `json:"location"`
	IsAlbum  bool   `json:"isAlbum"`
}

// JobHandler serves the job submit/poll endpoints
type JobHandler struct {
	svc *job.Service
	cfg *config.Config
	log *zap.Logger
}

// NewJobHandler creates a handler backed by the job service
func NewJobHandler(svc *job.Service, cfg *config.Config, log *zap.Logger) *JobHandler {
	return &JobHandler{svc: svc, cfg: cfg, log: log}
}

// HandleDownload starts a new download job. The job id is always
// allocated; a validation failure surfaces as a 400 carrying the same
// error the poller would see on the terminal job record.
func (h *JobHandler) HandleDownload(c *gin.Context) {
	var req downloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be JSON"})
		return
	}

	id := h.svc.Submit(job.Request{
		URL:          req.URL,
		Format:       req.Format,
		Quality:      req.Quality,
		Location:     req.Location,
		IsCollection: req.IsAlbum,
	})

	snap, err := h.svc.Status(id)
	if err == nil && snap.Status == model.JobStatusError {
		c.JSON(http.StatusBadRequest, gin.H{"error": snap.Error, "task_id": id})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task_id": id})
}

// HandleStatus returns the job record snapshot for a poller
func (h *JobHandler) HandleStatus(c *gin.Context) {
	id := c.Param("id")

	snap, err := h.svc.Status(id)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		h.log.Error("status lookup failed", zap.String("job_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, snap)
}

// HandleConfig echoes the client-relevant configuration
func (h *JobHandler) HandleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"default_path":      h.cfg.Downloads.DefaultRoot,
		"alt_path":          h.cfg.Downloads.AltRoot,
		"allowed_formats":   h.cfg.Downloads.AllowedFormats,
		"max_playlist_size": h.cfg.Downloads.MaxCollectionSize,
	})
}
