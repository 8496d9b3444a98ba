package candidates

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/bias"
	"resume-screener/internal/shared/server/respond"
)

const maxUploadSize = 16 << 20 // 16MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches candidate routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", h.upload)
	rg.GET("/candidates", h.list)
	rg.GET("/candidates/:id", h.get)
	rg.GET("/candidates/:id/bias", h.biasAnalysis)
	rg.GET("/candidates/:id/blind", h.blindResume)
	rg.GET("/statistics", h.statistics)
	rg.POST("/fair-screening/toggle", h.fairScreeningToggle)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	jobDescription := c.PostForm("job_description")

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	cand, err := h.Svc.Upload(c.Request.Context(), fileHeader.Filename, jobDescription, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process resume", nil)
		}
		return
	}

	c.Set("candidateId", cand.ID)
	respond.Created(c, UploadResponse{
		Success:      true,
		CandidateID:  cand.ID,
		Analysis:     cand.Analysis,
		BiasAnalysis: cand.BiasAnalysis,
	})
}

func (h *Handler) list(c *gin.Context) {
	cands, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list candidates", nil)
		return
	}
	respond.OK(c, gin.H{"candidates": toResponses(cands)})
}

func (h *Handler) get(c *gin.Context) {
	cand, err := h.lookup(c)
	if err != nil {
		return
	}
	respond.OK(c, gin.H{"candidate": toResponse(cand)})
}

func (h *Handler) biasAnalysis(c *gin.Context) {
	cand, err := h.lookup(c)
	if err != nil {
		return
	}
	respond.OK(c, gin.H{
		"bias_analysis":   cand.BiasAnalysis,
		"recommendations": bias.Recommendations(cand.BiasAnalysis),
	})
}

func (h *Handler) blindResume(c *gin.Context) {
	cand, err := h.lookup(c)
	if err != nil {
		return
	}
	respond.OK(c, gin.H{"blind_resume": cand.BlindResume})
}

func (h *Handler) statistics(c *gin.Context) {
	stats, err := h.Svc.Statistics(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute statistics", nil)
		return
	}
	respond.OK(c, gin.H{"statistics": stats})
}

type fairScreeningRequest struct {
	Enabled bool `json:"enabled"`
}

func (h *Handler) fairScreeningToggle(c *gin.Context) {
	var req fairScreeningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	state := "disabled"
	if req.Enabled {
		state = "enabled"
	}
	respond.OK(c, gin.H{
		"fair_screening_enabled": req.Enabled,
		"message":                fmt.Sprintf("Fair screening %s", state),
	})
}

// lookup fetches the candidate from the :id param, writing the error
// response itself when the candidate cannot be returned.
func (h *Handler) lookup(c *gin.Context) (Candidate, error) {
	id := c.Param("id")
	cand, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch candidate", nil)
		}
		return Candidate{}, err
	}
	c.Set("candidateId", cand.ID)
	return cand, nil
}
