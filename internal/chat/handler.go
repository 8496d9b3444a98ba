package chat

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"resume-screener/internal/candidates"
	"resume-screener/internal/engine"
	"resume-screener/internal/shared/metrics"
	"resume-screener/internal/shared/server/respond"
	"resume-screener/internal/shared/telemetry"
)

// Handler serves candidate chat and HR assistant chat.
type Handler struct {
	Engine     *engine.Engine
	Candidates *candidates.Service
	History    HistoryRepo
}

// NewHandler constructs a Handler.
func NewHandler(eng *engine.Engine, candSvc *candidates.Service, history HistoryRepo) *Handler {
	return &Handler{Engine: eng, Candidates: candSvc, History: history}
}

// RegisterRoutes attaches chat routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.candidateChat)
	rg.POST("/hr-chat", h.hrChat)
	rg.GET("/hr-chat/history", h.hrChatHistory)
}

type candidateChatRequest struct {
	CandidateID string `json:"candidate_id"`
	Message     string `json:"message"`
}

func (h *Handler) candidateChat(c *gin.Context) {
	var req candidateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.CandidateID = strings.TrimSpace(req.CandidateID)
	req.Message = strings.TrimSpace(req.Message)
	if req.CandidateID == "" || req.Message == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "candidate_id and message are required", nil)
		return
	}

	cand, err := h.Candidates.Get(c.Request.Context(), req.CandidateID)
	if err != nil {
		if errors.Is(err, candidates.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch candidate", nil)
		return
	}

	c.Set("candidateId", cand.ID)
	reply := h.Engine.Chat(c.Request.Context(), cand.Profile(), req.Message)
	metrics.IncChatMessages()
	respond.OK(c, gin.H{"response": reply})
}

type hrChatRequest struct {
	Message string `json:"message"`
}

func (h *Handler) hrChat(c *gin.Context) {
	var req hrChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "message is required", nil)
		return
	}

	cands, err := h.Candidates.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list candidates", nil)
		return
	}
	profiles := make([]engine.CandidateProfile, 0, len(cands))
	for _, cand := range cands {
		profiles = append(profiles, cand.Profile())
	}

	reply := h.Engine.HRChat(c.Request.Context(), profiles, req.Message)
	metrics.IncHRChatMessages()

	now := time.Now().UTC()
	entry := HistoryEntry{
		ID:        uuid.NewString(),
		Message:   req.Message,
		Reply:     reply,
		CreatedAt: now,
	}
	if err := h.History.Save(c.Request.Context(), entry); err != nil {
		telemetry.Error("chat.history_save_failed", map[string]any{"error": err.Error()})
	}

	respond.OK(c, gin.H{
		"response":  reply,
		"timestamp": now.Format(time.RFC3339),
	})
}

func (h *Handler) hrChatHistory(c *gin.Context) {
	limit := 50
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be a positive integer", nil)
			return
		}
		limit = parsed
	}

	entries, err := h.History.List(c.Request.Context(), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list chat history", nil)
		return
	}

	type entryResponse struct {
		ID        string    `json:"id"`
		Message   string    `json:"message"`
		Reply     string    `json:"response"`
		CreatedAt time.Time `json:"created_at"`
	}
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryResponse{ID: e.ID, Message: e.Message, Reply: e.Reply, CreatedAt: e.CreatedAt})
	}
	respond.OK(c, gin.H{"history": out})
}
