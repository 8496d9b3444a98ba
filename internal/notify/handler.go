package notify

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/shared/server/respond"
)

// Handler serves team collaboration email endpoints.
type Handler struct {
	Mailer *Mailer
}

// NewHandler constructs a Handler.
func NewHandler(mailer *Mailer) *Handler {
	return &Handler{Mailer: mailer}
}

// RegisterRoutes attaches collaboration routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/collaboration/invite", h.invite)
	rg.POST("/collaboration/notify", h.notify)
}

type inviteRequest struct {
	Email       string `json:"email"`
	InviterName string `json:"inviter_name"`
	TeamName    string `json:"team_name"`
}

func (h *Handler) invite(c *gin.Context) {
	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email address is required", nil)
		return
	}
	if req.InviterName == "" {
		req.InviterName = "Team Member"
	}
	if req.TeamName == "" {
		req.TeamName = "Resume Screener Team"
	}

	result := h.Mailer.SendTeamInvitation(req.Email, req.InviterName, req.TeamName)
	respond.OK(c, result)
}

type notifyRequest struct {
	Email      string `json:"email"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	SenderName string `json:"sender_name"`
}

func (h *Handler) notify(c *gin.Context) {
	var req notifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Email == "" || req.Message == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email and message are required", nil)
		return
	}
	if req.Subject == "" {
		req.Subject = "Team Notification"
	}
	if req.SenderName == "" {
		req.SenderName = "Team Member"
	}

	result := h.Mailer.SendNotification(req.Email, req.Subject, req.Message, req.SenderName)
	respond.OK(c, result)
}
