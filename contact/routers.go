package contact

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killianmoore/web/common"
	"go.uber.org/zap"
)

// MinMessageLength is the shortest accepted message, after trimming
const MinMessageLength = 10

// emailPattern only asks for something@something.something without
// whitespace or extra @ signs
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether a trimmed address is accepted by the form
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Request is the contact form body
type Request struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Handler relays contact form submissions. A nil Sender means the email
// service is not configured.
type Handler struct {
	Sender    Sender
	ToEmail   string
	FromEmail string
	Timeout   time.Duration
	Log       *zap.Logger
}

// Submit godoc
// @Summary Send a contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param request body Request true "Contact form"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string "Invalid form"
// @Failure 500 {object} map[string]string "Email service not configured"
// @Failure 502 {object} map[string]string "Email service failed"
// @Router /api/contact [post]
func (h *Handler) Submit(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload."})
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)

	// Validate fields
	for _, field := range [][2]string{{"name", name}, {"email", email}, {"message", message}} {
		if verr := common.ValidateRequired(field[0], field[1]); verr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email, and message are required."})
			return
		}
	}
	if !ValidEmail(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid email address."})
		return
	}
	if verr := common.ValidateMinLength("message", message, MinMessageLength); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is too short."})
		return
	}

	if h.Sender == nil {
		h.logger().Error("contact email service is not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Email service is not configured."})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.Timeout)
	defer cancel()

	if err := h.Sender.Send(ctx, h.compose(name, email, message)); err != nil {
		h.logger().Error("contact email failed", zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send message."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) compose(name, email, message string) Email {
	text := strings.Join([]string{
		"Name: " + name,
		"Email: " + email,
		"",
		"Message:",
		message,
	}, "\n")

	body := fmt.Sprintf(`<div>
  <p><strong>Name:</strong> %s</p>
  <p><strong>Email:</strong> %s</p>
  <p><strong>Message:</strong></p>
  <p>%s</p>
</div>`,
		html.EscapeString(name),
		html.EscapeString(email),
		strings.ReplaceAll(html.EscapeString(message), "\n", "<br/>"),
	)

	return Email{
		From:    h.FromEmail,
		To:      []string{h.ToEmail},
		ReplyTo: email,
		Subject: "New inquiry from " + name,
		Text:    text,
		HTML:    body,
	}
}

func (h *Handler) logger() *zap.Logger {
	if h.Log == nil {
		return zap.NewNop()
	}
	return h.Log
}
