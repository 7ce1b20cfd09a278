package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-backend/internal/application"
	"github.com/oksasatya/portfolio-backend/internal/interface/middleware"
	"github.com/oksasatya/portfolio-backend/pkg/response"
)

type ContactHandler struct {
	Svc      *application.ContactService
	Logger   *logrus.Logger
	Fallback string
	MaxBytes int64
}

type contactRequest struct {
	FullName string `json:"full_name" binding:"required,max=200"`
	Email    string `json:"email" binding:"required,email,max=320"`
	Content  string `json:"content" binding:"required,max=5000"`
}

func (h *ContactHandler) Send(c *gin.Context) {
	if h.MaxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBytes)
	}
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	err := h.Svc.Send(c.Request.Context(), application.ContactInput{
		FullName:  req.FullName,
		Email:     req.Email,
		Content:   req.Content,
		Lang:      middleware.LangFrom(c, h.Fallback),
		IP:        c.GetString("real_ip"),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusCreated, gin.H{"sent": true}, "message sent", nil)
}
