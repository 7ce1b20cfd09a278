package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-backend/internal/application"
	"github.com/oksasatya/portfolio-backend/internal/domain/entity"
	"github.com/oksasatya/portfolio-backend/internal/interface/middleware"
	"github.com/oksasatya/portfolio-backend/pkg/helpers"
	"github.com/oksasatya/portfolio-backend/pkg/response"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type sessionView struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

func toSessionView(s entity.AdminSession) sessionView {
	return sessionView{UserID: s.UserID, Email: s.Email, DisplayName: s.Name()}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.Svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.Cookies.SetAccess(c, res.AccessToken, res.ExpiresAt)
	response.OK(c, http.StatusOK, gin.H{
		"session":      toSessionView(res.Session),
		"access_token": res.AccessToken,
	}, "login successful", gin.H{"access_expires_at": res.ExpiresAt})
}

// Logout always clears the cookie; a live session is revoked as well.
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, err := h.Svc.CurrentSession(c.Request.Context(), middleware.AccessToken(c))
	if err == nil && sess != nil {
		if err := h.Svc.SignOut(c.Request.Context(), sess.UserID); err != nil && h.Logger != nil {
			h.Logger.WithError(err).WithField("user_id", sess.UserID).Warn("session revoke failed")
		}
	}
	h.Cookies.Clear(c)
	response.OK(c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// Session reports whether a session is present; it is never a 401.
func (h *AuthHandler) Session(c *gin.Context) {
	sess, err := h.Svc.CurrentSession(c.Request.Context(), middleware.AccessToken(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if sess == nil {
		response.OK(c, http.StatusOK, gin.H{"authenticated": false}, "no session", nil)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"authenticated": true, "session": toSessionView(*sess)}, "session", nil)
}
