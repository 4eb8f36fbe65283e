package api

import (
	"net/http"
	"strings"

	reqdto "loyalty-console/internal/handler/dto/request"
	resdto "loyalty-console/internal/handler/dto/response"
	"loyalty-console/internal/handler/middleware"
	"loyalty-console/internal/handler/view"
	"loyalty-console/internal/pkg/clock"
	"loyalty-console/internal/pkg/config"
	"loyalty-console/internal/pkg/cookie"
	"loyalty-console/internal/usecase"
	"loyalty-console/internal/usecase/passview"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	tokenValidator usecase.TokenValidator
	screens        *passview.Registry
	renderer       *view.Renderer
	clock          clock.Clock
	authCfg        config.AuthConfig
	cookieCfg      config.CookieConfig
}

func NewAuthHandler(tokenValidator usecase.TokenValidator, screens *passview.Registry, renderer *view.Renderer, clk clock.Clock, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		tokenValidator: tokenValidator,
		screens:        screens,
		renderer:       renderer,
		clock:          clk,
		authCfg:        cfg.Auth,
		cookieCfg:      cfg.Cookie,
	}
}

// @Summary Sign-in screen
// @Tags auth
// @Produce html
// @Param next query string false "Path to return to after sign-in"
// @Success 200 {string} string "HTML page"
// @Success 303 "Already signed in"
// @Router /login [get]
func (h *AuthHandler) LoginPage(c *gin.Context) {
	next := SafeNext(c.Query("next"))
	if _, ok := middleware.GetEmployee(c); ok {
		c.Redirect(http.StatusSeeOther, next)
		return
	}
	h.renderLogin(c, http.StatusOK, next, nil)
}

// @Summary Sign in
// @Description Exchange an identity provider session token for a console session
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce html
// @Param token formData string true "Session token issued by the identity provider"
// @Param next formData string false "Path to return to"
// @Success 303 "Signed in"
// @Failure 400 {string} string "HTML page"
// @Failure 401 {string} string "HTML page"
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderLogin(c, http.StatusBadRequest, SafeNext(c.PostForm("next")),
			&view.Alert{Kind: view.AlertFailure, Message: "Session token required"})
		return
	}
	next := SafeNext(req.Next)
	token := strings.TrimSpace(req.Token)

	employee, err := h.tokenValidator.ValidateToken(token)
	if err != nil {
		_ = c.Error(err)
		h.renderLogin(c, http.StatusUnauthorized, next,
			&view.Alert{Kind: view.AlertFailure, Message: "Invalid or expired token"})
		return
	}

	// a fresh session never inherits a previous pass screen
	if previous := cookie.GetSessionID(c); previous != "" {
		h.screens.Discard(previous)
	}
	sessionID := uuid.NewString()
	cookie.SetSessionCookies(c, h.cookieCfg, token, sessionID, employee.ExpiresAt.Sub(h.clock.Now()))

	c.Redirect(http.StatusSeeOther, next)
}

// @Summary Sign out
// @Tags auth
// @Security BearerAuth
// @Success 303 "Redirect to the sign-in screen"
// @Success 204 "No Content"
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID := middleware.GetSessionID(c); sessionID != "" {
		h.screens.Discard(sessionID)
	}
	cookie.ClearSessionCookies(c, h.cookieCfg)

	if middleware.WantsHTML(c) {
		c.Redirect(http.StatusSeeOther, middleware.LoginPath)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Current session
// @Description Get the signed-in employee and when the session token expires
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.SessionResponse
// @Failure 401 {object} httperr.Response
// @Router /session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	employee, ok := middleware.GetEmployee(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Internal server error"}})
		return
	}

	c.JSON(http.StatusOK, resdto.SessionResponse{
		EmployeeID: employee.ID,
		Name:       employee.Name,
		Email:      employee.Email,
		ExpiresAt:  employee.ExpiresAt,
	})
}

func (h *AuthHandler) renderLogin(c *gin.Context, status int, next string, alert *view.Alert) {
	h.renderer.HTML(c, status, view.PageLogin, view.Page{
		Title: "Sign in",
		Alert: alert,
		Data: resdto.LoginPage{
			SignInURL: h.authCfg.SignInURL,
			Next:      next,
		},
	})
}

// SafeNext keeps post-login redirects on this site.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") ||
		strings.HasPrefix(next, "/\\") || strings.HasPrefix(next, middleware.LoginPath) {
		return "/"
	}
	return next
}
