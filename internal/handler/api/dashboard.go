package api

import (
	"net/http"

	"loyalty-console/internal/handler/httperr"
	"loyalty-console/internal/handler/middleware"
	"loyalty-console/internal/handler/view"
	"loyalty-console/internal/usecase"
	"loyalty-console/internal/usecase/passview"

	"github.com/gin-gonic/gin"
)

const MsgCreatePassFailed = "Failed to create pass."

type DashboardHandler struct {
	issuer   *usecase.PassIssuer
	screens  *passview.Registry
	renderer *view.Renderer
}

func NewDashboardHandler(issuer *usecase.PassIssuer, screens *passview.Registry, renderer *view.Renderer) *DashboardHandler {
	return &DashboardHandler{
		issuer:   issuer,
		screens:  screens,
		renderer: renderer,
	}
}

// @Summary Dashboard
// @Tags dashboard
// @Security BearerAuth
// @Produce html
// @Success 200 {string} string "HTML page"
// @Param leave query string false "Pass screen being left"
// @Router / [get]
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	leaveScreen(c, h.screens)
	h.render(c, http.StatusOK, nil)
}

// @Summary Create pass
// @Description Issue a new wallet pass and download it
// @Tags passes
// @Security BearerAuth
// @Produce application/vnd.apple.pkpass
// @Success 200 {file} file "pass.pkpass"
// @Failure 401 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /passes/new [get]
func (h *DashboardHandler) CreatePass(c *gin.Context) {
	wp, err := h.issuer.Issue(c.Request.Context(), middleware.GetTokens(c))
	if err != nil {
		if !middleware.WantsHTML(c) {
			httperr.AbortWithKind(c, err)
			return
		}
		status, _ := httperr.StatusFor(err)
		_ = c.Error(err)
		h.render(c, status, &view.Alert{Kind: view.AlertFailure, Message: MsgCreatePassFailed})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+wp.Filename+`"`)
	c.Data(http.StatusOK, wp.ContentType, wp.Data)
}

func (h *DashboardHandler) render(c *gin.Context, status int, alert *view.Alert) {
	employee, _ := middleware.GetEmployee(c)
	h.renderer.HTML(c, status, view.PageDashboard, view.Page{
		Title:    "Dashboard",
		Employee: employee,
		Alert:    alert,
	})
}
