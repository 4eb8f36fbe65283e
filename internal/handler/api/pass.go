package api

import (
	"errors"
	"net/http"

	reqdto "loyalty-console/internal/handler/dto/request"
	resdto "loyalty-console/internal/handler/dto/response"
	"loyalty-console/internal/handler/httperr"
	"loyalty-console/internal/handler/middleware"
	"loyalty-console/internal/handler/view"
	"loyalty-console/internal/usecase/passview"
	"loyalty-console/internal/usecase/scan"

	"github.com/gin-gonic/gin"
)

const (
	// ScreenField carries the pass screen id of a mutation (form, JSON or query).
	ScreenField = "screen"
	// LeaveParam names the pass screen a navigation away comes from.
	LeaveParam = "leave"
)

type PassHandler struct {
	screens  *passview.Registry
	renderer *view.Renderer
}

func NewPassHandler(screens *passview.Registry, renderer *view.Renderer) *PassHandler {
	return &PassHandler{
		screens:  screens,
		renderer: renderer,
	}
}

// @Summary Pass details
// @Description Fetch a loyalty pass by serial number
// @Tags passes
// @Security BearerAuth
// @Produce html,json
// @Param serialNumber path string true "Pass serial number"
// @Success 200 {object} resdto.PassScreenResponse
// @Failure 401 {object} resdto.PassScreenResponse
// @Failure 404 {object} resdto.PassScreenResponse
// @Failure 502 {object} resdto.PassScreenResponse
// @Router /pass/{serialNumber} [get]
func (h *PassHandler) Show(c *gin.Context) {
	serial := c.Param("serialNumber")
	screenID, vm := h.screens.Mount(middleware.GetSessionID(c))

	snap := vm.Open(c.Request.Context(), serial, middleware.GetTokens(c))
	h.respond(c, serial, screenID, snap, nil)
}

// @Summary Add points
// @Tags passes
// @Security BearerAuth
// @Accept x-www-form-urlencoded,json
// @Produce html,json
// @Param serialNumber path string true "Pass serial number"
// @Param points formData integer true "Non-negative amount of points"
// @Param screen formData string true "Pass screen id from the page or the JSON snapshot"
// @Success 200 {object} resdto.PassScreenResponse
// @Failure 400 {object} resdto.PassScreenResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} resdto.PassScreenResponse
// @Failure 502 {object} resdto.PassScreenResponse
// @Router /pass/{serialNumber}/points [post]
func (h *PassHandler) AddPoints(c *gin.Context) {
	serial := c.Param("serialNumber")

	var req reqdto.AddPointsRequest
	if err := c.ShouldBind(&req); err != nil {
		// unparseable amounts fail local validation below
		req.Points = ""
	}
	screenID := screenOf(c, req.Screen)
	vm, ok := h.screens.Lookup(middleware.GetSessionID(c), screenID)
	if !ok {
		h.notLoaded(c, serial, passview.MsgAddPointsFailed, passview.ErrNotLoaded)
		return
	}

	snap, err := vm.AddPoints(c.Request.Context(), serial, req.Points.String(), middleware.GetTokens(c))
	h.mutated(c, serial, screenID, passview.MsgAddPointsFailed, snap, err)
}

// @Summary Redeem bonus
// @Tags passes
// @Security BearerAuth
// @Accept x-www-form-urlencoded,json
// @Produce html,json
// @Param serialNumber path string true "Pass serial number"
// @Param screen formData string true "Pass screen id from the page or the JSON snapshot"
// @Success 200 {object} resdto.PassScreenResponse
// @Failure 400 {object} resdto.PassScreenResponse
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} resdto.PassScreenResponse
// @Router /pass/{serialNumber}/bonus [post]
func (h *PassHandler) RedeemBonus(c *gin.Context) {
	serial := c.Param("serialNumber")

	var req reqdto.RedeemBonusRequest
	_ = c.ShouldBind(&req)
	screenID := screenOf(c, req.Screen)
	vm, ok := h.screens.Lookup(middleware.GetSessionID(c), screenID)
	if !ok {
		h.notLoaded(c, serial, passview.MsgRedeemFailed, passview.ErrNotLoaded)
		return
	}

	snap, err := vm.RedeemBonus(c.Request.Context(), serial, middleware.GetTokens(c))
	h.mutated(c, serial, screenID, passview.MsgRedeemFailed, snap, err)
}

// screenOf returns the screen id posted with the mutation, falling back to
// the screen query parameter.
func screenOf(c *gin.Context, posted string) string {
	if posted != "" {
		return posted
	}
	return c.Query(ScreenField)
}

// leaveScreen releases the pass screen a navigation comes from.
func leaveScreen(c *gin.Context, screens *passview.Registry) {
	if screenID := c.Query(LeaveParam); screenID != "" {
		screens.Release(middleware.GetSessionID(c), screenID)
	}
}

func (h *PassHandler) mutated(c *gin.Context, serial, screenID, failure string, snap passview.Snapshot, err error) {
	if errors.Is(err, passview.ErrNotLoaded) {
		h.notLoaded(c, serial, failure, err)
		return
	}
	h.respond(c, serial, screenID, snap, err)
}

// notLoaded answers a mutation whose screen is gone or shows another pass.
// Pages get a freshly opened screen on serial carrying the failure alert.
func (h *PassHandler) notLoaded(c *gin.Context, serial, failure string, err error) {
	if !middleware.WantsHTML(c) {
		httperr.AbortWithError(c, http.StatusConflict, err, "Pass is not loaded", nil)
		return
	}
	_ = c.Error(err)

	screenID, vm := h.screens.Mount(middleware.GetSessionID(c))
	snap := vm.Open(c.Request.Context(), serial, middleware.GetTokens(c))
	status := http.StatusConflict
	if snap.State == passview.StateErrored {
		status, _ = httperr.StatusFor(snap.Err)
	}
	h.render(c, status, screenID, snap, &view.Alert{Kind: view.AlertFailure, Message: failure})
}

// respond renders snap. mutationErr is the failed mutation, if any; the screen
// still shows the pass as it was before.
func (h *PassHandler) respond(c *gin.Context, serial, screenID string, snap passview.Snapshot, mutationErr error) {
	if snap.Stale {
		c.Redirect(http.StatusSeeOther, scan.PassPath(serial))
		return
	}

	err := mutationErr
	if snap.State == passview.StateErrored {
		err = snap.Err
	}
	status, _ := httperr.StatusFor(err)
	if err != nil {
		_ = c.Error(err)
	}

	if !middleware.WantsHTML(c) {
		c.JSON(status, resdto.FromSnapshot(screenID, snap))
		return
	}

	var alert *view.Alert
	if snap.Notice != nil {
		alert = &view.Alert{Kind: alertKind(snap.Notice.Kind), Message: snap.Notice.Message}
	}
	h.render(c, status, screenID, snap, alert)
}

func (h *PassHandler) render(c *gin.Context, status int, screenID string, snap passview.Snapshot, alert *view.Alert) {
	employee, _ := middleware.GetEmployee(c)
	h.renderer.HTML(c, status, view.PagePass, view.Page{
		Title:    "Pass " + snap.SerialNumber,
		Employee: employee,
		Alert:    alert,
		Screen:   screenID,
		Data: resdto.PassPage{
			ScreenID:     screenID,
			Pass:         resdto.FromPass(snap.Pass),
			ErrorMessage: snap.Message,
			PointsPath:   scan.PassPath(snap.SerialNumber) + "/points",
			BonusPath:    scan.PassPath(snap.SerialNumber) + "/bonus",
		},
	})
}

func alertKind(k passview.NoticeKind) view.AlertKind {
	if k == passview.NoticeSuccess {
		return view.AlertSuccess
	}
	return view.AlertFailure
}
