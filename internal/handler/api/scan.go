package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"slices"
	"sync"
	"time"

	resdto "loyalty-console/internal/handler/dto/response"
	"loyalty-console/internal/handler/middleware"
	"loyalty-console/internal/handler/view"
	"loyalty-console/internal/pkg/config"
	"loyalty-console/internal/usecase/passview"
	"loyalty-console/internal/usecase/scan"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	ScanStreamPath = "/scan/stream"

	scanWriteWait  = 5 * time.Second
	scanMaxMessage = 4096
)

// Scan stream messages
const (
	MessageDecoded  = "decoded"
	MessageRelease  = "release"
	MessageNavigate = "navigate"
)

type ScanMessage struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	Path string `json:"path,omitempty"`
}

type ScanHandler struct {
	screens  *passview.Registry
	renderer *view.Renderer
	upgrader websocket.Upgrader
	logger   *slog.Logger

	// readTimeout is how long a stream may stay silent, pongs included.
	readTimeout time.Duration
}

func NewScanHandler(screens *passview.Registry, renderer *view.Renderer, cfg config.Config, logger *slog.Logger) *ScanHandler {
	trusted := cfg.CSRF.TrustedOrigins
	return &ScanHandler{
		screens:     screens,
		renderer:    renderer,
		logger:      logger,
		readTimeout: cfg.Session.ScanStreamTimeout,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				return u.Host == r.Host || slices.Contains(trusted, u.Host)
			},
		},
	}
}

// @Summary Scanner screen
// @Tags scan
// @Security BearerAuth
// @Produce html
// @Success 200 {string} string "HTML page"
// @Param leave query string false "Pass screen being left"
// @Router /scan [get]
func (h *ScanHandler) Page(c *gin.Context) {
	leaveScreen(c, h.screens)

	employee, _ := middleware.GetEmployee(c)
	h.renderer.HTML(c, http.StatusOK, view.PageScan, view.Page{
		Title:    "Scan",
		Employee: employee,
		Data:     resdto.ScanPage{StreamPath: ScanStreamPath},
	})
}

// @Summary Scan handoff stream
// @Description WebSocket. The client sends {"type":"decoded","text":"..."}; the server answers with release and navigate messages.
// @Tags scan
// @Security BearerAuth
// @Success 101 "Switching Protocols"
// @Router /scan/stream [get]
func (h *ScanHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader already answered with an HTTP error
		h.logger.Warn("Failed to upgrade scan stream", "error", err.Error())
		return
	}
	defer conn.Close()
	conn.SetReadLimit(scanMaxMessage)

	logger := h.logger.With("session_id", middleware.GetSessionID(c))
	stream := &scanStream{conn: conn}
	handoff := scan.NewHandoff(stream, stream, logger)
	defer func() {
		if err := handoff.Close(); err != nil {
			logger.Debug("Scanner release on teardown failed", "error", err.Error())
		}
	}()

	extend := func() error {
		if h.readTimeout <= 0 {
			return nil
		}
		return conn.SetReadDeadline(time.Now().Add(h.readTimeout))
	}
	if h.readTimeout > 0 {
		_ = extend()
		conn.SetPongHandler(func(string) error { return extend() })

		done := make(chan struct{})
		defer close(done)
		go stream.keepAlive(h.readTimeout/2, done, logger)
	}

	for {
		var msg ScanMessage
		if err := conn.ReadJSON(&msg); err != nil {
			var netErr net.Error
			switch {
			case errors.As(err, &netErr) && netErr.Timeout():
				logger.Info("Scan stream went silent", "timeout", h.readTimeout)
			case websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
				logger.Warn("Scan stream closed unexpectedly", "error", err.Error())
			}
			return
		}
		_ = extend()
		if msg.Type != MessageDecoded {
			continue
		}
		if err := handoff.Decoded(msg.Text); err != nil {
			logger.Debug("Decode not handed off", "error", err.Error())
			continue
		}
		// the browser leaves the page on navigate and closes the socket
	}
}

// scanStream is the browser side of one scan session: its camera and its
// location bar.
type scanStream struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *scanStream) Release() error {
	return s.send(ScanMessage{Type: MessageRelease})
}

func (s *scanStream) Navigate(path string) error {
	return s.send(ScanMessage{Type: MessageNavigate, Path: path})
}

// keepAlive pings the browser every period until done is closed.
func (s *scanStream) keepAlive(period time.Duration, done <-chan struct{}, logger *slog.Logger) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(scanWriteWait)); err != nil {
				logger.Debug("Scan stream ping failed", "error", err.Error())
				return
			}
		}
	}
}

func (s *scanStream) send(msg ScanMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.SetWriteDeadline(time.Now().Add(scanWriteWait)); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}
