//go:build unit

package api_test

import (
	"net"
	"net/http"
	nethttptest "net/http/httptest"
	"strings"
	"testing"
	"time"

	"loyalty-console/internal/handler/api"
	"loyalty-console/internal/pkg/config"
	"loyalty-console/tests/common/authtest"
	"loyalty-console/tests/common/httptest"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ScanHandlerTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	f        *fixture
	server   *nethttptest.Server
	token    string
}

func (s *ScanHandlerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.f = newFixture(s.T(), s.mockCtrl)
	s.server = nethttptest.NewServer(s.f.router)
	s.token = s.f.jwt.GenerateToken(s.T(), "user_1", authtest.WithSessionID("sess_scan"))
}

func (s *ScanHandlerTestSuite) TearDownTest() {
	s.server.Close()
	s.mockCtrl.Finish()
}

func TestScanHandlerSuite(t *testing.T) {
	suite.Run(t, new(ScanHandlerTestSuite))
}

const shortStreamTimeout = 300 * time.Millisecond

// withShortStreamTimeout restarts the server with a scan stream timeout short
// enough to watch expire.
func (s *ScanHandlerTestSuite) withShortStreamTimeout() {
	s.server.Close()
	s.f = newFixtureWith(s.T(), s.mockCtrl, func(cfg *config.Config) {
		cfg.Session.ScanStreamTimeout = shortStreamTimeout
	})
	s.server = nethttptest.NewServer(s.f.router)
}

func (s *ScanHandlerTestSuite) dial(header http.Header) (*websocket.Conn, *http.Response, error) {
	url := "ws" + strings.TrimPrefix(s.server.URL, "http") + api.ScanStreamPath
	return websocket.DefaultDialer.Dial(url, header)
}

type streamEvent struct {
	msg api.ScanMessage
	err error
}

// pump reads the stream in the background; reading is what answers pings.
func pump(conn *websocket.Conn) <-chan streamEvent {
	events := make(chan streamEvent, 8)
	go func() {
		defer close(events)
		for {
			var msg api.ScanMessage
			if err := conn.ReadJSON(&msg); err != nil {
				events <- streamEvent{err: err}
				return
			}
			events <- streamEvent{msg: msg}
		}
	}()
	return events
}

func (s *ScanHandlerTestSuite) next(events <-chan streamEvent) streamEvent {
	s.T().Helper()
	select {
	case ev, ok := <-events:
		s.Require().True(ok, "stream reader stopped")
		return ev
	case <-time.After(2 * time.Second):
		s.FailNow("no stream event")
		return streamEvent{}
	}
}

func (s *ScanHandlerTestSuite) authHeader() http.Header {
	return http.Header{"Authorization": {"Bearer " + s.token}}
}

func (s *ScanHandlerTestSuite) read(conn *websocket.Conn) api.ScanMessage {
	s.T().Helper()
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	var msg api.ScanMessage
	s.Require().NoError(conn.ReadJSON(&msg))
	return msg
}

func (s *ScanHandlerTestSuite) TestPage() {
	s.Run("success: renders the scanner wired to the stream", func() {
		rec := httptest.PerformRequest(s.T(), s.f.router, http.MethodGet, "/scan", nil, s.token)
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `id="qr-reader"`)
		s.Contains(rec.Body.String(), api.ScanStreamPath)
	})
}

func (s *ScanHandlerTestSuite) TestStream() {
	s.Run("success: first decode releases the camera then navigates once", func() {
		conn, res, err := s.dial(s.authHeader())
		s.Require().NoError(err)
		defer res.Body.Close()
		defer conn.Close()

		// ignored: empty decodes and unknown messages produce nothing
		s.Require().NoError(conn.WriteJSON(api.ScanMessage{Type: api.MessageDecoded, Text: ""}))
		s.Require().NoError(conn.WriteJSON(api.ScanMessage{Type: "ping"}))
		s.Require().NoError(conn.WriteJSON(api.ScanMessage{Type: api.MessageDecoded, Text: "ABC123"}))

		s.Equal(api.ScanMessage{Type: api.MessageRelease}, s.read(conn))
		s.Equal(api.ScanMessage{Type: api.MessageNavigate, Path: "/pass/ABC123"}, s.read(conn))

		s.Require().NoError(conn.WriteJSON(api.ScanMessage{Type: api.MessageDecoded, Text: "DEF456"}))
		s.Require().NoError(conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond)))
		var msg api.ScanMessage
		err = conn.ReadJSON(&msg)
		var netErr net.Error
		s.Require().ErrorAs(err, &netErr, "unexpected message %+v", msg)
		s.True(netErr.Timeout())
	})

	s.Run("success: decoded text is escaped into the path", func() {
		conn, res, err := s.dial(s.authHeader())
		s.Require().NoError(err)
		defer res.Body.Close()
		defer conn.Close()

		s.Require().NoError(conn.WriteJSON(api.ScanMessage{Type: api.MessageDecoded, Text: "https://x/y?z"}))

		s.Equal(api.MessageRelease, s.read(conn).Type)
		s.Equal("/pass/https:%2F%2Fx%2Fy%3Fz", s.read(conn).Path)
	})

	s.Run("success: a browser answering pings outlives the read timeout", func() {
		s.withShortStreamTimeout()
		conn, res, err := s.dial(s.authHeader())
		s.Require().NoError(err)
		defer res.Body.Close()
		defer conn.Close()
		events := pump(conn)

		time.Sleep(3 * shortStreamTimeout)
		select {
		case ev := <-events:
			s.FailNow("stream ended early", "%+v", ev)
		default:
		}

		s.Require().NoError(conn.WriteJSON(api.ScanMessage{Type: api.MessageDecoded, Text: "ABC123"}))
		s.Equal(api.ScanMessage{Type: api.MessageRelease}, s.next(events).msg)
		s.Equal(api.ScanMessage{Type: api.MessageNavigate, Path: "/pass/ABC123"}, s.next(events).msg)
	})

	s.Run("error: a silent browser is dropped and its camera released", func() {
		s.withShortStreamTimeout()
		conn, res, err := s.dial(s.authHeader())
		s.Require().NoError(err)
		defer res.Body.Close()
		defer conn.Close()
		conn.SetPingHandler(func(string) error { return nil })
		events := pump(conn)

		s.Equal(api.ScanMessage{Type: api.MessageRelease}, s.next(events).msg)
		s.Error(s.next(events).err, "server must close the stream")
	})

	s.Run("error: unauthenticated dial is not upgraded", func() {
		_, res, err := s.dial(nil)
		s.Require().ErrorIs(err, websocket.ErrBadHandshake)
		s.Require().NotNil(res)
		defer res.Body.Close()
		s.Equal(http.StatusSeeOther, res.StatusCode)
	})

	s.Run("error: foreign origin is refused", func() {
		header := s.authHeader()
		header.Set("Origin", "http://evil.example")

		_, res, err := s.dial(header)
		s.Require().ErrorIs(err, websocket.ErrBadHandshake)
		s.Require().NotNil(res)
		defer res.Body.Close()
		s.Equal(http.StatusForbidden, res.StatusCode)
	})
}
