//go:build e2e

package e2e

import (
	"net/http"
	nethttptest "net/http/httptest"
	"net/url"
	"testing"

	"loyalty-console/internal/handler/api"
	"loyalty-console/internal/handler/middleware"
	"loyalty-console/internal/usecase/passview"
	"loyalty-console/tests/common/httptest"

	"github.com/stretchr/testify/suite"
)

type PassFlowTestSuite struct {
	SharedSuite
}

func TestPassFlowSuite(t *testing.T) {
	suite.Run(t, new(PassFlowTestSuite))
}

// browser keeps cookies between requests the way a user agent would.
type browser struct {
	s       *PassFlowTestSuite
	cookies map[string]*http.Cookie
}

func (s *PassFlowTestSuite) newBrowser() *browser {
	return &browser{s: s, cookies: map[string]*http.Cookie{}}
}

func (b *browser) options() []httptest.RequestOption {
	jar := make([]*http.Cookie, 0, len(b.cookies))
	for _, c := range b.cookies {
		jar = append(jar, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	return []httptest.RequestOption{
		httptest.WithCookies(jar...),
		httptest.WithHeader("Accept", "text/html,application/xhtml+xml"),
	}
}

func (b *browser) keep(rec *nethttptest.ResponseRecorder) *nethttptest.ResponseRecorder {
	for _, c := range httptest.ExtractCookies(rec) {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return rec
}

func (b *browser) get(path string) *nethttptest.ResponseRecorder {
	return b.keep(httptest.Do(b.s.T(), b.s.Router, http.MethodGet, path, nil, b.options()...))
}

// submit posts a form using the CSRF token and pass screen found in page.
func (b *browser) submit(page, path string, form url.Values) *nethttptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	form.Set(middleware.CSRFFieldName, httptest.ExtractCSRFToken(b.s.T(), page))
	if screen, ok := httptest.FindFormValue(page, api.ScreenField); ok {
		form.Set(api.ScreenField, screen)
	}
	return b.keep(httptest.PostForm(b.s.T(), b.s.Router, path, form, b.options()...))
}

// signIn goes through the login screen and lands on next.
func (b *browser) signIn(next string) {
	rec := b.get(next)
	b.s.Require().Equal(http.StatusSeeOther, rec.Code)
	loginURL := rec.Header().Get("Location")

	rec = b.get(loginURL)
	b.s.Require().Equal(http.StatusOK, rec.Code)

	rec = b.submit(rec.Body.String(), "/login", url.Values{"token": {b.s.Token()}, "next": {next}})
	b.s.Require().Equal(http.StatusSeeOther, rec.Code, rec.Body.String())
	b.s.Require().Equal(next, rec.Header().Get("Location"))
}

func (s *PassFlowTestSuite) TestPassScreen() {
	s.Run("success: scanned pass shows its loyalty details", func() {
		b := s.newBrowser()
		b.signIn("/pass/XYZ")

		rec := b.get("/pass/XYZ")
		s.Equal(http.StatusOK, rec.Code)
		body := rec.Body.String()
		s.Contains(body, `<dd id="pass-holder-name">A. Customer</dd>`)
		s.Contains(body, `<dd id="serial-number">XYZ</dd>`)
		s.Contains(body, `<dd id="total-points">100</dd>`)
		s.Contains(body, `<dd id="current-points">40</dd>`)
		s.Contains(body, `<dd id="already-redeemed">2</dd>`)
		s.Contains(body, `<dd id="last-used-at">N/A</dd>`)
	})

	s.Run("success: last use is shown in the display time zone", func() {
		b := s.newBrowser()
		b.signIn("/pass/USED")

		rec := b.get("/pass/USED")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `<dd id="last-used-at">2026-03-01 09:30</dd>`)
	})

	s.Run("success: add points then redeem a bonus", func() {
		b := s.newBrowser()
		b.signIn("/pass/XYZ")
		page := b.get("/pass/XYZ").Body.String()

		rec := b.submit(page, "/pass/XYZ/points", url.Values{"points": {"5"}})
		s.Equal(http.StatusOK, rec.Code)
		page = rec.Body.String()
		s.Contains(page, passview.MsgPointsAdded)
		s.Contains(page, `<dd id="current-points">45</dd>`)
		s.Contains(page, `<dd id="total-points">105</dd>`)
		s.NotContains(page, `<dd id="last-used-at">N/A</dd>`)

		rec = b.submit(page, "/pass/XYZ/bonus", nil)
		s.Equal(http.StatusOK, rec.Code)
		page = rec.Body.String()
		s.Contains(page, passview.MsgBonusRedeemed)
		s.Contains(page, `<dd id="current-points">35</dd>`)
		s.Contains(page, `<dd id="already-redeemed">3</dd>`)
	})

	s.Run("error: backend refuses the bonus", func() {
		b := s.newBrowser()
		b.signIn("/pass/USED")
		page := b.get("/pass/USED").Body.String()

		rec := b.submit(page, "/pass/USED/bonus", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), passview.MsgRedeemFailed)
		s.Contains(rec.Body.String(), `<dd id="current-points">5</dd>`)
	})

	s.Run("error: invalid amount is not sent", func() {
		b := s.newBrowser()
		b.signIn("/pass/XYZ")
		page := b.get("/pass/XYZ").Body.String()

		rec := b.submit(page, "/pass/XYZ/points", url.Values{"points": {"abc"}})
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
		s.Contains(rec.Body.String(), passview.MsgAddPointsFailed)

		rec = b.get("/pass/XYZ")
		s.Contains(rec.Body.String(), `<dd id="current-points">40</dd>`)
	})

	s.Run("success: two tabs of one browser keep their own pass", func() {
		b := s.newBrowser()
		b.signIn("/pass/XYZ")
		tabXYZ := b.get("/pass/XYZ").Body.String()
		tabUsed := b.get("/pass/USED").Body.String()

		rec := b.submit(tabXYZ, "/pass/XYZ/points", url.Values{"points": {"1"}})
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `<dd id="current-points">41</dd>`)

		rec = b.submit(tabUsed, "/pass/USED/points", url.Values{"points": {"2"}})
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `<dd id="current-points">7</dd>`)
	})

	s.Run("error: unknown pass", func() {
		b := s.newBrowser()
		b.signIn("/pass/NOPE")

		rec := b.get("/pass/NOPE")
		s.Equal(http.StatusNotFound, rec.Code)
		s.Contains(rec.Body.String(), passview.MsgFetchFailed)
	})

	s.Run("error: posting without the page's token is forbidden", func() {
		b := s.newBrowser()
		b.signIn("/pass/XYZ")
		b.get("/pass/XYZ")

		rec := httptest.PostForm(s.T(), s.Router, "/pass/XYZ/points", url.Values{"points": {"5"}}, b.options()...)
		s.Equal(http.StatusForbidden, rec.Code)
	})
}

func (s *PassFlowTestSuite) TestDashboard() {
	s.Run("success: create a new pass", func() {
		b := s.newBrowser()
		b.signIn("/")

		rec := b.get("/passes/new")
		s.Equal(http.StatusOK, rec.Code)
		s.Equal("application/vnd.apple.pkpass", rec.Header().Get("Content-Type"))
		s.Equal(`attachment; filename="pass.pkpass"`, rec.Header().Get("Content-Disposition"))
		s.Equal([]byte("PK\x03\x04fake-pass"), rec.Body.Bytes())
		s.Equal(1, s.Backend.Issued())
	})

	s.Run("success: sign out ends the session", func() {
		b := s.newBrowser()
		b.signIn("/")
		page := b.get("/").Body.String()

		rec := b.submit(page, "/logout", nil)
		httptest.AssertRedirect(s.T(), rec, http.StatusSeeOther, middleware.LoginPath)

		rec = b.get("/")
		httptest.AssertRedirect(s.T(), rec, http.StatusSeeOther, "/login?next=%2F")
	})
}
