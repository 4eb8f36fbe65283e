//go:build unit || e2e

package httptest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type RequestOption func(*http.Request)

func WithCookies(cookies ...*http.Cookie) RequestOption {
	return func(r *http.Request) {
		for _, cookie := range cookies {
			r.AddCookie(cookie)
		}
	}
}

func WithBearer(token string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

// AcceptJSON asks for the JSON representation instead of the page.
func AcceptJSON() RequestOption {
	return WithHeader("Accept", "application/json")
}

func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// executes HTTP request with optional authorization
func PerformRequest(t *testing.T, router http.Handler, method, path string, body any, authToken string) *httptest.ResponseRecorder {
	t.Helper()

	var opts []RequestOption
	if authToken != "" {
		opts = append(opts, WithBearer(authToken))
	}
	return Do(t, router, method, path, body, opts...)
}

// Do sends body as JSON when it is not nil.
func Do(t *testing.T, router http.Handler, method, path string, body any, opts ...RequestOption) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody io.Reader = http.NoBody
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "Failed to encode request body to JSON")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// PostForm submits an urlencoded form.
func PostForm(t *testing.T, router http.Handler, path string, form url.Values, opts ...RequestOption) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, opt := range opts {
		opt(req)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// extracts all cookies from response
func ExtractCookies(w *httptest.ResponseRecorder) []*http.Cookie {
	return w.Result().Cookies()
}

// extracts specific cookie by name from response
func ExtractCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	cookies := w.Result().Cookies()
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

// FindFormValue returns the value of the first input named name in a page.
func FindFormValue(body, name string) (string, bool) {
	pattern := regexp.MustCompile(`name="` + regexp.QuoteMeta(name) + `" value="([^"]*)"`)
	m := pattern.FindStringSubmatch(body)
	if len(m) != 2 {
		return "", false
	}
	return m[1], true
}

// ExtractCSRFToken returns the token of the first CSRF hidden field in a page.
func ExtractCSRFToken(t *testing.T, body string) string {
	t.Helper()

	token, ok := FindFormValue(body, "csrf_token")
	require.True(t, ok && token != "", "CSRF field not found in page")
	return token
}

// ExtractScreenID returns the pass screen id embedded in a page.
func ExtractScreenID(t *testing.T, body string) string {
	t.Helper()

	id, ok := FindFormValue(body, "screen")
	require.True(t, ok && id != "", "screen field not found in page")
	return id
}

// decodes JSON response body into target struct
func DecodeResponseBody(t *testing.T, body *bytes.Buffer, target any) error {
	t.Helper()

	err := json.NewDecoder(body).Decode(target)
	require.NoError(t, err, "Failed to decode response body")

	return err
}
