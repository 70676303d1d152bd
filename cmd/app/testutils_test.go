package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sushihentaime/globalaffair/internal/common"
	"github.com/sushihentaime/globalaffair/internal/userservice"
)

const testPassword = "Test_1234!"

var pngImage = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type testServer struct {
	*httptest.Server
}

// newTestServer returns a server whose client does not follow redirects, so handlers can be
// checked on their Location header.
func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	ts.Client().CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func newTestConfig(t *testing.T) *Config {
	public := t.TempDir()

	return &Config{
		Port:           ":0",
		Environment:    "testing",
		Version:        "test",
		JWTSecret:      "a-test-secret-that-is-long-enough",
		TokenTTL:       time.Hour,
		PublicDir:      public,
		UploadDir:      filepath.Join(public, "uploads"),
		MaxUploadBytes: 1 << 20,
	}
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func newTestApplication(t *testing.T) (*application, *mongo.Database) {
	db := common.TestDB("file://../../migrations", t)

	app, err := newApplication(newTestConfig(t), newTestLogger(), db)
	require.NoError(t, err)
	t.Cleanup(app.stopBackground)

	return app, db
}

// newTestUser creates an account and returns it together with a valid identity cookie.
func newTestUser(t *testing.T, app *application, fullName, email string) (*userservice.User, *http.Cookie) {
	t.Helper()

	user, err := app.userService.CreateUser(context.Background(), fullName, email, testPassword)
	require.NoError(t, err)

	token, err := app.tokens.Issue(user)
	require.NoError(t, err)

	return user, &http.Cookie{Name: tokenCookieName, Value: token.Plain}
}

func (ts *testServer) do(t *testing.T, method, path string, body io.Reader, contentType string, cookie *http.Cookie) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	res, err := ts.Client().Do(req)
	require.NoError(t, err)

	t.Cleanup(func() { res.Body.Close() })

	return res
}

func (ts *testServer) get(t *testing.T, path string, cookie *http.Cookie) *http.Response {
	return ts.do(t, http.MethodGet, path, nil, "", cookie)
}

func (ts *testServer) postForm(t *testing.T, path string, form url.Values, cookie *http.Cookie) *http.Response {
	return ts.do(t, http.MethodPost, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", cookie)
}

// postMultipart sends fields and, when file is not nil, a coverImage part.
func (ts *testServer) postMultipart(t *testing.T, path string, fields map[string]string, file []byte, cookie *http.Cookie) *http.Response {
	t.Helper()

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	if file != nil {
		fw, err := mw.CreateFormFile(coverImageField, "cover.png")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())

	return ts.do(t, http.MethodPost, path, body, mw.FormDataContentType(), cookie)
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()

	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return string(b)
}

func readJSON(t *testing.T, res *http.Response) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal([]byte(readBody(t, res)), &env))

	return env
}
