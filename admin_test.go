package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) login(t *testing.T) *http.Cookie {
	t.Helper()
	w := ts.do(postForm("/admin/login", url.Values{"username": {"admin"}, "password": {"secret"}}))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))

	for _, c := range w.Result().Cookies() {
		if c.Name == adminCookie {
			return c
		}
	}
	t.Fatal("no admin cookie set")
	return nil
}

func (ts *testServer) adminRequest(method, target string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	req.AddCookie(cookie)
	return ts.do(req)
}

func TestAdminRoutesRequireLogin(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/admin/dashboard", "/admin/visitors", "/admin/messages", "/admin/api/stats"} {
		w := ts.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/admin/login", w.Header().Get("Location"), path)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: adminCookie, Value: "forged"})
	assert.Equal(t, http.StatusFound, ts.do(req).Code)
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(postForm("/admin/login", url.Values{"username": {"admin"}, "password": {"admin123"}}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
	assert.Empty(t, w.Result().Cookies())
}

func TestAdminDashboard(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(t)

	w := ts.adminRequest(http.MethodGet, "/admin/dashboard", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Not loaded yet.")

	ts.load(t)
	w = ts.adminRequest(http.MethodGet, "/admin/dashboard", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "portfolio.jsonc")
	// the untitled project was dropped during normalization
	assert.Contains(t, w.Body.String(), `class="warnings"`)
	assert.Contains(t, w.Body.String(), "projects[1]")
}

func TestAdminReload(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(t)

	w := ts.adminRequest(http.MethodPost, "/admin/reload", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/dashboard?reloaded=1", w.Header().Get("Location"))
	assert.True(t, ts.holder.Loaded())

	w = ts.adminRequest(http.MethodGet, "/admin/dashboard?reloaded=1", cookie)
	assert.Contains(t, w.Body.String(), "Portfolio data reloaded.")
}

func TestAdminDeleteMessage(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(t)

	id, err := ts.db.SaveMessage(context.Background(), "Ann", "ann@example.com", "Hello")
	require.NoError(t, err)

	w := ts.adminRequest(http.MethodGet, "/admin/messages", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ann@example.com")

	target := "/admin/messages/" + strconv.FormatInt(id, 10)
	assert.Equal(t, http.StatusOK, ts.adminRequest(http.MethodDelete, target, cookie).Code)
	assert.Equal(t, http.StatusNotFound, ts.adminRequest(http.MethodDelete, target, cookie).Code)
	assert.Equal(t, http.StatusBadRequest, ts.adminRequest(http.MethodDelete, "/admin/messages/abc", cookie).Code)
}

func TestAdminExportStats(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(t)

	w := ts.adminRequest(http.MethodGet, "/admin/export/stats", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "admin-stats.json")
	assert.Contains(t, w.Body.String(), `"total_visitors"`)
}

func TestVisitorTracking(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	ts.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Eventually(t, func() bool {
		v, err := ts.db.RecentVisitors(ctx, 10)
		return err == nil && len(v) == 1
	}, 2*time.Second, 10*time.Millisecond)

	visitors, err := ts.db.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "/", visitors[0].Path)
	assert.Len(t, visitors[0].HashedIP, 16)

	skipped := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/privacy", nil),
		httptest.NewRequest(http.MethodGet, "/healthz", nil),
		httptest.NewRequest(http.MethodGet, "/sections/projects", nil),
		httptest.NewRequest(http.MethodGet, "/", nil),
	}
	skipped[2].Header.Set("HX-Request", "true")
	skipped[3].Header.Set("DNT", "1")
	for _, req := range skipped {
		ts.do(req)
	}

	// Give any stray background write a chance to land.
	time.Sleep(50 * time.Millisecond)
	visitors, err = ts.db.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, visitors, 1)
}

func TestHashIPIsStablePerProcess(t *testing.T) {
	ts := newTestServer(t)

	assert.Equal(t, ts.admin.hashIP("10.0.0.1"), ts.admin.hashIP("10.0.0.1"))
	assert.NotEqual(t, ts.admin.hashIP("10.0.0.1"), ts.admin.hashIP("10.0.0.2"))
}

func TestPrivacyPage(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(httptest.NewRequest(http.MethodGet, "/privacy", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Do Not Track")
}
