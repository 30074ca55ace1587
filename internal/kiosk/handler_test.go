package kiosk

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupKioskTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	r, _ := setupKioskTestRouterWithService(t)
	return r
}

func setupKioskTestRouterWithService(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _ := newTestService(t)
	r := gin.New()
	NewHandler(svc, nil).Register(r)
	return r, svc
}

// client keeps the session cookie between requests like a kiosk browser would.
type client struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
}

func (cl *client) do(method, target string, body string, contentType string) *httptest.ResponseRecorder {
	cl.t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cl.cookie != nil {
		req.AddCookie(cl.cookie)
	}

	w := httptest.NewRecorder()
	cl.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie {
			cl.cookie = c
		}
	}
	return w
}

func (cl *client) json(method, target string, payload any) (*httptest.ResponseRecorder, map[string]any) {
	cl.t.Helper()

	var body string
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(cl.t, err)
		body = string(data)
	}

	w := cl.do(method, target, body, "application/json")
	var resp map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(cl.t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestHandler_PageIssuesSession(t *testing.T) {
	cl := &client{t: t, router: setupKioskTestRouter(t)}

	w := cl.do(http.MethodGet, "/", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), `id="selected-items"`)
	require.NotNil(t, cl.cookie)
	assert.NotEmpty(t, cl.cookie.Value)
}

func TestHandler_FormFlow(t *testing.T) {
	cl := &client{t: t, router: setupKioskTestRouter(t)}
	form := "application/x-www-form-urlencoded"

	w := cl.do(http.MethodPost, "/kiosk/items/A/select", "", form)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cl.do(http.MethodPost, "/kiosk/items/A/select", "", form)

	w = cl.do(http.MethodGet, "/kiosk/selection", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<span>2</span>")
	assert.Contains(t, w.Body.String(), "10,000원")

	w = cl.do(http.MethodPost, "/kiosk/items/A/quantity", url.Values{"delta": {"-2"}}.Encode(), form)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = cl.do(http.MethodGet, "/kiosk/selection", "", "")
	assert.NotContains(t, w.Body.String(), `class="selected-item"`)
}

func TestHandler_FormBadInput(t *testing.T) {
	cl := &client{t: t, router: setupKioskTestRouter(t)}
	form := "application/x-www-form-urlencoded"

	w := cl.do(http.MethodPost, "/kiosk/items/A/quantity", url.Values{"delta": {"x"}}.Encode(), form)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = cl.do(http.MethodPost, "/kiosk/items/A/select", url.Values{"price": {"abc"}}.Encode(), form)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = cl.do(http.MethodPost, "/kiosk/items/unknown/select", "", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_SaveAndRestoreForms(t *testing.T) {
	cl := &client{t: t, router: setupKioskTestRouter(t)}
	form := "application/x-www-form-urlencoded"

	w := cl.do(http.MethodPost, "/kiosk/restore", "", form)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?notice=no-snapshot", w.Header().Get("Location"))

	cl.do(http.MethodPost, "/kiosk/items/B/select", "", form)
	w = cl.do(http.MethodPost, "/kiosk/save", "", form)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?notice=saved", w.Header().Get("Location"))

	w = cl.do(http.MethodGet, "/?notice=saved", "", "")
	assert.Contains(t, w.Body.String(), "선택한 메뉴를 저장했습니다.")

	w = cl.do(http.MethodPost, "/kiosk/restore", "", form)
	assert.Equal(t, "/?notice=restored", w.Header().Get("Location"))
}

func TestHandler_JSONFlow(t *testing.T) {
	cl := &client{t: t, router: setupKioskTestRouter(t)}

	w, resp := cl.json(http.MethodPost, "/api/kiosk/items/A/select", map[string]any{"name": "Burger", "price": 5000})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(5000), resp["total"])

	w, resp = cl.json(http.MethodPost, "/api/kiosk/items/A/select", map[string]any{"name": "Whopper", "price": 9000})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "10,000원", resp["total_text"])
	assert.Equal(t, map[string]any{
		"A": map[string]any{"name": "Burger", "price": float64(5000), "quantity": float64(2), "orderNumber": float64(0)},
	}, resp["cart"])

	w, resp = cl.json(http.MethodPost, "/api/kiosk/items/A/quantity", map[string]any{"delta": -2})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{}, resp["cart"])
	assert.Empty(t, resp["items"])
}

func TestHandler_JSONUpdateMissingItem(t *testing.T) {
	cl := &client{t: t, router: setupKioskTestRouter(t)}

	w, resp := cl.json(http.MethodPost, "/api/kiosk/items/A/quantity", map[string]any{"delta": -1})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["ignored"])
}

func TestHandler_JSONUpdateRequiresDelta(t *testing.T) {
	cl := &client{t: t, router: setupKioskTestRouter(t)}

	w, _ := cl.json(http.MethodPost, "/api/kiosk/items/A/quantity", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_JSONSaveRestore(t *testing.T) {
	cl := &client{t: t, router: setupKioskTestRouter(t)}

	cl.json(http.MethodPost, "/api/kiosk/items/B/select", nil)
	w, _ := cl.json(http.MethodPost, "/api/kiosk/save", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = cl.do(http.MethodDelete, "/api/kiosk/session", "", "")
	require.Equal(t, http.StatusNoContent, w.Code)

	// the cleared cookie starts a new session without a snapshot
	cl.cookie = nil
	w, resp := cl.json(http.MethodPost, "/api/kiosk/restore", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp["restored"])
}

func TestHandler_RestoreAfterReset(t *testing.T) {
	cl := &client{t: t, router: setupKioskTestRouter(t)}

	cl.json(http.MethodPost, "/api/kiosk/items/B/select", nil)
	cl.json(http.MethodPost, "/api/kiosk/save", nil)
	saved := cl.cookie

	cl.do(http.MethodDelete, "/api/kiosk/session", "", "")

	// same kiosk comes back with its old session id
	cl.cookie = saved
	w, resp := cl.json(http.MethodPost, "/api/kiosk/restore", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["restored"])

	sel := resp["selection"].(map[string]any)
	assert.Len(t, sel["items"], 1)
}

func TestHandler_InvalidCookieGetsReplaced(t *testing.T) {
	cl := &client{t: t, router: setupKioskTestRouter(t)}
	cl.cookie = &http.Cookie{Name: SessionCookie, Value: "not-a-uuid"}

	w := cl.do(http.MethodGet, "/api/kiosk/selection", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, "not-a-uuid", cl.cookie.Value)
	assert.True(t, bytes.Contains(w.Body.Bytes(), []byte(cl.cookie.Value)))
}

func TestHandler_JSONRejectsOverflow(t *testing.T) {
	cl := &client{t: t, router: setupKioskTestRouter(t)}

	w, _ := cl.json(http.MethodPost, "/api/kiosk/items/A/select", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = cl.json(http.MethodPost, "/api/kiosk/items/A/quantity", map[string]any{"delta": int64(9223372036854775807)})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = cl.json(http.MethodPost, "/api/kiosk/items/big/select", map[string]any{"name": "Big", "price": int64(9223372036854775807)})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp := cl.json(http.MethodGet, "/api/kiosk/selection", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(5000), resp["total"])
	assert.Len(t, resp["items"], 1)
}

func TestHandler_PageVisitsDoNotStartSessions(t *testing.T) {
	router, svc := setupKioskTestRouterWithService(t)

	for i := 0; i < 3; i++ {
		cl := &client{t: t, router: router}
		w := cl.do(http.MethodGet, "/", "", "")
		require.Equal(t, http.StatusOK, w.Code)
	}
	assert.Empty(t, svc.Sessions())

	cl := &client{t: t, router: router}
	cl.do(http.MethodGet, "/", "", "")
	w := cl.do(http.MethodPost, "/kiosk/items/A/select", "", "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusSeeOther, w.Code)

	sessions := svc.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, cl.cookie.Value, sessions[0].ID)
}
