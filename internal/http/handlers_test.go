package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujalbistaa/socialapp/internal/config"
	"github.com/sujalbistaa/socialapp/internal/feed"
	"github.com/sujalbistaa/socialapp/internal/store"
	"github.com/sujalbistaa/socialapp/internal/ws"
)

type testApp struct {
	router *gin.Engine
	ctrl   *feed.Controller
	repo   store.Repository
	hub    *ws.Hub
}

func newTestApp(t *testing.T) *testApp {
	return newTestAppWith(t, config.Config{CORSOrigin: "*", SubmitRPS: 100, SubmitBurst: 10})
}

func newTestAppWith(t *testing.T, cfg config.Config) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	repo := store.NewMemory()
	require.NoError(t, store.Seed(ctx, repo))
	hub := ws.NewHub()

	ctrl, err := feed.New(ctx, repo, feed.Options{
		SubmitDelay: 0,
		PulseFor:    time.Millisecond,
		Publisher:   HubPublisher{Hub: hub},
	})
	require.NoError(t, err)

	router := gin.New()
	SetupRoutes(router, cfg, ctrl, hub)
	return &testApp{router: router, ctrl: ctrl, repo: repo, hub: hub}
}

func (a *testApp) postJSON(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	} else {
		buf.WriteString("{}")
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) state(t *testing.T) StateResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp StateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetPageRendersFeed(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "JohnDoe")
	assert.Contains(t, body, `<span class="hashtag">#newuser</span>`)
	assert.Equal(t, 1, strings.Count(body, "nav-btn active"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestComposeAndSubmitOverJSON(t *testing.T) {
	app := newTestApp(t)

	w := app.postJSON(t, "/nav/compose", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, feed.ViewComposing, app.state(t).State.View)

	w = app.postJSON(t, "/composer/input", gin.H{"text": strings.Repeat("a", 261)})
	require.Equal(t, http.StatusOK, w.Code)
	var status feed.ComposerStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, 19, status.Budget.Remaining)
	assert.Equal(t, feed.LevelWarning, status.Budget.Level)
	assert.True(t, status.CanSubmit)

	w = app.postJSON(t, "/composer/submit", gin.H{"content": "hello #go @gopher"})
	require.Equal(t, http.StatusAccepted, w.Code)

	post, err := app.ctrl.PendingSubmit().Wait(context.Background())
	require.NoError(t, err)

	st := app.state(t)
	require.Len(t, st.Posts, 4)
	assert.Equal(t, post.ID, st.Posts[0].ID)
	assert.Equal(t, "hello #go @gopher", st.Posts[0].Content)
	assert.Equal(t, feed.ViewHome, st.State.View)
	assert.Equal(t, 280, st.Composer.Budget.Remaining)
}

func TestWhitespaceSubmitIsNoContent(t *testing.T) {
	app := newTestApp(t)
	app.postJSON(t, "/nav/compose", nil)

	w := app.postJSON(t, "/composer/submit", gin.H{"content": "   "})
	assert.Equal(t, http.StatusNoContent, w.Code)

	st := app.state(t)
	assert.Len(t, st.Posts, 3)
	assert.Equal(t, feed.ViewComposing, st.State.View)
}

func TestComposeCancelOverForms(t *testing.T) {
	app := newTestApp(t)

	w := app.postForm(t, "/nav/compose", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	app.postForm(t, "/composer/cancel", url.Values{"content": {"drafted"}})

	st := app.state(t)
	assert.Equal(t, feed.ViewHome, st.State.View)
	assert.Empty(t, st.State.Draft)
	assert.Len(t, st.Posts, 3)
}

func TestLikeTogglesOverForm(t *testing.T) {
	app := newTestApp(t)

	w := app.postForm(t, "/posts/3/like", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	got, err := app.repo.FindByID(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, got.Liked)
	assert.Equal(t, 25, got.Likes)
}

func TestLikePublishesFragment(t *testing.T) {
	app := newTestApp(t)
	app.postJSON(t, "/posts/1/like", nil)

	for {
		select {
		case raw := <-app.hub.Broadcast:
			var msg struct {
				Type string `json:"type"`
				Data struct {
					ID    int64  `json:"id"`
					Count int    `json:"count"`
					Icon  string `json:"icon"`
					HTML  string `json:"html"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(raw, &msg))
			if msg.Type != feed.EventLike {
				continue
			}
			assert.Equal(t, int64(1), msg.Data.ID)
			assert.Equal(t, 4, msg.Data.Count)
			assert.Equal(t, "far fa-heart", msg.Data.Icon)
			assert.Contains(t, msg.Data.HTML, `<span class="like-count">4</span>`)
			return
		case <-time.After(time.Second):
			t.Fatal("no like event broadcast")
		}
	}
}

func TestUnknownPostLikeIsSilent(t *testing.T) {
	app := newTestApp(t)

	w := app.postJSON(t, "/posts/12345/like", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBadRequests(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, http.StatusBadRequest, app.postJSON(t, "/posts/abc/like", nil).Code)
	assert.Equal(t, http.StatusNotFound, app.postJSON(t, "/nav/elsewhere", nil).Code)
	assert.Equal(t, http.StatusBadRequest, app.postJSON(t, "/keys", gin.H{"ctrl": true}).Code)
}

func TestNoticesForStubs(t *testing.T) {
	app := newTestApp(t)

	w := app.postJSON(t, "/nav/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp StateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, feed.NoticeSettings, resp.State.Notice)

	w = app.postJSON(t, "/posts/2/share", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, feed.NoticeShare, resp.State.Notice)
}

func TestKeyboardShortcuts(t *testing.T) {
	app := newTestApp(t)
	app.postJSON(t, "/nav/compose", nil)

	w := app.postJSON(t, "/keys", gin.H{"key": "Enter", "ctrl": true, "draft": "from the keyboard"})
	require.Equal(t, http.StatusAccepted, w.Code)
	_, err := app.ctrl.PendingSubmit().Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from the keyboard", app.state(t).Posts[0].Content)

	app.postJSON(t, "/nav/compose", nil)
	w = app.postJSON(t, "/keys", gin.H{"key": "Escape"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, feed.ViewHome, app.state(t).State.View)
}

func TestSubmitIsRateLimited(t *testing.T) {
	app := newTestAppWith(t, config.Config{CORSOrigin: "*", SubmitRPS: 0.001, SubmitBurst: 1})

	assert.NotEqual(t, http.StatusTooManyRequests, app.postJSON(t, "/composer/submit", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, app.postJSON(t, "/composer/submit", nil).Code)
}
