package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sujalbistaa/socialapp/internal/feed"
	"github.com/sujalbistaa/socialapp/internal/log"
	"github.com/sujalbistaa/socialapp/internal/models"
	"github.com/sujalbistaa/socialapp/internal/render"
)

// --- Structs for request binding ---
type DraftInput struct {
	Text string `json:"text" form:"text"`
}
type SubmitInput struct {
	Content *string `json:"content" form:"content"`
}
type KeyInput struct {
	Key   string  `json:"key" form:"key" binding:"required"`
	Ctrl  bool    `json:"ctrl" form:"ctrl"`
	Meta  bool    `json:"meta" form:"meta"`
	Draft *string `json:"draft" form:"draft"`
}

// StateResponse is what JSON clients get back after an intent.
type StateResponse struct {
	feed.Snapshot
	Composer feed.ComposerStatus `json:"composer"`
}

var navIntents = map[string]feed.Intent{
	"home":     feed.NavHome{},
	"compose":  feed.NavCompose{},
	"profile":  feed.NavProfile{},
	"settings": feed.NavSettings{},
}

// --- Handlers ---
type Env struct {
	Feed    *feed.Controller
	Actions feed.PostActions
}

func (e *Env) GetPage(c *gin.Context) {
	snap, err := e.Feed.Snapshot(c.Request.Context())
	if err != nil {
		log.Error.Printf("Error loading feed: %v", err)
		c.String(http.StatusInternalServerError, "Failed to load feed")
		return
	}
	c.HTML(http.StatusOK, "page", render.NewPage(snap))
}

func (e *Env) GetState(c *gin.Context) {
	e.respondState(c, http.StatusOK)
}

func (e *Env) Navigate(c *gin.Context) {
	intent, ok := navIntents[c.Param("view")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown view"})
		return
	}
	e.dispatch(c, intent)
}

func (e *Env) UpdateDraft(c *gin.Context) {
	var input DraftInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if err := e.Feed.Dispatch(c.Request.Context(), feed.Input{Text: input.Text}); err != nil {
		e.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e.Feed.Composer())
}

func (e *Env) CancelComposer(c *gin.Context) {
	e.dispatch(c, feed.Cancel{})
}

func (e *Env) SubmitPost(c *gin.Context) {
	var input SubmitInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	ctx := c.Request.Context()

	if input.Content != nil {
		if err := e.Feed.Dispatch(ctx, feed.Input{Text: *input.Content}); err != nil {
			e.fail(c, err)
			return
		}
	}
	before := e.Feed.PendingSubmit()
	if err := e.Feed.Dispatch(ctx, feed.Submit{}); err != nil {
		e.fail(c, err)
		return
	}
	e.afterSubmit(c, before)
}

func (e *Env) PressKey(c *gin.Context) {
	var input KeyInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	ctx := c.Request.Context()

	if input.Draft != nil && e.Feed.State().ComposerOpen() {
		if err := e.Feed.Dispatch(ctx, feed.Input{Text: *input.Draft}); err != nil {
			e.fail(c, err)
			return
		}
	}
	before := e.Feed.PendingSubmit()
	if err := e.Feed.Dispatch(ctx, feed.Key{Key: input.Key, Ctrl: input.Ctrl, Meta: input.Meta}); err != nil {
		e.fail(c, err)
		return
	}
	e.afterSubmit(c, before)
}

func (e *Env) LikePost(c *gin.Context) {
	e.postAction(c, e.Actions.OnLike)
}

func (e *Env) CommentPost(c *gin.Context) {
	e.postAction(c, e.Actions.OnComment)
}

func (e *Env) SharePost(c *gin.Context) {
	e.postAction(c, e.Actions.OnShare)
}

func (e *Env) postAction(c *gin.Context, action func(ctx context.Context, id int64) error) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}
	if err := action(c.Request.Context(), postID); err != nil {
		e.fail(c, err)
		return
	}
	e.respond(c)
}

func (e *Env) dispatch(c *gin.Context, intent feed.Intent) {
	if err := e.Feed.Dispatch(c.Request.Context(), intent); err != nil {
		e.fail(c, err)
		return
	}
	e.respond(c)
}

// afterSubmit answers 202 when a new submit was scheduled and 204 when the request was a no-op.
func (e *Env) afterSubmit(c *gin.Context, before *feed.Task[models.Post]) {
	if !wantsJSON(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	if after := e.Feed.PendingSubmit(); after != nil && after != before {
		c.JSON(http.StatusAccepted, gin.H{"status": "submitting", "composer": e.Feed.Composer()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (e *Env) respond(c *gin.Context) {
	if !wantsJSON(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	e.respondState(c, http.StatusOK)
}

func (e *Env) respondState(c *gin.Context, status int) {
	snap, err := e.Feed.Snapshot(c.Request.Context())
	if err != nil {
		e.fail(c, err)
		return
	}
	c.JSON(status, StateResponse{Snapshot: snap, Composer: e.Feed.Composer()})
}

func (e *Env) fail(c *gin.Context, err error) {
	log.Error.Printf("Error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json") ||
		strings.HasPrefix(c.ContentType(), "application/json")
}
