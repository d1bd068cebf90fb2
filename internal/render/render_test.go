package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujalbistaa/socialapp/internal/feed"
	"github.com/sujalbistaa/socialapp/internal/models"
)

func seedSnapshot(st feed.State) feed.Snapshot {
	return feed.Snapshot{State: st, Posts: models.Seed()}
}

func TestNewPageHomeListsPostsInOrder(t *testing.T) {
	page := NewPage(seedSnapshot(feed.Initial()))

	require.Len(t, page.Posts, 3)
	assert.Nil(t, page.Placeholder)
	assert.Equal(t, "JohnDoe", page.Posts[0].Username)
	assert.Equal(t, "J", page.Posts[0].Initial)
	assert.False(t, page.Composer.Open)

	active := 0
	for _, n := range page.Nav {
		if n.Active {
			active++
			assert.Equal(t, feed.ViewHome, n.View)
		}
	}
	assert.Equal(t, 1, active)
}

func TestNewPageEmptyFeed(t *testing.T) {
	page := NewPage(feed.Snapshot{State: feed.Initial()})

	require.NotNil(t, page.Placeholder)
	assert.Equal(t, "No posts yet", page.Placeholder.Title)
	assert.Empty(t, page.Posts)
}

func TestNewPageProfilePlaceholder(t *testing.T) {
	page := NewPage(seedSnapshot(feed.State{View: feed.ViewProfile}))

	require.NotNil(t, page.Placeholder)
	assert.Equal(t, "Your Profile", page.Placeholder.Title)
	assert.Empty(t, page.Posts)
}

func TestNewPageComposerShowsBudget(t *testing.T) {
	st := feed.State{View: feed.ViewComposing, Draft: strings.Repeat("a", 261)}
	page := NewPage(seedSnapshot(st))

	assert.True(t, page.Composer.Open)
	assert.Equal(t, 19, page.Composer.Budget.Remaining)
	assert.Equal(t, feed.LevelWarning, page.Composer.Budget.Level)
	assert.True(t, page.Composer.CanSubmit)
	assert.Len(t, page.Posts, 3)
}

func TestLikeAffordance(t *testing.T) {
	liked := Like(models.Post{ID: 1, Liked: true, Likes: 5}, true)
	assert.Equal(t, LikeAffordance{PostID: 1, Icon: "fas fa-heart", Color: "#e0245e", Count: 5, Pulse: true}, liked)

	plain := Like(models.Post{ID: 2, Likes: 0}, false)
	assert.Equal(t, LikeAffordance{PostID: 2, Icon: "far fa-heart", Count: 0}, plain)
}

func TestExecuteIsIdempotent(t *testing.T) {
	snap := seedSnapshot(feed.Initial())

	var a, b bytes.Buffer
	require.NoError(t, Execute(&a, snap))
	require.NoError(t, Execute(&b, snap))
	assert.Equal(t, a.String(), b.String())
}

func TestExecuteMarksTagsAndEscapes(t *testing.T) {
	snap := feed.Snapshot{
		State: feed.Initial(),
		Posts: []models.Post{{ID: 9, Username: "You", Content: "hello #world @friend <b>", AvatarColor: "#794bc4"}},
	}

	var out bytes.Buffer
	require.NoError(t, Execute(&out, snap))
	html := out.String()

	assert.Contains(t, html, `hello <span class="hashtag">#world</span> <span class="mention">@friend</span> &lt;b&gt;`)
	assert.Contains(t, html, `data-id="9"`)
	assert.Contains(t, html, `class="nav-btn active"`)
	assert.Equal(t, 1, strings.Count(html, "nav-btn active"))
}

func TestExecuteComposerStates(t *testing.T) {
	var out bytes.Buffer
	st := feed.State{View: feed.ViewComposing, Draft: "hi", Submitting: true}
	require.NoError(t, Execute(&out, seedSnapshot(st)))

	html := out.String()
	assert.Contains(t, html, `id="post-form"`)
	assert.Contains(t, html, "Posting...")
	assert.Contains(t, html, `class="spinner"`)
}

func TestLikeFragment(t *testing.T) {
	frag, err := LikeFragment(Like(models.Post{ID: 3, Liked: true, Likes: 25}, true))
	require.NoError(t, err)

	assert.Contains(t, frag, `fas fa-heart pulse`)
	assert.Contains(t, frag, `<span class="like-count">25</span>`)
}
