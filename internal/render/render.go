// Package render turns a feed snapshot into what the operator sees. Nothing
// here holds state: the same snapshot always yields the same page.
package render

import (
	"embed"
	"html/template"
	"io"
	"strings"

	"github.com/sujalbistaa/socialapp/internal/feed"
	"github.com/sujalbistaa/socialapp/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	likedIcon   = "fas fa-heart"
	unlikedIcon = "far fa-heart"
	likedColor  = "#e0245e"
)

type NavItem struct {
	View   feed.View
	Label  string
	Icon   string
	Action string
	Active bool
}

// LikeAffordance is the like control of one post. It is also sent alone when only the like changed.
type LikeAffordance struct {
	PostID int64  `json:"id"`
	Icon   string `json:"icon"`
	Color  string `json:"color"`
	Count  int    `json:"count"`
	Pulse  bool   `json:"pulse"`
}

type PostView struct {
	ID          int64
	Username    string
	Initial     string
	Verified    bool
	Time        string
	AvatarColor string
	Segments    []feed.Segment
	Comments    int
	Like        LikeAffordance
	Pulse       bool
}

// Placeholder replaces the post list on the empty feed and the profile view.
type Placeholder struct {
	Icon  string
	Title string
	Text  string
}

type Composer struct {
	Open       bool
	Draft      string
	Budget     feed.Budget
	CanSubmit  bool
	Submitting bool
	Label      string
}

type Page struct {
	View        feed.View
	Nav         []NavItem
	Composer    Composer
	Posts       []PostView
	Placeholder *Placeholder
	Notice      string
}

var (
	emptyFeed = Placeholder{Icon: "far fa-comment-dots", Title: "No posts yet", Text: "Be the first to share something!"}
	profile   = Placeholder{Icon: "fas fa-user-circle", Title: "Your Profile", Text: "Profile page is under construction"}
)

var navSpec = []NavItem{
	{View: feed.ViewHome, Label: "Home", Icon: "fas fa-home", Action: "/nav/home"},
	{View: feed.ViewComposing, Label: "New Post", Icon: "fas fa-plus-circle", Action: "/nav/compose"},
	{View: feed.ViewProfile, Label: "Profile", Icon: "fas fa-user", Action: "/nav/profile"},
}

// NewPage projects a snapshot into a page model.
func NewPage(snap feed.Snapshot) Page {
	st := snap.State
	page := Page{
		View:   st.View,
		Notice: st.Notice,
		Composer: Composer{
			Open:       st.ComposerOpen(),
			Draft:      st.Draft,
			Budget:     st.Budget(),
			CanSubmit:  st.CanSubmit(),
			Submitting: st.Submitting,
			Label:      st.SubmitLabel(),
		},
	}

	for _, n := range navSpec {
		n.Active = st.Active(n.View)
		page.Nav = append(page.Nav, n)
	}

	switch {
	case st.View == feed.ViewProfile:
		p := profile
		page.Placeholder = &p
	case len(snap.Posts) == 0:
		p := emptyFeed
		page.Placeholder = &p
	default:
		page.Posts = make([]PostView, 0, len(snap.Posts))
		for _, post := range snap.Posts {
			page.Posts = append(page.Posts, NewPostView(post, st))
		}
	}
	return page
}

func NewPostView(p models.Post, st feed.State) PostView {
	return PostView{
		ID:          p.ID,
		Username:    p.Username,
		Initial:     p.Initial(),
		Verified:    p.Verified,
		Time:        p.Time,
		AvatarColor: p.AvatarColor,
		Segments:    feed.FormatBody(p.Content),
		Comments:    p.Comments,
		Like:        Like(p, st.Pulsing(feed.LikePulse(p.ID))),
		Pulse:       st.Pulsing(feed.PostPulse(p.ID)),
	}
}

// Like projects the like control of p.
func Like(p models.Post, pulsing bool) LikeAffordance {
	a := LikeAffordance{PostID: p.ID, Icon: unlikedIcon, Count: p.Likes, Pulse: pulsing}
	if p.Liked {
		a.Icon = likedIcon
		a.Color = likedColor
	}
	return a
}

// Templates parses the page templates. Template names are "page" and "like".
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.tmpl"))
}

var pageTemplates = Templates()

// Execute writes the full page for snap.
func Execute(w io.Writer, snap feed.Snapshot) error {
	return pageTemplates.ExecuteTemplate(w, "page", NewPage(snap))
}

// LikeFragment renders just the like control, for in-place updates.
func LikeFragment(a LikeAffordance) (string, error) {
	var b strings.Builder
	if err := pageTemplates.ExecuteTemplate(&b, "like", a); err != nil {
		return "", err
	}
	return b.String(), nil
}
