package feed

import "github.com/sujalbistaa/socialapp/internal/models"

// Intent is an operator action, or a continuation scheduled by one.
type Intent interface {
	Name() string
}

type (
	NavHome     struct{}
	NavCompose  struct{}
	NavProfile  struct{}
	NavSettings struct{}

	Input  struct{ Text string }
	Cancel struct{}
	Submit struct{}

	// SubmitDone lands when the delayed submit has stored Post.
	SubmitDone struct{ Post models.Post }
	// SubmitFailed lands when the store refused the delayed submit.
	SubmitFailed struct{ Err error }

	Like    struct{ ID int64 }
	Comment struct{ ID int64 }
	Share   struct{ ID int64 }

	// Key is a keyboard shortcut. Ctrl and Meta both count as the platform modifier.
	Key struct {
		Key  string
		Ctrl bool
		Meta bool
	}

	PulseDone struct{ Key string }
)

func (NavHome) Name() string      { return "nav_home" }
func (NavCompose) Name() string   { return "nav_compose" }
func (NavProfile) Name() string   { return "nav_profile" }
func (NavSettings) Name() string  { return "nav_settings" }
func (Input) Name() string        { return "input" }
func (Cancel) Name() string       { return "cancel" }
func (Submit) Name() string       { return "submit" }
func (SubmitDone) Name() string   { return "submit_done" }
func (SubmitFailed) Name() string { return "submit_failed" }
func (Like) Name() string         { return "like" }
func (Comment) Name() string      { return "comment" }
func (Share) Name() string        { return "share" }
func (Key) Name() string          { return "key" }
func (PulseDone) Name() string    { return "pulse_done" }

// Effect is work the controller carries out after a reduction.
type Effect interface {
	effect()
}

type (
	Notify        struct{ Message string }
	StartSubmit   struct{ Body string }
	ToggleLike    struct{ ID int64 }
	Pulse         struct{ Key string }
	FocusComposer struct{}
)

func (Notify) effect()        {}
func (StartSubmit) effect()   {}
func (ToggleLike) effect()    {}
func (Pulse) effect()         {}
func (FocusComposer) effect() {}

const (
	NoticeSettings   = "Settings will be available in the next update!"
	NoticeComment    = "Comment feature coming soon!"
	NoticeShare      = "Share options will be available soon!"
	NoticeSubmitFail = "Your post could not be saved. Please try again."
)
