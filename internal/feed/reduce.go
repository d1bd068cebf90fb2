package feed

import (
	"strings"

	"github.com/sujalbistaa/socialapp/internal/models"
)

// Reduce applies intent to s. It never touches the post collection; post
// changes come back as effects.
func Reduce(s State, intent Intent) (State, []Effect) {
	switch intent.(type) {
	case PulseDone, SubmitDone, SubmitFailed:
	default:
		s.Notice = ""
	}

	switch in := intent.(type) {
	case NavHome:
		if s.View == ViewComposing {
			return cancel(s)
		}
		s.View = ViewHome
		return s, nil

	case NavCompose:
		if s.Submitting {
			return s, nil
		}
		s.View = ViewComposing
		s.Draft = ""
		return s, []Effect{FocusComposer{}}

	case NavProfile:
		if s.View == ViewComposing {
			return s, nil
		}
		s.View = ViewProfile
		return s, nil

	case NavSettings:
		return notify(s, NoticeSettings)

	case Input:
		if s.View != ViewComposing || s.Submitting {
			return s, nil
		}
		s.Draft = in.Text
		return s, nil

	case Cancel:
		return cancel(s)

	case Submit:
		return submit(s)

	case SubmitDone:
		s.Submitting = false
		s.Draft = ""
		s.View = ViewHome
		return s, []Effect{Pulse{Key: PostPulse(in.Post.ID)}}

	case SubmitFailed:
		s.Submitting = false
		return notify(s, NoticeSubmitFail)

	case Like:
		return s, []Effect{ToggleLike{ID: in.ID}}

	case Comment:
		return notify(s, NoticeComment)

	case Share:
		return notify(s, NoticeShare)

	case Key:
		switch {
		case in.Key == "Escape":
			return cancel(s)
		case in.Key == "Enter" && (in.Ctrl || in.Meta) && s.View == ViewComposing:
			return submit(s)
		}
		return s, nil

	case PulseDone:
		return s.withoutPulse(in.Key), nil
	}
	return s, nil
}

func cancel(s State) (State, []Effect) {
	// A scheduled submit always completes, so the composer stays put until it does.
	if s.Submitting {
		return s, nil
	}
	s.Draft = ""
	if s.View == ViewComposing {
		s.View = ViewHome
	}
	return s, nil
}

func submit(s State) (State, []Effect) {
	if s.View != ViewComposing || s.Submitting || !models.ValidBody(s.Draft) {
		return s, nil
	}
	s.Submitting = true
	return s, []Effect{StartSubmit{Body: strings.TrimSpace(s.Draft)}}
}

func notify(s State, msg string) (State, []Effect) {
	s.Notice = msg
	return s, []Effect{Notify{Message: msg}}
}
