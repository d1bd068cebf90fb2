package feed

import (
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sujalbistaa/socialapp/internal/models"
)

// View is the nav-selectable screen.
type View string

const (
	ViewHome      View = "home"
	ViewComposing View = "composing"
	ViewProfile   View = "profile"
)

// Views lists the nav entries in display order.
var Views = []View{ViewHome, ViewComposing, ViewProfile}

// Level is the styling of the character counter.
type Level string

const (
	LevelNeutral Level = "neutral"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// warnBelow is where the counter turns to warning styling.
const warnBelow = 20

// Budget is what is left of the character allowance for a draft.
type Budget struct {
	Remaining int   `json:"remaining"`
	Level     Level `json:"level"`
}

// BudgetFor counts characters of the raw draft, surrounding whitespace included.
func BudgetFor(draft string) Budget {
	remaining := models.MaxPostLength - utf8.RuneCountInString(draft)
	b := Budget{Remaining: remaining, Level: LevelNeutral}
	switch {
	case remaining < 0:
		b.Level = LevelError
	case remaining < warnBelow:
		b.Level = LevelWarning
	}
	return b
}

// State is everything the surface shows apart from the posts themselves.
type State struct {
	View       View     `json:"view"`
	Draft      string   `json:"draft"`
	Submitting bool     `json:"submitting"`
	Notice     string   `json:"notice,omitempty"`
	Pulses     []string `json:"pulses,omitempty"`
}

// Initial is the state at process start.
func Initial() State {
	return State{View: ViewHome}
}

func (s State) Budget() Budget { return BudgetFor(s.Draft) }

// CanSubmit reports whether the submit control is enabled.
func (s State) CanSubmit() bool {
	return !s.Submitting && strings.TrimSpace(s.Draft) != ""
}

// ComposerOpen reports whether the composition surface is shown.
func (s State) ComposerOpen() bool { return s.View == ViewComposing }

// SubmitLabel is the text of the submit control.
func (s State) SubmitLabel() string {
	if s.Submitting {
		return "Posting..."
	}
	return "Post"
}

// Active reports whether v is the highlighted nav entry. Exactly one view is active.
func (s State) Active(v View) bool { return s.View == v }

// Pulsing reports whether the transient highlight with key is showing.
func (s State) Pulsing(key string) bool { return slices.Contains(s.Pulses, key) }

func (s State) withPulse(key string) State {
	if s.Pulsing(key) {
		return s
	}
	s.Pulses = append(slices.Clone(s.Pulses), key)
	return s
}

func (s State) withoutPulse(key string) State {
	i := slices.Index(s.Pulses, key)
	if i < 0 {
		return s
	}
	s.Pulses = slices.Delete(slices.Clone(s.Pulses), i, i+1)
	return s
}

// PostPulse keys the highlight on a whole post item.
func PostPulse(id int64) string { return "post:" + strconv.FormatInt(id, 10) }

// LikePulse keys the highlight on a post's like icon.
func LikePulse(id int64) string { return "like:" + strconv.FormatInt(id, 10) }
