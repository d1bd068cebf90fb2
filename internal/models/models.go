package models

import (
	"math/rand/v2"
	"strings"
	"unicode/utf8"
)

// MaxPostLength is the character budget of a post body.
const MaxPostLength = 280

// JustNow is the relative time label of a freshly created post.
const JustNow = "Just now"

// Palette is the fixed set of avatar colors handed out to new posts.
var Palette = []string{"#1DA1F2", "#17bf63", "#e0245e", "#794bc4", "#f45d22", "#ffad1f"}

// Post represents a single feed entry.
type Post struct {
	ID          int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Username    string `gorm:"not null" json:"username"`
	Verified    bool   `gorm:"not null;default:false" json:"verified"`
	Content     string `gorm:"not null" json:"content"`
	Time        string `gorm:"not null" json:"time"`
	Comments    int    `gorm:"not null;default:0" json:"comments"`
	Likes       int    `gorm:"not null;default:0" json:"likes"`
	Liked       bool   `gorm:"not null;default:false" json:"liked"`
	AvatarColor string `gorm:"not null" json:"avatarColor"`
	Rank        int64  `gorm:"column:feed_rank;not null;index" json:"-"` // Feed order for SQL stores, lowest first
}

// Initial is the letter shown inside the avatar.
func (p Post) Initial() string {
	r, _ := utf8.DecodeRuneInString(p.Username)
	if r == utf8.RuneError {
		return ""
	}
	return string(r)
}

// ToggleLike flips Liked and moves Likes by one in the same direction.
// Likes is not clamped at zero.
func ToggleLike(p Post) Post {
	p.Liked = !p.Liked
	if p.Liked {
		p.Likes++
	} else {
		p.Likes--
	}
	return p
}

// NewPost builds a post authored by the local operator.
func NewPost(id int64, author, body, color string) Post {
	return Post{
		ID:          id,
		Username:    author,
		Content:     strings.TrimSpace(body),
		Time:        JustNow,
		AvatarColor: color,
	}
}

// RandomColor picks a palette entry uniformly. A nil source uses the global one.
func RandomColor(r *rand.Rand) string {
	if r == nil {
		return Palette[rand.IntN(len(Palette))]
	}
	return Palette[r.IntN(len(Palette))]
}

// ValidBody reports whether body, once trimmed, is a postable text.
func ValidBody(body string) bool {
	trimmed := strings.TrimSpace(body)
	return trimmed != "" && utf8.RuneCountInString(trimmed) <= MaxPostLength
}

// Seed returns the posts the feed starts with, most recent first.
func Seed() []Post {
	return []Post{
		{
			ID:          1,
			Username:    "JohnDoe",
			Verified:    true,
			Content:     "Just joined SocialApp! Excited to connect with everyone here. #newuser #socialmedia",
			Time:        "1 hour ago",
			Comments:    2,
			Likes:       5,
			Liked:       true,
			AvatarColor: "#1DA1F2",
		},
		{
			ID:          2,
			Username:    "JaneSmith",
			Content:     "Beautiful day for a walk in the park! 🌳 The flowers are blooming and the birds are singing. #nature #outdoors #spring",
			Time:        "2 hours ago",
			Comments:    3,
			Likes:       12,
			Liked:       true,
			AvatarColor: "#17bf63",
		},
		{
			ID:          3,
			Username:    "TechGuru",
			Verified:    true,
			Content:     "Just released a new tutorial on JavaScript frameworks. Check it out on my profile! #javascript #webdev #coding",
			Time:        "1 day ago",
			Comments:    8,
			Likes:       24,
			AvatarColor: "#e0245e",
		},
	}
}
