package progression

import (
	"regexp"
	"strings"
)

// Point values and caps for every recordable action. Unrecognized reaction
// types and share platforms fall back to the lowest paid tier rather than
// being rejected.
const (
	ViewPoints    = 1
	MaxDailyViews = 5

	CommentBasePoints = 1
	CommentLongPoints = 3
	CommentLongWords  = 50
	CommentRatingBonus = 2

	FavoritePoints = 2

	FirstAvatarPoints = 5
)

var reactionPoints = map[string]int{
	"like":        2,
	"fire":        3,
	"wow":         4,
	"masterpiece": 5,
}

var sharePoints = map[string]int{
	"whatsapp": 3,
	"facebook": 4,
	"telegram": 5,
	"link":     2,
}

// ratingPattern matches textual ratings like "8/10", "4.5/5".
var ratingPattern = regexp.MustCompile(`\b\d+(\.\d+)?/(10|5)\b`)

// ReactionPoints returns the reward for a reaction type, defaulting to the
// "like" tier for unrecognized types.
func ReactionPoints(reactionType string) int {
	if p, ok := reactionPoints[strings.ToLower(reactionType)]; ok {
		return p
	}
	return reactionPoints["like"]
}

// SharePoints returns the reward for a share platform, defaulting to the
// "link" tier for unrecognized platforms.
func SharePoints(platform string) int {
	if p, ok := sharePoints[strings.ToLower(platform)]; ok {
		return p
	}
	return sharePoints["link"]
}

// DownloadPoints rewards downloads by quality class: 720p-class 15, 1080p and
// above 20, everything else 10.
func DownloadPoints(quality string) int {
	q := strings.ToLower(quality)
	switch {
	case strings.Contains(q, "1080") || strings.Contains(q, "2160") || strings.Contains(q, "4k"):
		return 20
	case strings.Contains(q, "720"):
		return 15
	default:
		return 10
	}
}

// CommentPoints rewards a comment: 1 point base, 3 for long comments, plus a
// bonus when the text carries a rating marker (star glyph or an N/10 or N/5
// pattern). Returns the reward and the word count.
func CommentPoints(text string) (int, int) {
	words := len(strings.Fields(text))
	pts := CommentBasePoints
	if words >= CommentLongWords {
		pts = CommentLongPoints
	}
	if HasRatingMarker(text) {
		pts += CommentRatingBonus
	}
	return pts, words
}

// HasRatingMarker reports whether the comment text contains a rating.
func HasRatingMarker(text string) bool {
	if strings.ContainsAny(text, "⭐★") {
		return true
	}
	return ratingPattern.MatchString(text)
}

// LoginBonus returns the daily-login reward for a streak length: 30 points
// from a 30-day streak, 7 from a week, 3 from 3 days, 1 otherwise.
func LoginBonus(streak int) int {
	switch {
	case streak >= 30:
		return 30
	case streak >= 7:
		return 7
	case streak >= 3:
		return 3
	default:
		return 1
	}
}
