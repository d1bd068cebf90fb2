package feed

import "regexp"

// SegmentKind says how a piece of post body is styled.
type SegmentKind string

const (
	SegmentText    SegmentKind = "text"
	SegmentHashtag SegmentKind = "hashtag"
	SegmentMention SegmentKind = "mention"
)

type Segment struct {
	Kind SegmentKind `json:"kind"`
	Text string      `json:"text"`
}

var tokenRe = regexp.MustCompile(`[#@]\w+`)

// FormatBody splits body into plain text, #hashtags and @mentions. Joining
// the segment texts gives back body unchanged.
func FormatBody(body string) []Segment {
	var out []Segment
	last := 0
	for _, loc := range tokenRe.FindAllStringIndex(body, -1) {
		if loc[0] > last {
			out = append(out, Segment{Kind: SegmentText, Text: body[last:loc[0]]})
		}
		kind := SegmentHashtag
		if body[loc[0]] == '@' {
			kind = SegmentMention
		}
		out = append(out, Segment{Kind: kind, Text: body[loc[0]:loc[1]]})
		last = loc[1]
	}
	if last < len(body) {
		out = append(out, Segment{Kind: SegmentText, Text: body[last:]})
	}
	return out
}
