package domain

// Choice is a participant's answer in the reveal handshake.
type Choice int

const (
	Like Choice = iota + 1
	Dislike
)

func (c Choice) String() string {
	switch c {
	case Like:
		return "like"
	case Dislike:
		return "dislike"
	default:
		return "unknown"
	}
}

// Reserved reply-keyboard phrases. Text equal to one of them is a signal, never chat content.
const (
	LikePhrase    = "👍 Yoqtiraman"
	DislikePhrase = "👎 Yoqtirmayman"
)

// ChoiceFromContent reports whether content is one of the reserved phrases.
func ChoiceFromContent(c Content) (Choice, bool) {
	if c.Kind != KindText {
		return 0, false
	}
	switch c.Payload {
	case LikePhrase:
		return Like, true
	case DislikePhrase:
		return Dislike, true
	default:
		return 0, false
	}
}
