package event

// Template names a user-facing message. Wording belongs to the transport.
type Template string

const (
	Welcome            Template = "WELCOME"
	Searching          Template = "SEARCHING"
	StillSearching     Template = "STILL_SEARCHING"
	Connected          Template = "CONNECTED"
	AlreadyPaired      Template = "ALREADY_PAIRED"
	LikeRecorded       Template = "LIKE_RECORDED"
	Declined           Template = "DECLINED"
	PartnerDeclined    Template = "PARTNER_DECLINED"
	MutualMatch        Template = "MUTUAL_MATCH"
	Goodbye            Template = "GOODBYE"
	PartnerLeft        Template = "PARTNER_LEFT"
	WaitExpired        Template = "WAIT_EXPIRED"
	MissingIdentity    Template = "MISSING_IDENTITY"
	NoConversation     Template = "NO_CONVERSATION"
	NotInConversation  Template = "NOT_IN_CONVERSATION"
	PartnerUnreachable Template = "PARTNER_UNREACHABLE"
)
