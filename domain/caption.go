package domain

// CaptionEdit is the outcome of the pipeline: the caption to apply to a message.
type CaptionEdit struct {
	EventID   string
	ChannelID ChannelID
	MessageID MessageID
	GroupID   string
	Path      string
	Caption   string
	// Fallback is true when the channel template failed and the default one was used.
	Fallback bool
}
