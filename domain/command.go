package domain

import (
	"strings"
	"time"
	"unicode"
)

type CommandName string

const (
	CommandStart       CommandName = "/start"
	CommandSetCaption  CommandName = "/setcaption"
	CommandVariables   CommandName = "/variables"
	CommandShowCaption CommandName = "/showcaption"
	CommandDelCaption  CommandName = "/delcaption"
)

// ChannelCommand is an administrative command sent to the bot for a channel.
type ChannelCommand struct {
	ChannelID ChannelID   `validate:"required"`
	Name      CommandName `validate:"required"`
	Args      string
	SentAt    time.Time
}

// ParseCommand splits "/name@bot rest of text" into a command.
// It returns false when text is not a command.
func ParseCommand(channelID ChannelID, text string, at time.Time) (ChannelCommand, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return ChannelCommand{}, false
	}
	head, args := text, ""
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		head, args = text[:i], text[i:]
	}
	if i := strings.IndexByte(head, '@'); i >= 0 {
		head = head[:i]
	}
	if len(head) < 2 {
		return ChannelCommand{}, false
	}
	return ChannelCommand{
		ChannelID: channelID,
		Name:      CommandName(strings.ToLower(head)),
		Args:      strings.TrimSpace(args),
		SentAt:    at,
	}, true
}
