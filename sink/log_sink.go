package sink

import (
	"context"
	"log/slog"

	"autocaption/domain"
)

// LogSink reports every caption edit in the logs.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) LogSink {
	return LogSink{log: log}
}

func (l LogSink) Consume(_ context.Context, edit domain.CaptionEdit) error {
	l.log.Info("Caption ready",
		"channel", edit.ChannelID,
		"message", edit.MessageID,
		"group", edit.GroupID,
		"fallback", edit.Fallback,
		"length", len([]rune(edit.Caption)))
	return nil
}
