package storage

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Describe summarises a raw badger entry for the debug inspector.
func Describe(key string, val []byte) (kind string, detail string) {
	switch {
	case strings.HasPrefix(key, templatePrefix):
		channelID, err := channelFromKey(key)
		if err != nil {
			return "TEMPLATE", "Error: malformed key"
		}
		tpl, err := decodeTemplate(channelID, val)
		if err != nil {
			return "TEMPLATE", "Error: unmarshal failed"
		}
		return "TEMPLATE", fmt.Sprintf("%q (updated %s)", tpl.Template, tpl.UpdatedAt.Format("2006-01-02 15:04"))
	case strings.HasPrefix(key, pendingPrefix), strings.HasPrefix(key, processingPrefix):
		task, err := unmarshalTask(val)
		if err != nil {
			return "TASK", "Error: unmarshal failed"
		}
		state := "PENDING"
		if strings.HasPrefix(key, processingPrefix) {
			state = "PROCESSING"
		}
		return "TASK", fmt.Sprintf("%s %s channel=%d mime=%s", state, task.Path, task.ChannelID, task.MimeType)
	case strings.HasPrefix(key, seenPrefix):
		var ts timestamppb.Timestamp
		if err := proto.Unmarshal(val, &ts); err != nil || ts.GetSeconds() == 0 {
			return "SEEN", "queued"
		}
		return "SEEN", "captioned at " + ts.AsTime().Format("2006-01-02 15:04:05")
	default:
		return "UNKNOWN", ""
	}
}
