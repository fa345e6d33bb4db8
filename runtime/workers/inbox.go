package workers

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"autocaption/sink"
)

const MetaSuffix = ".meta.json"

// Files the inbox ignores: our own output, metadata companions and partial uploads.
var ignoredSuffixes = []string{sink.SidecarSuffix, MetaSuffix, ".part", ".tmp", ".crdownload"}

// inboxMeta is the optional <file>.meta.json dropped next to a media file by the
// component that downloaded it from the messaging platform.
type inboxMeta struct {
	MessageID int64    `json:"message_id"`
	Caption   string   `json:"caption"`
	FileName  string   `json:"file_name"`
	MimeType  string   `json:"mime_type"`
	Size      *int64   `json:"size"`
	Duration  *float64 `json:"duration"`
	Width     *int     `json:"width"`
	Height    *int     `json:"height"`
	Title     *string  `json:"title"`
	Performer *string  `json:"performer"`
}

// loadMeta returns an empty meta when the companion file does not exist.
func loadMeta(mediaPath string) (inboxMeta, error) {
	var meta inboxMeta
	data, err := os.ReadFile(mediaPath + MetaSuffix)
	if errors.Is(err, os.ErrNotExist) {
		return meta, nil
	}
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("invalid %s: %w", mediaPath+MetaSuffix, err)
	}
	return meta, nil
}

func ignoredName(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, suffix := range ignoredSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// parseChannelDir reads the channel id a first level inbox directory is named after.
func parseChannelDir(dir string) (int64, bool) {
	id, err := strconv.ParseInt(filepath.Base(dir), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
