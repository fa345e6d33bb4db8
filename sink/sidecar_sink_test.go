package sink_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"autocaption/domain"
	"autocaption/sink"

	"github.com/stretchr/testify/require"
)

func TestSidecarSink_Consume(t *testing.T) {
	req := require.New(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()
	s := sink.NewSidecarSink(logger)
	media := filepath.Join(t.TempDir(), "Movie.2020.mkv")

	t.Run("Writes the caption next to the media", func(t *testing.T) {
		req.NoError(s.Consume(ctx, domain.CaptionEdit{Path: media, Caption: "📁 Movie.2020.mkv"}))

		data, err := os.ReadFile(sink.SidecarPath(media))
		req.NoError(err)
		req.Equal("📁 Movie.2020.mkv", string(data))
	})

	t.Run("Overwrites a previous caption", func(t *testing.T) {
		req.NoError(s.Consume(ctx, domain.CaptionEdit{Path: media, Caption: "second"}))

		data, err := os.ReadFile(sink.SidecarPath(media))
		req.NoError(err)
		req.Equal("second", string(data))

		entries, err := os.ReadDir(filepath.Dir(media))
		req.NoError(err)
		req.Len(entries, 1, "no temporary file left behind")
	})

	t.Run("Ignores edits without a local file", func(t *testing.T) {
		req.NoError(s.Consume(ctx, domain.CaptionEdit{Caption: "x"}))
	})
}

func TestLogSink_Consume(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, sink.NewLogSink(logger).Consume(context.Background(), domain.CaptionEdit{Caption: "x"}))
}
