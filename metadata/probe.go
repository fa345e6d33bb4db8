package metadata

//go:generate go run go.uber.org/mock/mockgen -source=probe.go -destination=../mocks/mock_probe.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"autocaption/domain"

	"github.com/floostack/transcoder"
	"github.com/floostack/transcoder/ffmpeg"
	"github.com/samber/lo"
)

// tagEntries asks ffprobe for what the transcoder metadata leaves out:
// per stream durations and the title/artist tags of streams and container.
const tagEntries = "format=duration:format_tags=title,artist,performer:" +
	"stream=index,duration:stream_tags=title,artist,performer"

// Prober inspects a file on disk and reports its container tracks.
type Prober interface {
	Probe(ctx context.Context, path string) (*domain.ProbeResult, error)
}

// FfprobeProber shells out to ffprobe.
type FfprobeProber struct {
	log        *slog.Logger
	ffprobeBin string
}

func NewFfprobeProber(log *slog.Logger, ffprobeBin string) *FfprobeProber {
	return &FfprobeProber{log: log, ffprobeBin: ffprobeBin}
}

type probeOutcome struct {
	metadata transcoder.Metadata
	tags     *ffprobeTags
	err      error
}

// ffprobeTags is the JSON printed by ffprobe for tagEntries.
type ffprobeTags struct {
	Format  ffprobeTagSection   `json:"format"`
	Streams []ffprobeTagSection `json:"streams"`
}

type ffprobeTagSection struct {
	Index    int               `json:"index"`
	Duration string            `json:"duration"`
	Tags     map[string]string `json:"tags"`
}

// Probe gives up when ctx is done. The transcoder call is not interruptible, so a late
// result is dropped; the tags call runs under ctx.
func (p *FfprobeProber) Probe(ctx context.Context, path string) (*domain.ProbeResult, error) {
	done := make(chan probeOutcome, 1)
	go func() {
		cfg := &ffmpeg.Config{FfprobeBinPath: p.ffprobeBin}
		md, err := ffmpeg.New(cfg).Input(path).GetMetadata()
		if err != nil {
			done <- probeOutcome{err: err}
			return
		}
		tags, err := p.readTags(ctx, path)
		if err != nil {
			// Tags only add title and artist, the technical facts are still good.
			p.log.Debug("Stream tags unavailable", "path", path, "error", err)
		}
		done <- probeOutcome{metadata: md, tags: tags}
	}()

	select {
	case <-ctx.Done():
		p.log.Debug("Probe abandoned", "path", path, "error", ctx.Err())
		return nil, ctx.Err()
	case out := <-done:
		if out.err != nil {
			return nil, fmt.Errorf("ffprobe %s: %w", path, out.err)
		}
		return applyTags(toProbeResult(out.metadata), out.tags), nil
	}
}

func (p *FfprobeProber) readTags(ctx context.Context, path string) (*ffprobeTags, error) {
	out, err := exec.CommandContext(ctx, p.ffprobeBin,
		"-v", "quiet",
		"-print_format", "json",
		"-show_entries", tagEntries,
		path,
	).Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe tags %s: %w", path, err)
	}
	return parseTags(out)
}

func parseTags(data []byte) (*ffprobeTags, error) {
	var tags ffprobeTags
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	return &tags, nil
}

// applyTags completes the tracks with per stream durations and tags.
// Audio tracks without their own tags take the container ones, as for ID3 tagged MP3s.
func applyTags(result *domain.ProbeResult, tags *ffprobeTags) *domain.ProbeResult {
	if result == nil || tags == nil {
		return result
	}
	if result.DurationSeconds == 0 {
		result.DurationSeconds = parseSeconds(tags.Format.Duration)
	}
	byIndex := lo.KeyBy(tags.Streams, func(s ffprobeTagSection) int {
		return s.Index
	})
	for i := range result.Tracks {
		track := &result.Tracks[i]
		if stream, ok := byIndex[i]; ok {
			track.DurationSeconds = parseSeconds(stream.Duration)
			track.Title = tagValue(stream.Tags, "title")
			track.Performer = tagValue(stream.Tags, "performer", "artist")
		}
		if track.Type == domain.TrackAudio {
			track.Title = lo.CoalesceOrEmpty(track.Title, tagValue(tags.Format.Tags, "title"))
			track.Performer = lo.CoalesceOrEmpty(track.Performer, tagValue(tags.Format.Tags, "performer", "artist"))
		}
	}
	return result
}

// tagValue looks keys up case-insensitively: Matroska and Vorbis write TITLE, ID3 title.
func tagValue(tags map[string]string, keys ...string) string {
	for _, key := range keys {
		for k, v := range tags {
			if strings.EqualFold(k, key) && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
	}
	return ""
}

func toProbeResult(md transcoder.Metadata) *domain.ProbeResult {
	if md == nil {
		return nil
	}
	result := &domain.ProbeResult{}
	if format := md.GetFormat(); format != nil {
		result.DurationSeconds = parseSeconds(format.GetDuration())
	}
	for _, s := range md.GetStreams() {
		if s == nil {
			// Keep positions aligned with ffprobe stream indexes.
			result.Tracks = append(result.Tracks, domain.Track{Type: domain.TrackOther})
			continue
		}
		result.Tracks = append(result.Tracks, domain.Track{
			Type:   trackType(s.GetCodecType()),
			Width:  s.GetWidth(),
			Height: s.GetHeight(),
		})
	}
	return result
}

func trackType(codecType string) domain.TrackType {
	switch codecType {
	case "video":
		return domain.TrackVideo
	case "audio":
		return domain.TrackAudio
	default:
		return domain.TrackOther
	}
}

func parseSeconds(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
