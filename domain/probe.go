package domain

type TrackType string

const (
	TrackGeneral TrackType = "General"
	TrackVideo   TrackType = "Video"
	TrackAudio   TrackType = "Audio"
	TrackOther   TrackType = "Other"
)

// Track is one stream reported by the container probe.
type Track struct {
	Type            TrackType
	Width           int
	Height          int
	DurationSeconds float64
	Title           string
	Performer       string
}

// ProbeResult is what an external container probe returned for a file.
// A nil *ProbeResult means the probe was unavailable.
type ProbeResult struct {
	DurationSeconds float64
	Tracks          []Track
}

// FirstTrack returns the first track of the given type, if any.
func (p *ProbeResult) FirstTrack(trackType TrackType) (Track, bool) {
	if p == nil {
		return Track{}, false
	}
	for _, t := range p.Tracks {
		if t.Type == trackType {
			return t, true
		}
	}
	return Track{}, false
}
