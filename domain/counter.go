package domain

import "sync/atomic"

// CaptionCounter is shared by the inbox scanner, the caption workers and the health report.
type CaptionCounter struct {
	FilesQueued  uint64
	Captioned    uint64
	Fallbacks    uint64
	Skipped      uint64
	SinkFailures uint64
}

func NewCaptionCounter() *CaptionCounter {
	return &CaptionCounter{}
}

func (c *CaptionCounter) IncrFilesQueued() {
	atomic.AddUint64(&c.FilesQueued, 1)
}

func (c *CaptionCounter) IncrCaptioned() {
	atomic.AddUint64(&c.Captioned, 1)
}

func (c *CaptionCounter) IncrFallbacks() {
	atomic.AddUint64(&c.Fallbacks, 1)
}

func (c *CaptionCounter) IncrSkipped() {
	atomic.AddUint64(&c.Skipped, 1)
}

func (c *CaptionCounter) IncrSinkFailures() {
	atomic.AddUint64(&c.SinkFailures, 1)
}

// Snapshot reads every counter atomically, one at a time.
func (c *CaptionCounter) Snapshot() CaptionCounter {
	return CaptionCounter{
		FilesQueued:  atomic.LoadUint64(&c.FilesQueued),
		Captioned:    atomic.LoadUint64(&c.Captioned),
		Fallbacks:    atomic.LoadUint64(&c.Fallbacks),
		Skipped:      atomic.LoadUint64(&c.Skipped),
		SinkFailures: atomic.LoadUint64(&c.SinkFailures),
	}
}
