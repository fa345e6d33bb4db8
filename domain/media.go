// Package domain contains core concepts of the caption pipeline.
// This file defines the normalized media file handed over by the messaging platform.
// Values are immutable once built and live for a single caption request.
package domain

import (
	"time"

	"github.com/google/uuid"
)

type ChannelID int64

type MessageID int64

// RawFile is the single normalized view of whichever media attachment a message carries
// (document, video, audio or photo). Pointer fields are absent when the platform does
// not know them.
type RawFile struct {
	Filename        string
	Path            string // local copy for probing, empty when not downloaded
	SizeBytes       int64 `validate:"gte=0"`
	MimeType        string
	DurationSeconds *float64
	Width           *int
	Height          *int
	EmbeddedTitle   *string
	EmbeddedArtist  *string
}

// MediaEvent is one inbound media item. Items of an album share the same GroupID
// and are still processed one by one.
type MediaEvent struct {
	ID              uuid.UUID
	ChannelID       ChannelID `validate:"required"`
	MessageID       MessageID
	GroupID         string
	File            RawFile
	ExistingCaption string
	ReceivedAt      time.Time `validate:"required"`
}

func (e MediaEvent) InGroup() bool {
	return e.GroupID != ""
}
