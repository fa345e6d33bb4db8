package mimetypes

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type MIME string

const (
	Unknown     MIME = "unknown"
	OctetStream MIME = "application/octet-stream"

	VideoMP4       MIME = "video/mp4"
	VideoMatroska  MIME = "video/x-matroska"
	VideoWebM      MIME = "video/webm"
	VideoQuickTime MIME = "video/quicktime"
	VideoAVI       MIME = "video/x-msvideo"

	AudioMPEG MIME = "audio/mpeg"
	AudioMP4  MIME = "audio/mp4"
	AudioFLAC MIME = "audio/flac"
	AudioOGG  MIME = "audio/ogg"
	AudioWAV  MIME = "audio/wav"

	ImagePNG  MIME = "image/png"
	ImageJPEG MIME = "image/jpeg"
	ImageWebP MIME = "image/webp"

	ApplicationPDF MIME = "application/pdf"
	ApplicationZIP MIME = "application/zip"
)

type Kind string

const (
	KindVideo    Kind = "video"
	KindAudio    Kind = "audio"
	KindPhoto    Kind = "photo"
	KindDocument Kind = "document"
)

// ToMIME strips parameters from a raw MIME string and lower-cases it.
// Anything that is not a type/subtype pair is Unknown.
func ToMIME(raw string) MIME {
	mt, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return Unknown
	}
	kind, sub, ok := strings.Cut(mt, "/")
	if !ok || kind == "" || sub == "" {
		return Unknown
	}
	return MIME(strings.ToLower(mt))
}

// KindOf maps a MIME type to the attachment kind a messaging platform would use.
func KindOf(m MIME) Kind {
	switch {
	case strings.HasPrefix(string(m), "video/"):
		return KindVideo
	case strings.HasPrefix(string(m), "audio/"):
		return KindAudio
	case strings.HasPrefix(string(m), "image/"):
		return KindPhoto
	default:
		return KindDocument
	}
}

// IsMedia is true for types whose frame size or duration can be probed.
func IsMedia(m MIME) bool {
	k := KindOf(m)
	return k == KindVideo || k == KindAudio
}

// Resolve returns the best MIME type known for a file: the one reported by the
// platform, else a sniff of the local copy, else a guess from the extension.
// A malformed reported type counts as missing.
func Resolve(reported, path, filename string) string {
	m := ToMIME(reported)
	if m != Unknown && m != OctetStream {
		return string(m)
	}
	if path != "" {
		if detected, err := mimetype.DetectFile(path); err == nil && !detected.Is(string(OctetStream)) {
			return string(ToMIME(detected.String()))
		}
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); byExt != "" {
		return string(ToMIME(byExt))
	}
	if m == OctetStream {
		return string(m)
	}
	return ""
}
