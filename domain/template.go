package domain

import "time"

// DefaultTemplate is used for channels that never set their own template.
const DefaultTemplate = `{% if caption %}{{caption}}

{% endif %}📁 {{filename}}
{% if year %}📅 Year: {{year}}
{% endif %}{% if quality %}🎞 Quality: {{quality}}
{% endif %}{% if language %}🗣 Language: {{language}}
{% endif %}💾 Size: {{filesize}}
📺 {{quality_label}} · {{resolution}}
⏱ {{duration}}`

// ChannelTemplate is the caption layout configured for a channel.
type ChannelTemplate struct {
	ChannelID ChannelID
	Template  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
