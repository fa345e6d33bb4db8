package domain

// Names of the variables a caption template may reference.
const (
	VarFilename        = "filename"
	VarFilesize        = "filesize"
	VarCaption         = "caption"
	VarOriginalCaption = "original_caption"
	VarLanguage        = "language"
	VarYear            = "year"
	VarQuality         = "quality"
	VarSeason          = "season"
	VarEpisode         = "episode"
	VarExt             = "ext"
	VarMimeType        = "mime_type"
	VarTitle           = "title"
	VarArtist          = "artist"
	VarWish            = "wish"
	VarDuration        = "duration"
	VarWidth           = "width"
	VarHeight          = "height"
	VarResolution      = "resolution"
	VarCleanTitle      = "clean_title"
	VarQualityLabel    = "quality_label"
	VarTimestamp       = "timestamp"
	VarCaptionLanguage = "caption_language"
)

// Variable documents one entry of the vocabulary.
type Variable struct {
	Name        string
	Description string
}

// Vocabulary is the fixed, ordered set of template variables.
var Vocabulary = []Variable{
	{VarFilename, "original file name"},
	{VarFilesize, "human readable size, e.g. 1.5GB"},
	{VarCaption, "caption already attached to the message"},
	{VarOriginalCaption, "same as caption"},
	{VarLanguage, "languages found in the file name"},
	{VarYear, "release year found in the file name"},
	{VarQuality, "quality tag found in the file name, e.g. 1080p"},
	{VarSeason, "season number, two digits"},
	{VarEpisode, "episode number, two digits"},
	{VarExt, "file extension, upper case"},
	{VarMimeType, "MIME type of the file"},
	{VarTitle, "embedded title (audio)"},
	{VarArtist, "embedded artist (audio)"},
	{VarWish, "greeting for the time of day"},
	{VarDuration, "duration as HH:MM:SS"},
	{VarWidth, "frame width in pixels"},
	{VarHeight, "frame height in pixels"},
	{VarResolution, "WIDTHxHEIGHT"},
	{VarCleanTitle, "file name without any recognised tag"},
	{VarQualityLabel, "SD, HD, FHD or 4K from the frame size"},
	{VarTimestamp, "processing time, YYYY-MM-DD HH:MM:SS"},
	{VarCaptionLanguage, "ISO 639-1 language of the existing caption"},
}

// VariableSet is an immutable snapshot of variable values for one caption.
type VariableSet struct {
	values map[string]string
}

// NewVariableSet copies values so later changes to the map do not leak in.
func NewVariableSet(values map[string]string) VariableSet {
	cp := make(map[string]string, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return VariableSet{values: cp}
}

func (s VariableSet) Lookup(name string) (string, bool) {
	v, ok := s.values[name]
	return v, ok
}

func (s VariableSet) Get(name string) string {
	return s.values[name]
}

func (s VariableSet) Len() int {
	return len(s.values)
}

// IsVocabulary reports whether name belongs to the fixed vocabulary.
func IsVocabulary(name string) bool {
	for _, v := range Vocabulary {
		if v.Name == name {
			return true
		}
	}
	return false
}
