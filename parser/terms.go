package parser

// qualityTerms are ordered by priority: the first term found in a name wins.
var qualityTerms = []term{
	{"2160p", []string{"2160p"}},
	{"4K", []string{"4k", "uhd"}},
	{"1440p", []string{"1440p"}},
	{"1080p", []string{"1080p", "1080i"}},
	{"720p", []string{"720p"}},
	{"576p", []string{"576p"}},
	{"480p", []string{"480p"}},
	{"360p", []string{"360p"}},
	{"BluRay", []string{"bluray", "blu-ray"}},
	{"BDRip", []string{"bdrip"}},
	{"BRRip", []string{"brrip"}},
	{"WEB-DL", []string{"web-dl", "webdl", "web.dl"}},
	{"WEBRip", []string{"webrip", "web-rip"}},
	{"HDRip", []string{"hdrip"}},
	{"DVDRip", []string{"dvdrip"}},
	{"HDTV", []string{"hdtv"}},
	{"DVDScr", []string{"dvdscr"}},
	{"HDCAM", []string{"hdcam"}},
	{"HDTS", []string{"hdts"}},
	{"CAM", []string{"camrip", "cam"}},
}

// languageTerms map names and common release codes to a display name.
// Short codes that are also frequent title words are left out.
var languageTerms = []term{
	{"English", []string{"english", "eng"}},
	{"Hindi", []string{"hindi", "hin"}},
	{"Tamil", []string{"tamil", "tam"}},
	{"Telugu", []string{"telugu", "tel"}},
	{"Malayalam", []string{"malayalam", "mal"}},
	{"Kannada", []string{"kannada", "kan"}},
	{"Bengali", []string{"bengali", "bangla"}},
	{"Marathi", []string{"marathi"}},
	{"Punjabi", []string{"punjabi"}},
	{"Gujarati", []string{"gujarati", "guj"}},
	{"Urdu", []string{"urdu"}},
	{"Korean", []string{"korean", "kor"}},
	{"Japanese", []string{"japanese", "jpn"}},
	{"Chinese", []string{"chinese", "mandarin", "chi"}},
	{"French", []string{"french", "fre", "fra"}},
	{"German", []string{"german", "ger", "deu"}},
	{"Spanish", []string{"spanish", "spa"}},
	{"Italian", []string{"italian", "ita"}},
	{"Russian", []string{"russian", "rus"}},
	{"Portuguese", []string{"portuguese"}},
	{"Arabic", []string{"arabic"}},
	{"Turkish", []string{"turkish"}},
	{"Thai", []string{"thai"}},
	{"Dutch", []string{"dutch"}},
}

// junkTerms never become tags but are removed from the clean title.
var junkTerms = []term{
	{"", []string{
		"x264", "x265", "h264", "h265", "h.264", "h.265", "hevc", "avc", "xvid", "divx",
		"10bit", "8bit", "hdr", "hdr10", "dv", "sdr",
		"aac", "aac2.0", "ac3", "eac3", "dts", "dd5.1", "ddp5.1", "5.1", "7.1", "2.0", "atmos", "truehd", "flac", "mp3", "opus",
		"remux", "proper", "repack", "extended", "unrated", "uncut", "internal", "limited",
		"esub", "esubs", "msub", "msubs", "subs", "multi", "dual audio", "dual-audio",
		"amzn", "nf", "dsnp", "hmax", "atvp", "hulu",
	}},
}
