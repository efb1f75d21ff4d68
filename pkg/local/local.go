package local

import "regexp"

type Language string

const (
	Eng = Language("en")
	Sin = Language("si")
)

// sinhalaRange covers the Sinhala Unicode block U+0D80..U+0DFF.
var sinhalaRange = regexp.MustCompile(`[\x{0D80}-\x{0DFF}]`)

// Detect tags text as Sinhala if it holds any code point from the Sinhala
// block, English otherwise.
func Detect(text string) Language {
	if sinhalaRange.MatchString(text) {
		return Sin
	}
	return Eng
}

func (l Language) Name() string {
	switch l {
	case Sin:
		return "Sinhala"
	default:
		return "English"
	}
}

func (l Language) Flag() string {
	switch l {
	case Sin:
		return "🇱🇰"
	default:
		return "🇺🇸"
	}
}

type Localization struct {
	language Language
	text     string
}

type TextSet struct {
	Default          string
	translationsText map[Language]string
}

func NewTrans(language Language, text string) Localization {
	return Localization{
		language: language,
		text:     text,
	}
}

func NewSet(defaultText string, localizations ...Localization) TextSet {
	set := TextSet{
		Default:          defaultText,
		translationsText: make(map[Language]string),
	}
	for _, localization := range localizations {
		set.translationsText[localization.language] = localization.text
	}
	return set
}

func (l TextSet) Text(language Language) string {
	if text, ok := l.translationsText[language]; ok {
		return text
	}
	return l.Default
}
