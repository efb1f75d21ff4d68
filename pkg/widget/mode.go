package widget

import (
	"fmt"

	"github.com/laraabey/Loops-integrated-chatbot/pkg/local"
)

type Mode string

const (
	ModeAuto    = Mode("auto")
	ModeEnglish = Mode(local.Eng)
	ModeSinhala = Mode(local.Sin)
)

// Next cycles auto -> en -> si -> auto.
func (m Mode) Next() Mode {
	switch m {
	case ModeAuto:
		return ModeEnglish
	case ModeEnglish:
		return ModeSinhala
	default:
		return ModeAuto
	}
}

func (m Mode) forced() (local.Language, bool) {
	switch m {
	case ModeEnglish:
		return local.Eng, true
	case ModeSinhala:
		return local.Sin, true
	default:
		return "", false
	}
}

// Outgoing returns the text to send for input under mode m.
func (m Mode) Outgoing(input string) string {
	language, ok := m.forced()
	if !ok {
		return input
	}
	return fmt.Sprintf("[Respond in %s] %s", language.Name(), input)
}

// ReplyLanguage is the display tag for the reply to input. Auto mode scans
// the raw input; a forced mode wins regardless of the scan.
func (m Mode) ReplyLanguage(input string) local.Language {
	if language, ok := m.forced(); ok {
		return language
	}
	return local.Detect(input)
}

var (
	placeholderTexts = local.NewSet(
		"Type your message in English or Sinhala...",
		local.NewTrans(local.Eng, "Type your message in English..."),
		local.NewTrans(local.Sin, "සිංහලෙන් ඔබේ පණිවිඩය ටයිප් කරන්න..."),
	)
	labelTexts = local.NewSet(
		"🌐 Auto",
		local.NewTrans(local.Eng, "🇺🇸 English"),
		local.NewTrans(local.Sin, "🇱🇰 Sinhala"),
	)
	indicatorTexts = local.NewSet(
		"🌐 Auto-detecting language",
		local.NewTrans(local.Eng, "🇺🇸 Responding in English"),
		local.NewTrans(local.Sin, "🇱🇰 Responding in Sinhala"),
	)
)

func (m Mode) Placeholder() string {
	return placeholderTexts.Text(local.Language(m))
}

func (m Mode) Label() string {
	return labelTexts.Text(local.Language(m))
}

func (m Mode) Indicator() string {
	return indicatorTexts.Text(local.Language(m))
}
