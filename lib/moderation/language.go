package moderation

import "unicode"

// language is a coarse language label used only to route optional detectors.
// A wrong classification degrades detector selection but never breaks detection.
type language string

// enum of detected languages
const (
	langRussian language = "ru"
	langEnglish language = "en"
	langMixed   language = "mixed"
	langUnknown language = "unknown"
)

// classifyLanguage labels the text by the ratio of cyrillic letters among all
// alphabetic characters. threshold is the minimal cyrillic ratio to call it russian.
func classifyLanguage(text string, threshold float64) language {
	cyrillic, latin := 0, 0
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		if r >= 0x0400 && r <= 0x04FF {
			cyrillic++
			continue
		}
		latin++
	}

	total := cyrillic + latin
	if total == 0 {
		return langUnknown
	}

	ratio := float64(cyrillic) / float64(total)
	switch {
	case ratio >= threshold:
		return langRussian
	case ratio < 0.1:
		return langEnglish
	default:
		return langMixed
	}
}
