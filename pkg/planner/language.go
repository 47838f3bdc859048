package planner

import (
	"strings"
	"unicode"
)

// LanguageMode is the site-wide language decision every downstream component
// branches on structurally.
type LanguageMode string

const (
	ArabicOnly  LanguageMode = "ARABIC_ONLY"
	EnglishOnly LanguageMode = "ENGLISH_ONLY"
	Bilingual   LanguageMode = "BILINGUAL"
)

// Census thresholds. The share threshold decides dominance; the absolute
// minimum keeps a stray loanword from flipping a prompt to bilingual.
const (
	arabicShareThreshold = 0.70
	minBilingualLetters  = 8
)

var bilingualKeywords = []string{
	"bilingual",
	"both arabic and english",
	"both english and arabic",
	"arabic and english",
	"english and arabic",
	"two languages",
	"ثنائي اللغة",
	"باللغتين",
	"بالعربية والانجليزية",
	"بالعربية والإنجليزية",
}

var englishOnlyKeywords = []string{
	"english only",
	"only in english",
	"in english only",
	"بالانجليزية فقط",
	"بالإنجليزية فقط",
}

var arabicOnlyKeywords = []string{
	"arabic only",
	"only in arabic",
	"in arabic only",
	"بالعربية فقط",
	"باللغة العربية فقط",
}

// DetectLanguageMode decides the language mode from the prompt text alone.
// It is a pure function: the generative planner call also proposes a mode,
// but that proposal is always overwritten with this value, because a ternary
// classification that downstream code branches on structurally cannot be
// left to a probabilistic step.
//
// Explicit instructions win over the script census.
func DetectLanguageMode(prompt string) LanguageMode {
	lower := strings.ToLower(prompt)
	for _, kw := range bilingualKeywords {
		if strings.Contains(lower, kw) {
			return Bilingual
		}
	}
	for _, kw := range englishOnlyKeywords {
		if strings.Contains(lower, kw) {
			return EnglishOnly
		}
	}
	for _, kw := range arabicOnlyKeywords {
		if strings.Contains(lower, kw) {
			return ArabicOnly
		}
	}

	arabic, latin := scriptCensus(prompt)
	total := arabic + latin
	if total == 0 {
		return EnglishOnly
	}
	arabicShare := float64(arabic) / float64(total)
	if arabicShare > arabicShareThreshold && latin < arabic {
		return ArabicOnly
	}
	if arabic >= minBilingualLetters && latin >= minBilingualLetters {
		return Bilingual
	}
	if arabic > latin {
		return ArabicOnly
	}
	return EnglishOnly
}

// scriptCensus counts Arabic-script and Latin-script letters in the prompt.
// Digits, punctuation and other scripts are ignored.
func scriptCensus(s string) (arabic, latin int) {
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Arabic, r):
			arabic++
		case unicode.Is(unicode.Latin, r):
			latin++
		}
	}
	return arabic, latin
}

// IsRTL reports whether the mode renders right-to-left by default.
func (m LanguageMode) IsRTL() bool {
	return m == ArabicOnly
}

// IsBilingual reports whether translation files and the i18n runtime are
// part of the generated project.
func (m LanguageMode) IsBilingual() bool {
	return m == Bilingual
}
