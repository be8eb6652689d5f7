package lang

import "strings"

// Language represents supported output languages for generated messages
type Language string

const (
	English           Language = "en"
	ChineseSimplified Language = "zh"
	Japanese          Language = "ja"
	Korean            Language = "ko"
	Spanish           Language = "es"
	German            Language = "de"
)

// String returns the string representation of the language
func (l Language) String() string {
	return string(l)
}

// IsValid checks if the language is valid
func (l Language) IsValid() bool {
	switch l {
	case English, ChineseSimplified, Japanese, Korean, Spanish, German:
		return true
	default:
		return false
	}
}

// DisplayName returns the display name of the language
func (l Language) DisplayName() string {
	switch l {
	case English:
		return "English"
	case ChineseSimplified:
		return "中文（简体）"
	case Japanese:
		return "日本語"
	case Korean:
		return "한국어"
	case Spanish:
		return "Español"
	case German:
		return "Deutsch"
	default:
		return string(l)
	}
}

// DefaultLanguage returns the default language
func DefaultLanguage() Language {
	return English
}

// ParseLanguage normalizes a string to a Language. The result may be
// invalid; callers decide how to treat unknown codes.
func ParseLanguage(s string) Language {
	if s == "" {
		return DefaultLanguage()
	}
	return Language(strings.ToLower(strings.TrimSpace(s)))
}
