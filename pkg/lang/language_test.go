package lang

import (
	"testing"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		input string
		want  Language
	}{
		{"en", English},
		{"EN", English},
		{" zh ", ChineseSimplified},
		{"ja", Japanese},
		{"ko", Korean},
		{"es", Spanish},
		{"de", German},
		{"", English},
		{"fr", Language("fr")},
	}

	for _, tt := range tests {
		if got := ParseLanguage(tt.input); got != tt.want {
			t.Errorf("ParseLanguage(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsValid(t *testing.T) {
	for _, l := range []Language{English, ChineseSimplified, Japanese, Korean, Spanish, German} {
		if !l.IsValid() {
			t.Errorf("%q should be valid", l)
		}
	}
	if Language("fr").IsValid() {
		t.Error("'fr' should not be valid")
	}
}

func TestDisplayName(t *testing.T) {
	if got := English.DisplayName(); got != "English" {
		t.Errorf("unexpected display name: %q", got)
	}
	if got := ChineseSimplified.DisplayName(); got == "" {
		t.Error("display name should not be empty")
	}
}
