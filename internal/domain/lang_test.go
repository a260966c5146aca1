package domain

import (
	"errors"
	"testing"
)

func TestParseLang(t *testing.T) {
	tests := []struct {
		in      string
		want    Lang
		wantErr bool
	}{
		{"", "", false},
		{"es", LangES, false},
		{" PT ", LangPT, false},
		{"ro", LangRO, false},
		{"ar", LangAR, false},
		{"en", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLang(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLang(%q) err=%v, wantErr=%v", tt.in, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidLanguage) {
			t.Errorf("expected ErrInvalidLanguage, got %v", err)
		}
		if got != tt.want {
			t.Errorf("ParseLang(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLang_Names(t *testing.T) {
	if LangRO.Name() != "Română" || LangAR.EnglishName() != "Arabic" {
		t.Error("unexpected language names")
	}
	if !LangAR.IsRTL() || LangES.IsRTL() {
		t.Error("only Arabic is right-to-left")
	}
}
