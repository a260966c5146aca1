package textnorm

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"accents and punctuation", "¿Dónde REPOSTO en España?", "donde reposto en espana"},
		{"romanian comma below", "Câte ore de conducere șofer?", "cate ore de conducere sofer"},
		{"portuguese cedilla", "Condução, não!", "conducao nao"},
		{"collapse whitespace", "  horas\t\tde   conducción \n", "horas de conduccion"},
		{"digits kept", "Módulo 03.09", "modulo 03 09"},
		{"arabic letters kept", "محطة الوقود؟", "محطة الوقود"},
		{"only symbols", "?!¿¡...", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"¿Dónde REPOSTO en España?", "Întrebare: câte ore?", "  a  b  ", "CMR / DNI / CAP"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("¿Y el Q8 en la A-7?")
	want := []string{"el", "q8", "en", "la"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
	if got := Tokenize("?"); len(got) != 0 {
		t.Errorf("expected no tokens, got %v", got)
	}
}

func TestHasWord(t *testing.T) {
	tests := []struct {
		text, term string
		want       bool
	}{
		{"donde reposto gasoil", "gasoil", true},
		{"donde reposto gasoil", "gas", false},
		{"cruzar a reino unido hoy", "reino unido", true},
		{"tacografos", "tacografo", false},
		{"", "x", false},
		{"x", "", false},
	}
	for _, tt := range tests {
		if got := HasWord(tt.text, tt.term); got != tt.want {
			t.Errorf("HasWord(%q, %q) = %v, want %v", tt.text, tt.term, got, tt.want)
		}
	}
}

func TestCountHits(t *testing.T) {
	if n := CountHits("donde repostar gasoil cerca", []string{"repostar", "gasoil", "diesel"}); n != 2 {
		t.Errorf("expected 2 hits, got %d", n)
	}
}
