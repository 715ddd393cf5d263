package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		r, g, b uint8
	}{
		{"royal_blue", "#4169E1", 0x41, 0x69, 0xE1},
		{"lowercase", "#ffb56c", 0xFF, 0xB5, 0x6C},
		{"malformed_falls_back_to_white", "blue", 0xFF, 0xFF, 0xFF},
		{"empty_falls_back_to_white", "", 0xFF, 0xFF, 0xFF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := ParseColor(tt.hex).RGB255()
			if r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("ParseColor(%q) = %02X%02X%02X, want %02X%02X%02X", tt.hex, r, g, b, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestFade(t *testing.T) {
	if got := Fade(White, Black, 1); got != White {
		t.Errorf("full opacity changed the color: %v", got)
	}
	if got := Fade(White, Black, 0); got != Black {
		t.Errorf("zero opacity should give the background: %v", got)
	}
	r, _, _ := Fade(White, Black, 0.5).RGB255()
	if r < 126 || r > 129 {
		t.Errorf("half opacity red channel = %d, want ~128", r)
	}
}

func TestTcellColor(t *testing.T) {
	want := tcell.NewRGBColor(0x41, 0x69, 0xE1)
	if got := TcellColor(ParseColor("#4169E1")); got != want {
		t.Errorf("TcellColor() = %v, want %v", got, want)
	}
}
