package platform

import (
	"testing"

	"github.com/mj1618/sikuli-cli/internal/sikuli"
)

func TestParseRegion_Valid(t *testing.T) {
	for _, s := range []string{"10,20,300,400", "10, 20, 300, 400"} {
		r, err := ParseRegion(s)
		if err != nil {
			t.Fatal(err)
		}
		if r != sikuli.NewRegion(10, 20, 300, 400) {
			t.Errorf("ParseRegion(%q) = %+v", s, r)
		}
	}
}

func TestParseRegion_Invalid(t *testing.T) {
	tests := []string{
		"",
		"10,20,300",
		"10,20,300,400,500",
		"a,b,c,d",
		"10,20,abc,400",
	}
	for _, s := range tests {
		if _, err := ParseRegion(s); err == nil {
			t.Errorf("ParseRegion(%q) should fail", s)
		}
	}
}

func TestParsePoint(t *testing.T) {
	p, err := ParsePoint("-5, 12")
	if err != nil {
		t.Fatal(err)
	}
	if p != (sikuli.Point{X: -5, Y: 12}) {
		t.Errorf("got %+v", p)
	}
	if _, err := ParsePoint("5"); err == nil {
		t.Error("single value should fail")
	}
}

func TestParseClickKind(t *testing.T) {
	tests := []struct {
		input string
		want  ClickKind
	}{
		{"", ClickLeft},
		{"left", ClickLeft},
		{"Right", ClickRight},
		{"DOUBLE", ClickDouble},
	}
	for _, tt := range tests {
		got, err := ParseClickKind(tt.input)
		if err != nil {
			t.Errorf("ParseClickKind(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseClickKind(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
	if _, err := ParseClickKind("middle"); err == nil {
		t.Error("middle should fail")
	}
}
