package sikuli

import (
	"regexp"
	"strconv"
)

var (
	matchBoundsRe = regexp.MustCompile(`^M\[(-?\d+),(-?\d+) (\d+)x(\d+)\]`)
	matchScoreRe  = regexp.MustCompile(`\bS:(\d+(?:\.\d+)?)`)
	matchCenterRe = regexp.MustCompile(`\bC:(-?\d+),(-?\d+)`)
)

// Match is one occurrence located by the engine. Raw holds the token
// exactly as the interpreter printed it; the other fields are decoded from
// it when present and left zero otherwise.
type Match struct {
	Raw     string  `yaml:"raw"              json:"raw"`
	X       int     `yaml:"x"                json:"x"`
	Y       int     `yaml:"y"                json:"y"`
	W       int     `yaml:"w,omitempty"      json:"w,omitempty"`
	H       int     `yaml:"h,omitempty"      json:"h,omitempty"`
	Score   float64 `yaml:"score,omitempty"  json:"score,omitempty"`
	CenterX int     `yaml:"cx,omitempty"     json:"cx,omitempty"`
	CenterY int     `yaml:"cy,omitempty"     json:"cy,omitempty"`
}

func newMatch(token string) Match {
	m := Match{Raw: token}
	if g := matchBoundsRe.FindStringSubmatch(token); g != nil {
		m.X, _ = strconv.Atoi(g[1])
		m.Y, _ = strconv.Atoi(g[2])
		m.W, _ = strconv.Atoi(g[3])
		m.H, _ = strconv.Atoi(g[4])
		m.CenterX = m.X + m.W/2
		m.CenterY = m.Y + m.H/2
	}
	if g := matchScoreRe.FindStringSubmatch(token); g != nil {
		m.Score, _ = strconv.ParseFloat(g[1], 64)
	}
	if g := matchCenterRe.FindStringSubmatch(token); g != nil {
		m.CenterX, _ = strconv.Atoi(g[1])
		m.CenterY, _ = strconv.Atoi(g[2])
	}
	return m
}

// String returns the raw token.
func (m Match) String() string {
	return m.Raw
}
