package platform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/sikuli-cli/internal/sikuli"
)

// ClickKind selects the pointer action of a click.
type ClickKind int

const (
	ClickLeft ClickKind = iota
	ClickRight
	ClickDouble
)

// ParseClickKind converts a flag value to a ClickKind.
func ParseClickKind(s string) (ClickKind, error) {
	switch strings.ToLower(s) {
	case "", "left":
		return ClickLeft, nil
	case "right":
		return ClickRight, nil
	case "double":
		return ClickDouble, nil
	default:
		return ClickLeft, fmt.Errorf("unknown click kind: %q (expected left, right, or double)", s)
	}
}

// ParseRegion parses a "x,y,w,h" string into a rectangular Region.
func ParseRegion(s string) (sikuli.Region, error) {
	vals, err := parseInts(s, 4)
	if err != nil {
		return sikuli.Region{}, fmt.Errorf("invalid region %q: %w", s, err)
	}
	return sikuli.NewRegion(vals[0], vals[1], vals[2], vals[3]), nil
}

// ParsePoint parses a "x,y" offset.
func ParsePoint(s string) (sikuli.Point, error) {
	vals, err := parseInts(s, 2)
	if err != nil {
		return sikuli.Point{}, fmt.Errorf("invalid offset %q: %w", s, err)
	}
	return sikuli.Point{X: vals[0], Y: vals[1]}, nil
}

func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated integers", n)
	}
	vals := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}
