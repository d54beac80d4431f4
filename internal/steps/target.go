package steps

import (
	"errors"
	"fmt"

	"github.com/mj1618/sikuli-cli/internal/platform"
	"github.com/mj1618/sikuli-cli/internal/sikuli"
)

// ErrNoTarget is returned when a step names neither an image nor a region.
var ErrNoTarget = errors.New("no target: set image, region, screen, or focused-window")

// Target builds the descriptor named by params:
//
//	image: ok.png          similar: 0.9
//	region: "x,y,w,h"      screen: 1      focused-window: true
//	offset: "dx,dy"        (applies to either)
func Target(params map[string]interface{}) (sikuli.Descriptor, error) {
	var d sikuli.Descriptor
	if image := StringParam(params, "image", ""); image != "" {
		p, err := pattern(params, image)
		if err != nil {
			return nil, err
		}
		d = p
	} else {
		r, ok, err := Region(params)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNoTarget
		}
		d = r
	}
	if s := StringParam(params, "offset", ""); s != "" {
		pt, err := platform.ParsePoint(s)
		if err != nil {
			return nil, err
		}
		d = sikuli.WithOffset(d, pt)
	}
	return d, nil
}

// Region returns the region named by params. ok is false when params name
// no region at all.
func Region(params map[string]interface{}) (r sikuli.Region, ok bool, err error) {
	if s := StringParam(params, "region", ""); s != "" {
		r, err = platform.ParseRegion(s)
		return r, err == nil, err
	}
	if _, set := params["screen"]; set {
		n, err := IntParam(params, "screen", 0)
		if err != nil {
			return sikuli.Region{}, false, err
		}
		return sikuli.ScreenRegion(n), true, nil
	}
	if BoolParam(params, "focused-window", false) {
		return sikuli.FocusedWindow(), true, nil
	}
	return sikuli.Region{}, false, nil
}

// Patterns builds one pattern per entry of the images list. similar
// applies to all of them.
func Patterns(params map[string]interface{}) ([]sikuli.Descriptor, error) {
	images := StringsParam(params, "images")
	if len(images) == 0 {
		return nil, fmt.Errorf("images must list at least one image")
	}
	out := make([]sikuli.Descriptor, 0, len(images))
	for _, image := range images {
		p, err := pattern(params, image)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func pattern(params map[string]interface{}, image string) (sikuli.Pattern, error) {
	p := sikuli.NewPattern(image)
	if _, set := params["similar"]; set {
		similar, err := FloatParam(params, "similar", sikuli.DefaultSimilarity)
		if err != nil {
			return p, err
		}
		p = p.Similar(similar)
	}
	return p, nil
}
