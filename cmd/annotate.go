package cmd

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/mj1618/sikuli-cli/internal/output"
	"github.com/mj1618/sikuli-cli/internal/platform"
	"github.com/mj1618/sikuli-cli/internal/sikuli"
	"github.com/mj1618/sikuli-cli/internal/steps"
	"github.com/spf13/cobra"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// AnnotateResult is the output of the annotate command.
type AnnotateResult struct {
	OK      bool           `yaml:"ok"                json:"ok"`
	Action  string         `yaml:"action"            json:"action"`
	Target  string         `yaml:"target"            json:"target"`
	Out     string         `yaml:"out"               json:"out"`
	Count   int            `yaml:"count"             json:"count"`
	Matches []sikuli.Match `yaml:"matches,omitempty" json:"matches,omitempty"`
}

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Draw every match of an image onto a screenshot",
	Long: `Run find --all for the target and draw each match's box and label onto a
copy of --screenshot, written as PNG to --out. Use it to tune --similar.

--origin and --scale map screen points to screenshot pixels when the
screenshot is of a region or a HiDPI display.`,
	RunE: runAnnotate,
}

func init() {
	rootCmd.AddCommand(annotateCmd)
	addTargetFlags(annotateCmd, "")
	annotateCmd.Flags().String("screenshot", "", "Screenshot to draw on (png, jpg, bmp, tiff)")
	annotateCmd.Flags().String("out", "annotated.png", "Output PNG path")
	annotateCmd.Flags().String("origin", "0,0", "Screen position of the screenshot's top-left corner as x,y")
	annotateCmd.Flags().Float64("scale", 1, "Screenshot pixels per screen point")
	annotateCmd.Flags().String("label", "score", "Label drawn on each match: score, center, index")
	_ = annotateCmd.MarkFlagRequired("screenshot")
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	shotPath, _ := cmd.Flags().GetString("screenshot")
	outPath, _ := cmd.Flags().GetString("out")
	originStr, _ := cmd.Flags().GetString("origin")
	scale, _ := cmd.Flags().GetFloat64("scale")
	labelStr, _ := cmd.Flags().GetString("label")

	origin, err := platform.ParsePoint(originStr)
	if err != nil {
		return err
	}
	mode, err := ParseLabelMode(labelStr)
	if err != nil {
		return err
	}
	target, err := steps.Target(targetParams(cmd, ""))
	if err != nil {
		return err
	}
	img, err := readImage(shotPath)
	if err != nil {
		return err
	}

	session, _, err := openSession()
	if err != nil {
		return err
	}
	defer closeSession(session)

	matches, err := session.FindAll(target)
	if err != nil {
		return err
	}
	if err := writePNG(outPath, AnnotateMatches(img, matches, origin, scale, mode)); err != nil {
		return err
	}
	return output.Print(AnnotateResult{
		OK:      true,
		Action:  "annotate",
		Target:  target.ScriptExpression(),
		Out:     outPath,
		Count:   len(matches),
		Matches: matches,
	})
}

func readImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
