package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ironsheep/hsv-wizard/internal/imaging"
	"github.com/ironsheep/hsv-wizard/internal/session"
)

var (
	maskOutput    string
	maskHue       []float64
	maskSat       []float64
	maskVal       []float64
	maskPick      []int
	maskZoom      float64
	maskPixelSize float64
	maskLine      []float64
	maskLength    float64
	maskUnits     string
	maskScaleBar  float64
	maskMeasure   []string
)

var maskCmd = &cobra.Command{
	Use:   "mask [image]",
	Short: "Threshold an image by HSV range and save the result",
	Long: `Apply an HSV threshold to an image and save the masked result. Pixels outside
the range become black.

The range can be given directly (--hue, --sat, --val) or derived from a pixel
(--pick). Explicit bounds override the picked ones. Hue bounds are degrees
and wrap through 0 when the first is larger, e.g. --hue 350,10.

Calibrate with either --pixel-size or a reference line (--line with --length),
then add a scale bar (--scale-bar) or measure lines (--measure, repeatable).
All coordinates are image pixels.`,
	Example: `  hsv-wizard mask cells.png -o red.png --pick 120,80
  hsv-wizard mask cells.png -o out.png --hue 350,10 --pixel-size 0.2 --units µm --scale-bar 10
  hsv-wizard mask cells.png -o out.png --line 10,10,110,10 --length 20 --units µm --measure 0,0,50,50`,
	Args: cobra.ExactArgs(1),
	RunE: runMask,
}

func init() {
	rootCmd.AddCommand(maskCmd)

	maskCmd.Flags().StringVarP(&maskOutput, "output", "o", "", "output image path (format from extension)")
	maskCmd.Flags().Float64SliceVar(&maskHue, "hue", nil, "hue bounds low,high in degrees")
	maskCmd.Flags().Float64SliceVar(&maskSat, "sat", nil, "saturation bounds low,high in percent")
	maskCmd.Flags().Float64SliceVar(&maskVal, "val", nil, "value bounds low,high in percent")
	maskCmd.Flags().IntSliceVar(&maskPick, "pick", nil, "derive the range from the pixel at x,y")
	maskCmd.Flags().Float64Var(&maskZoom, "zoom", 1, "display zoom; sets the saved scale bar thickness")
	maskCmd.Flags().Float64Var(&maskPixelSize, "pixel-size", 0, "physical size of one pixel")
	maskCmd.Flags().Float64SliceVar(&maskLine, "line", nil, "reference line x1,y1,x2,y2")
	maskCmd.Flags().Float64Var(&maskLength, "length", 0, "physical length of the reference line")
	maskCmd.Flags().StringVar(&maskUnits, "units", "", "unit name for calibration, e.g. µm")
	maskCmd.Flags().Float64Var(&maskScaleBar, "scale-bar", 0, "scale bar length in calibrated units")
	maskCmd.Flags().StringArrayVar(&maskMeasure, "measure", nil, "measure the line x1,y1,x2,y2 (repeatable)")

	_ = maskCmd.MarkFlagRequired("output")
	maskCmd.MarkFlagsMutuallyExclusive("pixel-size", "line")
	maskCmd.MarkFlagsRequiredTogether("line", "length")
}

// flagPrompter answers session prompts from command-line flags and logs
// notifications.
type flagPrompter struct {
	length   float64
	units    string
	scaleBar float64
	log      zerolog.Logger
}

func (p *flagPrompter) AskLengthAndUnits(string) (float64, string, bool) {
	return p.length, p.units, p.length != 0
}

func (p *flagPrompter) AskScaleBarLength(string) (float64, bool) {
	return p.scaleBar, p.scaleBar != 0
}

func (p *flagPrompter) Notify(level session.Level, title, message string) {
	ev := p.log.Info()
	switch level {
	case session.LevelWarning:
		ev = p.log.Warn()
	case session.LevelError:
		ev = p.log.Error()
	}
	ev.Str("title", title).Msg(message)
}

func runMask(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	img, err := imaging.Load(args[0])
	if err != nil {
		return err
	}

	prompt := &flagPrompter{units: maskUnits, scaleBar: maskScaleBar, log: log}
	opts := append(session.OptionsFromConfig(cfg), session.WithLogger(log), session.WithPrompter(prompt))
	s := session.New(opts...)
	s.LoadImage(img)

	if err := applyRange(s); err != nil {
		return err
	}
	if err := calibrate(s, prompt); err != nil {
		return err
	}

	s.SetZoom(maskZoom)

	if maskScaleBar != 0 {
		if err := s.AddScaleBar(); err != nil {
			return err
		}
	}

	if err := measure(s); err != nil {
		return err
	}

	out, err := s.Composite()
	if err != nil {
		return err
	}
	if err := imaging.Save(maskOutput, out); err != nil {
		return err
	}

	r := s.Threshold()
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Saved %s (%dx%d)\n", maskOutput, out.Bounds().Dx(), out.Bounds().Dy())
	fmt.Fprintf(w, "Hue %.1f-%.1f  Saturation %.1f-%.1f  Value %.1f-%.1f\n",
		r.HueLow, r.HueHigh, r.SatLow, r.SatHigh, r.ValLow, r.ValHigh)
	if cal := s.Calibration(); cal.Calibrated() {
		fmt.Fprintf(w, "Calibration %s\n", cal.String())
	}
	if text := s.MeasurementText(); text != "" {
		fmt.Fprint(w, text)
	}
	return nil
}

// applyRange picks the range from a pixel, then applies explicit bounds.
func applyRange(s *session.Session) error {
	if maskPick != nil {
		if len(maskPick) != 2 {
			return errors.New("--pick takes x,y")
		}
		if err := s.RequestColorPick(); err != nil {
			return err
		}
		// Pointer positions are viewport coordinates; at zoom 1 with no
		// scroll they are image coordinates.
		p := session.Pointer{X: float64(maskPick[0]), Y: float64(maskPick[1])}
		if err := s.PointerPress(p); err != nil {
			return err
		}
	}

	if maskHue != nil {
		if len(maskHue) != 2 {
			return errors.New("--hue takes low,high")
		}
		s.SetHue(maskHue[0], maskHue[1])
	}
	if maskSat != nil {
		if len(maskSat) != 2 {
			return errors.New("--sat takes low,high")
		}
		s.SetSaturation(maskSat[0], maskSat[1])
	}
	if maskVal != nil {
		if len(maskVal) != 2 {
			return errors.New("--val takes low,high")
		}
		s.SetValue(maskVal[0], maskVal[1])
	}
	return nil
}

func calibrate(s *session.Session, prompt *flagPrompter) error {
	switch {
	case maskPixelSize != 0:
		prompt.length = maskPixelSize
		if err := s.CalibratePixelSize(); err != nil {
			return err
		}
	case maskLine != nil:
		if len(maskLine) != 4 {
			return errors.New("--line takes x1,y1,x2,y2")
		}
		prompt.length = maskLength
		if err := s.RequestCalibrationLine(); err != nil {
			return err
		}
		if err := drawLine(s, maskLine); err != nil {
			return err
		}
	}
	return nil
}

func measure(s *session.Session) error {
	if len(maskMeasure) == 0 {
		return nil
	}
	if err := s.RequestMeasuring(); err != nil {
		return err
	}
	defer s.FinishMode()

	for _, spec := range maskMeasure {
		line, err := parseLine(spec)
		if err != nil {
			return err
		}
		if err := drawLine(s, line); err != nil {
			return err
		}
	}
	return nil
}

// drawLine draws x1,y1,x2,y2 in image coordinates through pointer events.
func drawLine(s *session.Session, line []float64) error {
	z := s.Zoom()
	if err := s.PointerPress(session.Pointer{X: line[0] * z, Y: line[1] * z}); err != nil {
		return err
	}
	return s.PointerRelease(session.Pointer{X: line[2] * z, Y: line[3] * z})
}

func parseLine(spec string) ([]float64, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("line %q: want x1,y1,x2,y2", spec)
	}
	line := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", spec, err)
		}
		line[i] = v
	}
	return line, nil
}
