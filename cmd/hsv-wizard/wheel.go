package main

import (
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"github.com/ironsheep/hsv-wizard/internal/imaging"
)

var (
	wheelOutput string
	wheelHueBar bool
)

var wheelCmd = &cobra.Command{
	Use:   "wheel",
	Short: "Render the hue color wheel or hue bar reference image",
	Long: `Render the color wheel (hue by angle, saturation by radius, with 15° ticks)
or, with --hue-bar, the horizontal hue gradient bar. Sizes come from the config.`,
	Args: cobra.NoArgs,
	RunE: runWheel,
}

func init() {
	rootCmd.AddCommand(wheelCmd)

	wheelCmd.Flags().StringVarP(&wheelOutput, "output", "o", "", "output image path")
	wheelCmd.Flags().BoolVar(&wheelHueBar, "hue-bar", false, "render the hue bar instead of the wheel")
	_ = wheelCmd.MarkFlagRequired("output")
}

func runWheel(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	var img image.Image
	if wheelHueBar {
		img = imaging.HueBar(cfg.HueBarWidth, cfg.HueBarHeight)
	} else {
		img = imaging.ColorWheel(cfg.WheelRadius)
	}

	if err := imaging.Save(wheelOutput, img); err != nil {
		return err
	}
	log.Debug().Str("path", wheelOutput).Bool("hue_bar", wheelHueBar).Msg("widget saved")
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%dx%d)\n", wheelOutput, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}
