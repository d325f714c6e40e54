package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shouni/canvas-extend-kit/pkg/raster"
)

func newSlideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slide [input] [output]",
		Short: "画像を左へスライドして右3分の1を空けた画像を保存します",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "seed.png"
			output := "seed_slid.png"
			if len(args) > 0 {
				input = args[0]
			}
			if len(args) > 1 {
				output = args[1]
			}
			return runSlide(input, output)
		},
	}
}

func runSlide(input, output string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("画像を読み込めません: %w", err)
	}
	src, err := raster.Decode(data)
	if err != nil {
		return err
	}

	slid, err := raster.SlideLeft(src)
	if err != nil {
		return err
	}

	out, err := slid.EncodePNG()
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, out, 0o644); err != nil {
		return fmt.Errorf("画像を保存できません: %w", err)
	}
	slog.Info("スライド画像を保存しました", "path", output)
	return nil
}
