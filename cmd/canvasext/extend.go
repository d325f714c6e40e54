package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shouni/canvas-extend-kit/pkg/adapters"
	"github.com/shouni/canvas-extend-kit/pkg/engine"
	"github.com/shouni/canvas-extend-kit/pkg/raster"
	"github.com/shouni/canvas-extend-kit/pkg/trace"
)

const defaultModel = "gemini-2.5-flash-image"

type extendConfig struct {
	seedPath   string
	outputPath string
	traceDir   string
	iterations int
	down       bool
	dryRun     bool
	model      string
	style      string
}

func newExtendCmd() *cobra.Command {
	var cfg extendConfig

	cmd := &cobra.Command{
		Use:   "extend",
		Short: "シード画像を左右（および下）へ拡張します",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtend(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.seedPath, "seed", "seed.png", "シード画像のパス")
	cmd.Flags().StringVar(&cfg.outputPath, "output", "seed_extended.png", "拡張結果の出力パス")
	cmd.Flags().StringVar(&cfg.traceDir, "trace-dir", "", "中間画像を書き出すディレクトリ（空なら記録しない）")
	cmd.Flags().IntVar(&cfg.iterations, "iterations", engine.DefaultIterations, "左右それぞれの拡張回数")
	cmd.Flags().BoolVar(&cfg.down, "down", false, "結合後に下方向へ1段拡張する")
	cmd.Flags().BoolVar(&cfg.dryRun, "dry-run", false, "生成サービスを呼ばずスライド画像をそのまま使う")
	cmd.Flags().StringVar(&cfg.model, "model", "", "使用するモデル名（既定は CANVASEXT_MODEL）")
	cmd.Flags().StringVar(&cfg.style, "style", "", "全プロンプトへ付加する画風の指定")
	return cmd
}

func runExtend(ctx context.Context, cfg extendConfig) error {
	data, err := os.ReadFile(cfg.seedPath)
	if err != nil {
		return fmt.Errorf("シード画像を読み込めません: %w", err)
	}
	seed, err := raster.Decode(data)
	if err != nil {
		return err
	}

	synth, err := buildSynthesizer(ctx, cfg)
	if err != nil {
		return err
	}

	var sink engine.TraceSink
	if cfg.traceDir != "" {
		recorder, err := trace.NewFileRecorder(cfg.traceDir)
		if err != nil {
			return err
		}
		slog.Info("トレースを記録します", "dir", recorder.Root())
		sink = recorder
	}

	extender, err := engine.NewExtender(synth, sink)
	if err != nil {
		return err
	}

	result, err := extender.Extend(ctx, seed, cfg.iterations, cfg.down)
	if err != nil {
		return err
	}

	out, err := result.Canvas.EncodePNG()
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfg.outputPath, out, 0o644); err != nil {
		return fmt.Errorf("拡張画像を保存できません: %w", err)
	}

	slog.Info("拡張画像を保存しました",
		"path", cfg.outputPath,
		"width", result.Canvas.Width(),
		"height", result.Canvas.Height(),
		"seed_offset", result.SeedOffset,
	)
	if result.Row != nil && result.Row.Stalled {
		slog.Warn("下段の充填が全幅に達する前に停止しました")
	}
	return nil
}

func buildSynthesizer(ctx context.Context, cfg extendConfig) (engine.Synthesizer, error) {
	if cfg.dryRun {
		return adapters.IdentitySynthesizer{}, nil
	}

	model := cfg.model
	if model == "" {
		model = os.Getenv("CANVASEXT_MODEL")
	}
	if model == "" {
		model = defaultModel
	}

	aiClient, err := adapters.NewGenAIModel(ctx, os.Getenv("GEMINI_API_KEY"))
	if err != nil {
		return nil, err
	}

	var opts []adapters.SynthesizerOption
	if cfg.style != "" {
		opts = append(opts, adapters.WithStyleSuffix(cfg.style))
	}
	return adapters.NewGeminiSynthesizer(aiClient, model, opts...)
}
