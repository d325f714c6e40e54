package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// .env があれば読み込む（なければ環境変数のみ）
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:          "canvasext",
		Short:        "シードタイルを生成AIで外側へ拡張するツール",
		SilenceUsage: true,
	}
	root.AddCommand(newExtendCmd())
	root.AddCommand(newSlideCmd())
	return root.ExecuteContext(ctx)
}
