package main

import (
	"context"
	"os"

	"github.com/wdm0006/dairyclean/pkg/clean"
	"github.com/wdm0006/dairyclean/pkg/logger"
)

func main() {
	log := logger.NewLogger(logger.DefaultConfig())
	ctx := logger.ContextWithLogger(context.Background(), log)

	if _, err := clean.Run(ctx, clean.DefaultOptions()); err != nil {
		log.Error("cleaning failed", "err", err)
		os.Exit(1)
	}
}
