package main

import (
	"context"
	"errors"
	"os"

	"github.com/fsdevblog/lucky-ten/internal/logger"

	"github.com/fsdevblog/lucky-ten/internal/app"
	"github.com/fsdevblog/lucky-ten/internal/config"
)

func main() {
	conf := config.MustLoadConfig(os.Args[1:])
	l := logger.New(os.Stdout, conf.LogLevel)

	if err := app.New(conf, l).Run(); err != nil {
		if errors.Is(err, context.Canceled) {
			l.Info("graceful shutdown")
			os.Exit(0)
		}
		l.WithError(err).Fatal("app stopped")
	}
}
