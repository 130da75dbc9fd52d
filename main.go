package main

import (
	"os"

	"github.com/pmkol/tasklist/coremain"
	"github.com/pmkol/tasklist/mlog"
	"go.uber.org/zap"
)

func main() {
	if err := coremain.Run(); err != nil {
		mlog.L().Error("tasklist exited", zap.Error(err))
		os.Exit(1)
	}
}
