package main

import (
	"context"
	"os/signal"
	"syscall"

	"bookhub/cmd/bookctl/commands"
	"bookhub/pkg/utils"
)

func main() {
	utils.LoadDotEnv()
	utils.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	commands.ExecuteContext(ctx)
}
