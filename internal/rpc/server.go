package rpc

import (
	"log/slog"

	middleware "github.com/vmkteam/zenrpc-middleware"
	"github.com/vmkteam/zenrpc/v2"

	"github.com/epalma/noticiero/internal/newsroom"
)

func New(logger *slog.Logger, manager *newsroom.Manager) *zenrpc.Server {
	rpcService := NewNewsService(manager)
	rpcServer := zenrpc.NewServer(zenrpc.Options{ExposeSMD: true})
	rpcServer.Register("news", rpcService)
	rpcServer.Use(middleware.WithSLog(logger.InfoContext, "noticiero", nil))

	return rpcServer
}
