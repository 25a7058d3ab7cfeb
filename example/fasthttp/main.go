package main

import (
	"fmt"
	"time"

	nexuslogger "github.com/walras-group/nexuslogger"
	"github.com/walras-group/nexuslogger/compat"
	"github.com/valyala/fasthttp"
)

func main() {
	// Create and configure logger
	logger, err := nexuslogger.NewBuilder().
		Name("fasthttp").
		Path("/var/log/fasthttp/server.log").
		LevelString("info").
		Build()
	if err != nil {
		panic(err)
	}
	defer logger.Close()

	// Create fasthttp adapter with default level detection
	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultLevel(nexuslogger.LevelInfo),
	)

	// Configure fasthttp server
	server := &fasthttp.Server{
		Handler: requestHandler,
		Logger:  fasthttpAdapter,

		// Other server settings
		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	// Start server
	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}
