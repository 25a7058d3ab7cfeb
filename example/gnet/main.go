package main

import (
	"github.com/panjf2000/gnet/v2"
	nexuslogger "github.com/walras-group/nexuslogger"
	"github.com/walras-group/nexuslogger/compat"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	c.Write(buf)
	return gnet.None
}

func main() {
	logger, err := nexuslogger.NewBuilder().
		Name("gnet").
		Path("/var/log/gnet/server.log").
		LevelString("debug").
		Build()
	if err != nil {
		panic(err)
	}
	defer logger.Close()

	gnetAdapter := compat.NewGnetAdapter(logger)

	// Configure gnet server with the logger
	err = gnet.Run(
		&echoServer{},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		panic(err)
	}
}
