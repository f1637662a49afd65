// Command symcalc-mcp runs the expression-tree library as an MCP tool
// server over stdio: tokenize, parse, differentiate, simplify, evaluate,
// and pretty-print, each answering one JSON-RPC call per invocation.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/symcalc/symcalc/internal/cache"
	"github.com/symcalc/symcalc/internal/config"
	"github.com/symcalc/symcalc/internal/mcpserver"
	"github.com/symcalc/symcalc/pkg/registry"
)

func main() {
	configPath := flag.String("config", "", "optional YAML file of extra named constants")
	noCache := flag.Bool("no-cache", false, "disable the SQLite-backed memoization cache")
	flag.Parse()

	registry.Init()
	defer registry.Shutdown()

	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			slog.Warn("config.load.skip", "path", *configPath, "err", err)
		} else {
			c.Apply(registry.Default())
		}
	}

	var c *cache.Cache
	if !*noCache {
		opened, err := cache.Open()
		if err != nil {
			slog.Warn("cache.open.skip", "err", err)
		} else {
			c = opened
			defer c.Close()
		}
	}

	srv := mcpserver.NewServer(registry.Default(), c)

	ctx := context.Background()
	if err := srv.MCPServer().Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("server err=%v", err)
	}
}
