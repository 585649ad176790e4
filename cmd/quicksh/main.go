package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/quickshcc/quicksh/internal/buildinfo"
	"github.com/quickshcc/quicksh/internal/client/cli"
	"github.com/quickshcc/quicksh/internal/client/config"
	"github.com/quickshcc/quicksh/internal/logging"

	_ "modernc.org/sqlite"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
	logger := logging.NewSlogLogger(slog.New(handler))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx, positionalArgs(os.Args[1:]))
}

// positionalArgs keeps the non-flag arguments so a pasted code segment can
// be forwarded to the digit entry. Flag values are consumed by the config
// layer and skipped here.
func positionalArgs(args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			if !strings.Contains(arg, "=") && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}
