// Command spritebot checks, inspects and repacks SpriteBot sprites stored
// as a directory or a .tar.lz4 bundle.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	app := NewApp(DefaultConfig())
	if err := app.Command().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "spritebot:", err)
		os.Exit(1)
	}
}

// Command builds the command tree bound to the app configuration.
func (a *App) Command() *cli.Command {
	cfg := a.cfg
	return &cli.Command{
		Name:  "spritebot",
		Usage: "check, inspect and repack SpriteBot sprites",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "debug, info, warn or error",
				Value:       cfg.LogLevel,
				Destination: &cfg.LogLevel,
				Sources:     cli.EnvVars("SPRITEBOT_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:        "in",
				Usage:       "sheet format of the source sprite (png, edds)",
				Value:       cfg.InputFormat,
				Destination: &cfg.InputFormat,
				Sources:     cli.EnvVars("SPRITEBOT_IN"),
			},
		},
		Before: a.before,
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "decode a sprite and report the first problem",
				ArgsUsage: "<sprite>",
				Action:    a.check,
			},
			{
				Name:      "info",
				Usage:     "list the animations of a sprite",
				ArgsUsage: "<sprite>",
				Action:    a.info,
			},
			{
				Name:      "repack",
				Usage:     "decode a sprite and write it again with freshly packed sheets",
				ArgsUsage: "<source> <destination>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "out",
						Usage:       "sheet format of the written sprite (png, edds)",
						Value:       cfg.OutputFormat,
						Destination: &cfg.OutputFormat,
						Sources:     cli.EnvVars("SPRITEBOT_OUT"),
					},
					&cli.BoolFlag{
						Name:        "compress",
						Usage:       "LZ4 compress EDDS sheets",
						Value:       cfg.Compress,
						Destination: &cfg.Compress,
					},
				},
				Action: a.repack,
			},
		},
	}
}
