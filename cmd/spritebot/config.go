package main

import (
	"github.com/spritecollab/spritebot"
	"github.com/spritecollab/spritebot/edds"
)

// Config holds the command line settings.
type Config struct {
	// InputFormat and OutputFormat name the sheet codec, "png" or "edds".
	InputFormat  string
	OutputFormat string
	// Compress enables LZ4 blocks in EDDS output.
	Compress bool
	LogLevel string
}

// DefaultConfig returns PNG in and out, compressed EDDS, info logging.
func DefaultConfig() *Config {
	return &Config{
		InputFormat:  "png",
		OutputFormat: "png",
		Compress:     true,
		LogLevel:     "info",
	}
}

func (c *Config) inputCodec() (spritebot.SheetCodec, error) {
	return spritebot.SheetCodecByName(c.InputFormat)
}

func (c *Config) outputCodec() (spritebot.SheetCodec, error) {
	codec, err := spritebot.SheetCodecByName(c.OutputFormat)
	if err != nil {
		return nil, err
	}
	if _, ok := codec.(spritebot.EDDS); ok {
		return spritebot.EDDS{Options: &edds.EncodeOptions{Format: edds.BGRA8, Compress: c.Compress}}, nil
	}
	return codec, nil
}
