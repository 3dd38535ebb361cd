package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/spritecollab/spritebot"
	"github.com/spritecollab/spritebot/internal/log"
)

// App ties the configuration, the logger and the output of one run.
type App struct {
	cfg *Config
	log zerolog.Logger
	out io.Writer
	err io.Writer
}

// NewApp returns an app printing to stdout and logging to stderr.
func NewApp(cfg *Config) *App {
	return &App{cfg: cfg, log: zerolog.Nop(), out: os.Stdout, err: os.Stderr}
}

func (a *App) before(ctx context.Context, _ *cli.Command) (context.Context, error) {
	logger, err := log.New(a.err, a.cfg.LogLevel)
	if err != nil {
		return ctx, err
	}
	a.log = logger
	return ctx, nil
}

func spriteArg(cmd *cli.Command, i int, name string) (string, error) {
	if cmd.NArg() <= i {
		return "", fmt.Errorf("missing %s argument", name)
	}
	return cmd.Args().Get(i), nil
}

// openStorage opens a sprite directory, or a bundle when path ends in .tar.lz4.
func openStorage(path string) (spritebot.Storage, error) {
	if !strings.HasSuffix(path, spritebot.ArchiveExt) {
		return spritebot.NewDirStorage(path), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return spritebot.ReadArchive(f)
}

func (a *App) load(path string) (*spritebot.Sprite, error) {
	codec, err := a.cfg.inputCodec()
	if err != nil {
		return nil, err
	}
	st, err := openStorage(path)
	if err != nil {
		return nil, err
	}
	return spritebot.ReadWithOptions(st, &spritebot.ReadOptions{Codec: codec, Logger: &a.log})
}

func (a *App) check(_ context.Context, cmd *cli.Command) error {
	path, err := spriteArg(cmd, 0, "sprite")
	if err != nil {
		return err
	}
	spr, err := a.load(path)
	if err != nil {
		var e *spritebot.Error
		if errors.As(err, &e) {
			a.log.Error().
				Str("animation", e.Animation).
				Int("line", e.Line).
				Int("frame", e.Frame).
				Str("sheet", string(e.Sheet)).
				Str("marker", e.Marker).
				Msg(e.Kind.Error())
		}
		return err
	}
	a.log.Info().Str("sprite", path).Int("animations", len(spr.Animations)).Msg("sprite is valid")
	return nil
}

func (a *App) info(_ context.Context, cmd *cli.Command) error {
	path, err := spriteArg(cmd, 0, "sprite")
	if err != nil {
		return err
	}
	spr, err := a.load(path)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "shadow size\t%d\n\n", spr.ShadowSize)
	fmt.Fprintln(tw, "INDEX\tNAME\tCELL\tLINES x FRAMES\tPIXELS")
	for _, anim := range spr.Animations {
		if anim.CopyOf != "" {
			fmt.Fprintf(tw, "%d\t%s\tcopy of %s\t\t\n", anim.Index, anim.Name, anim.CopyOf)
			continue
		}
		cell := anim.CellSize()
		frames := 0
		if len(anim.Lines) > 0 {
			frames = len(anim.Lines[0])
		}
		pixels := int64(cell.X) * int64(cell.Y) * int64(anim.FrameCount())
		fmt.Fprintf(tw, "%d\t%s\t%dx%d\t%d x %d\t%s\n",
			anim.Index, anim.Name, cell.X, cell.Y, len(anim.Lines), frames, humanize.Comma(pixels))
	}
	return tw.Flush()
}

func (a *App) repack(_ context.Context, cmd *cli.Command) error {
	src, err := spriteArg(cmd, 0, "source")
	if err != nil {
		return err
	}
	dst, err := spriteArg(cmd, 1, "destination")
	if err != nil {
		return err
	}

	spr, err := a.load(src)
	if err != nil {
		return err
	}
	codec, err := a.cfg.outputCodec()
	if err != nil {
		return err
	}
	opts := &spritebot.WriteOptions{Codec: codec, Logger: &a.log}

	if !strings.HasSuffix(dst, spritebot.ArchiveExt) {
		if err := spritebot.WriteWithOptions(spritebot.NewDirStorage(dst), spr, opts); err != nil {
			return err
		}
		a.log.Info().Str("destination", dst).Int("animations", len(spr.Animations)).Msg("sprite repacked")
		return nil
	}

	bundle := spritebot.NewArchive()
	if err := spritebot.WriteWithOptions(bundle, spr, opts); err != nil {
		return err
	}
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	n, err := bundle.WriteTo(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	a.log.Info().
		Str("destination", dst).
		Int("files", len(bundle.Names())).
		Str("size", humanize.Bytes(uint64(n))).
		Msg("sprite bundled")
	return nil
}
