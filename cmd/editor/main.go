package main

import (
	"os"

	"github.com/alecthomas/kong"
	log "github.com/sirupsen/logrus"
)

var CLI struct {
	LogLevel log.Level `short:"v" type:"counter" help:"log level, 0 = Error, 1 = Warn (-v), 2 = Info (-vv), 3 = Debug (-vvv), 4 = Trace (-vvvv)"`

	Edit    EditCmd    `cmd:"" help:"Open a tile set in the editor window"`
	Info    InfoCmd    `cmd:"" help:"Show the sources of a tile set"`
	Proxies ProxiesCmd `cmd:"" help:"Inspect and edit tile proxies"`
	Scenes  ScenesCmd  `cmd:"" help:"Inspect and edit the scene tiles of a scenes collection source"`
}

func main() {
	ctx := &Context{}
	cliCtx := kong.Parse(&CLI,
		kong.Name("tileset-editor"),
		kong.Description("Edit tile proxies and scene collections of tile set resources"),
		kong.UsageOnError(),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact: true,
				Summary: true,
			}),
		kong.Bind(ctx),
	)

	level := CLI.LogLevel + 2
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{
		ForceColors: true,
	})

	err := cliCtx.Run(ctx)
	cliCtx.FatalIfErrorf(err)
}
