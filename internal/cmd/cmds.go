package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

var Flags = []cli.Flag{
	altsrc.NewIntFlag(&cli.IntFlag{
		Name:     "port",
		Value:    0,
		Usage:    "Defines the port which server should listen on",
		Required: false,
		Aliases:  []string{"p"},
		EnvVars:  []string{"PORT"},
	}),
	altsrc.NewStringFlag(&cli.StringFlag{
		Name:    "demo",
		Usage:   "Practice page to serve, minigames or training",
		EnvVars: []string{"PIANO_DEMO"},
	}),
	&cli.StringFlag{
		Name:    "load",
		Usage:   "Load flag values from a yaml file",
		Aliases: []string{"l"},
	},
}

var PlayFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "server",
		Usage:   "Address of the piano server, prompted for when empty",
		Aliases: []string{"s"},
		EnvVars: []string{"PIANO_SERVER"},
	},
	&cli.StringFlag{
		Name:    "melody",
		Usage:   "Play the mini-game with this melody id",
		Aliases: []string{"m"},
	},
	&cli.BoolFlag{
		Name:    "train",
		Usage:   "Run key training followed by the melody",
		Aliases: []string{"t"},
	},
}

var Commands = []*cli.Command{
	{
		Name:        "start",
		Category:    "run",
		Aliases:     []string{"s"},
		Description: "Starts the server in production mode.",
		Before:      altsrc.InitInputSourceWithContext(Flags, altsrc.NewYamlSourceFromFlagFunc("load")),
		Action:      run(false), // disable dev mode
		Flags:       Flags,
	},
	{
		Name:        "dev",
		Category:    "run",
		Aliases:     []string{"d"},
		Description: "Starts the server in development mode",
		Before:      altsrc.InitInputSourceWithContext(Flags, altsrc.NewYamlSourceFromFlagFunc("load")),
		Action:      run(true), // enable dev mode
		Flags:       Flags,
	},
	{
		Name:        "play",
		Category:    "client",
		Description: "Opens a terminal keyboard connected to a piano server",
		Action:      play,
		Flags:       PlayFlags,
	},
}

const Version = "v0.1.0"

func GetVersion(cCtx *cli.Context) error {
	_, err := fmt.Println("pianoweb version: " + Version)
	return err
}
