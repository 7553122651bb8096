package main

import (
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	cmds "github.com/rapidmidiex/pianoweb/internal/cmd"
)

func main() {
	if err := initCLI().Run(os.Args); err != nil {
		log.Fatalln(err)
	}
}

func initCLI() *cli.App {
	c := &cli.App{
		EnableBashCompletion: true,
		Name:                 "pianoweb",
		Usage:                "Touch piano practice server and terminal keyboard",
		Version:              cmds.Version,
		Compiled:             time.Now().UTC(),
		Action:               cmds.GetVersion,
		Flags:                cmds.Flags,
		Commands:             cmds.Commands,
	}

	return c
}
