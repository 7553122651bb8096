package cmd

import (
	"net/url"

	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/rapidmidiex/pianoweb/internal/cmd/config"
	"github.com/rapidmidiex/pianoweb/internal/game"
	"github.com/rapidmidiex/pianoweb/ui/terminal/tui"
)

const defaultServer = "http://localhost:" + config.DefaultPort

func play(cCtx *cli.Context) error {
	server, err := resolveServer(cCtx.String("server"), promptServer)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Melody:  cCtx.String("melody"),
		Train:   cCtx.Bool("train"),
		Presses: game.DefaultPresses,
	}

	return errors.Wrap(tui.Run(server, opts), "terminal piano")
}

// resolveServer checks the address given by flag or environment, asking
// for one when it is empty.
func resolveServer(given string, ask func() (string, error)) (string, error) {
	if given == "" {
		return ask()
	}
	if err := validateServer(given); err != nil {
		return "", errors.Wrapf(err, "server address %q", given)
	}
	return given, nil
}

func promptServer() (string, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} ",
		Valid:   "{{ . | green }} ",
		Invalid: "{{ . | red }} ",
		Success: "{{ . | bold }} ",
	}

	p := promptui.Prompt{
		Label:     "Piano server",
		Default:   defaultServer,
		Validate:  validateServer,
		Templates: templates,
	}

	s, err := p.Run()
	if err != nil {
		return "", errors.Wrap(err, "reading server address")
	}
	return s, nil
}

func validateServer(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
