package cmd

import (
	"errors"
	"testing"

	"github.com/hyphengolang/prelude/testing/is"
)

func TestValidateServer(t *testing.T) {
	tt := map[string]bool{
		"http://localhost:8888":    true,
		"https://piano.example":    true,
		"http://10.42.0.119:8888/": true,
		"localhost:8888":           false,
		"ws://localhost:8888":      false,
		"http://":                  false,
		"http://[::1":              false,
	}

	for in, ok := range tt {
		t.Run(in, func(t *testing.T) {
			is := is.New(t)
			is.Equal(validateServer(in) == nil, ok)
		})
	}

	is.New(t).NoErr(validateServer(defaultServer))
}

func TestResolveServer(t *testing.T) {
	is := is.New(t)

	asked := 0
	ask := func() (string, error) {
		asked++
		return defaultServer, nil
	}

	s, err := resolveServer("", ask)
	is.NoErr(err)
	is.Equal(s, defaultServer)
	is.Equal(asked, 1)

	s, err = resolveServer("https://piano.example", ask)
	is.NoErr(err)
	is.Equal(s, "https://piano.example")

	// a flag or environment value is checked like a typed one
	for _, bad := range []string{"ftp://piano.example", "localhost:8888", "http://"} {
		_, err = resolveServer(bad, ask)
		is.True(err != nil)
	}
	is.Equal(asked, 1)

	cancelled := errors.New("^C")
	_, err = resolveServer("", func() (string, error) { return "", cancelled })
	is.True(errors.Is(err, cancelled))
}
