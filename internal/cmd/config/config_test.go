package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyphengolang/prelude/testing/is"

	"github.com/rapidmidiex/pianoweb/internal/piano"
)

func lookup(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	is := is.New(t)

	c, err := FromLookup(lookup(nil))
	is.NoErr(err)
	is.Equal(c.Server.Port, "8888")
	is.Equal(c.Addr(), ":8888")
	is.Equal(c.Demo, piano.Minigames)
	is.Equal(c.Notes.Debounce, 100*time.Millisecond)
	is.Equal(c.Notes.MaxConn, uint(0))
	is.True(!c.Dev)
}

func TestOverrides(t *testing.T) {
	is := is.New(t)

	c, err := FromLookup(lookup(map[string]string{
		"PORT":                  "9003",
		"PIANO_DEMO":            "Training",
		"PIANO_DEBOUNCE":        "250ms",
		"PIANO_MAX_CONN":        "8",
		"PIANO_ALLOWED_ORIGINS": "http://piano.local, ,http://10.42.0.119:*",
		"DEV":                   "true",
	}))
	is.NoErr(err)
	is.Equal(c.Server.Port, "9003")
	is.Equal(c.Demo, piano.Training)
	is.Equal(c.Notes.Debounce, 250*time.Millisecond)
	is.Equal(c.Notes.MaxConn, uint(8))
	is.Equal(c.Server.AllowedOrigins, []string{"http://piano.local", "http://10.42.0.119:*"})
	is.True(c.Dev)
}

func TestInvalid(t *testing.T) {
	tt := map[string]struct {
		env map[string]string
		err error
	}{
		"port":     {map[string]string{"PORT": "eighty"}, ErrInvalidPort},
		"range":    {map[string]string{"PORT": "70000"}, ErrInvalidPort},
		"demo":     {map[string]string{"PIANO_DEMO": "karaoke"}, piano.ErrUnknownDemo},
		"debounce": {map[string]string{"PIANO_DEBOUNCE": "-1s"}, ErrInvalidDebounce},
		"max conn": {map[string]string{"PIANO_MAX_CONN": "lots"}, ErrInvalidMaxConn},
	}

	for name, tc := range tt {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)

			c, err := FromLookup(lookup(tc.env))
			is.True(errors.Is(err, tc.err))
			is.True(c == nil)
		})
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	is := is.New(t)

	dir := t.TempDir()
	is.NoErr(os.WriteFile(filepath.Join(dir, "piano.env"), []byte("PIANO_DEMO=training\nPIANO_MAX_CONN=3\n"), 0o600))

	saved := EnvFiles
	EnvFiles = []string{filepath.Join(dir, "piano.env"), filepath.Join(dir, "missing.env")}
	t.Cleanup(func() { EnvFiles = saved })

	t.Setenv("PIANO_DEMO", "")
	os.Unsetenv("PIANO_DEMO")
	t.Setenv("PIANO_MAX_CONN", "5") // the environment wins over the file

	c, err := LoadFromEnv()
	is.NoErr(err)
	is.Equal(c.Demo, piano.Training)
	is.Equal(c.Notes.MaxConn, uint(5))
}
