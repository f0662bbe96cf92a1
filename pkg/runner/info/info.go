package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/notes/pkg/store"
)

// Info prints where notes are kept and how many there are.
type Info struct {
	Config      *store.FileConfig
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv(store.ConfigPathEnv); override != "" {
		_, _ = fmt.Fprintln(out, store.ConfigPathEnv, "found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, store.ConfigPathEnv, "env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	configFile := n.Config.ConfigFile
	if configFile == "" {
		configFile = "(none)"
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("config file", configFile)
	tbl.AddRow("path", n.Config.BasePath())
	tbl.AddRow("driver", n.Config.Driver())
	tbl.AddRow("log level", n.Config.LogLevel)

	if n.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}
	notes, err := n.Persistence.FetchAll(ctx)
	if err != nil {
		return err
	}
	tbl.AddRow("notes", fmt.Sprint(len(notes)))
	_, _ = fmt.Fprintln(out, tbl)
	return nil
}
