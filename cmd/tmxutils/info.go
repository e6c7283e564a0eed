package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/eak1mov/go-libtmx/texture"
	"github.com/eak1mov/go-libtmx/tmx"
	"github.com/google/subcommands"
)

type infoCmd struct {
	inputPath   string
	texturesDir string
	strictCSV   bool
	verbose     bool
}

func (c *infoCmd) Name() string     { return "info" }
func (c *infoCmd) Synopsis() string { return "print a summary of a map" }
func (c *infoCmd) Usage() string {
	return "tmxutils info -i <path> [-textures <dir> -strict -v]\n"
}
func (c *infoCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input map path")
	f.StringVar(&c.texturesDir, "textures", "", "Directory of tileset images")
	f.BoolVar(&c.strictCSV, "strict", false, "Reject csv layers with a wrong number of tiles")
	f.BoolVar(&c.verbose, "v", false, "Verbose logging")
}

func (c *infoCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	logger := newLogger(c.verbose)
	opts := []tmx.Option{tmx.WithLogger(logger), tmx.WithStrictCSV(c.strictCSV)}

	if c.texturesDir != "" {
		textures, err := texture.LoadDir(c.texturesDir,
			texture.WithPrefix(filepath.ToSlash(c.texturesDir)),
			texture.WithLogger(logger))
		if err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
		opts = append(opts, tmx.WithTextures(textures))
	}

	m, err := tmx.Load(c.inputPath, opts...)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(summarize(m)); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
