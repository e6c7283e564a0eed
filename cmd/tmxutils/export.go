package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/eak1mov/go-libtmx/index"
	"github.com/eak1mov/go-libtmx/mapdb"
	"github.com/eak1mov/go-libtmx/tmx"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type exportIndexCmd struct {
	inputPath  string
	outputPath string
}

func (c *exportIndexCmd) Name() string     { return "export_index" }
func (c *exportIndexCmd) Synopsis() string { return "export the non-empty cells of a map as a binary index" }
func (c *exportIndexCmd) Usage() string {
	return "tmxutils export_index -i <path> -o <path>\n"
}
func (c *exportIndexCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input map path")
	f.StringVar(&c.outputPath, "o", "", "Output index file path")
}

func (c *exportIndexCmd) export(m *tmx.Map) error {
	items, err := index.FromMap(m)
	if err != nil {
		return err
	}

	file, err := os.Create(c.outputPath)
	if err != nil {
		return err
	}
	defer file.Close()
	writer := bufio.NewWriter(file)

	bar := progressbar.NewOptions(len(items), progressbar.OptionShowIts(), progressbar.OptionShowCount())
	const chunkSize = 4096
	for start := 0; start < len(items); start += chunkSize {
		chunk := items[start:min(start+chunkSize, len(items))]
		if err := index.WriteAll(chunk, writer); err != nil {
			return err
		}
		bar.Add(len(chunk))
	}
	bar.Finish()
	fmt.Println()

	if err := writer.Flush(); err != nil {
		return err
	}
	return file.Close()
}

func (c *exportIndexCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	m, err := tmx.Load(c.inputPath, tmx.WithLogger(newLogger(false)))
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	if err := c.export(m); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

type exportDBCmd struct {
	outputPath string
}

func (c *exportDBCmd) Name() string     { return "export_db" }
func (c *exportDBCmd) Synopsis() string { return "store maps in a SQLite database" }
func (c *exportDBCmd) Usage() string {
	return "tmxutils export_db -o <path> <map.tmx>...\n"
}
func (c *exportDBCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputPath, "o", "", "Output database path")
}

func (c *exportDBCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() == 0 {
		log.Println("no input maps")
		return subcommands.ExitUsageError
	}

	logger := newLogger(false)
	writer, err := mapdb.NewWriter(c.outputPath, mapdb.WithLogger(logger))
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	defer writer.Close()

	bar := progressbar.NewOptions(f.NArg(), progressbar.OptionShowIts(), progressbar.OptionShowCount())
	for _, inputPath := range f.Args() {
		m, err := tmx.Load(inputPath, tmx.WithLogger(logger))
		if err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}

		mapID, err := writer.WriteMap(m)
		if err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
		logger.Info("map stored", "path", inputPath, "map_id", mapID)
		bar.Add(1)
	}
	bar.Finish()
	fmt.Println()

	if err := writer.Finalize(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
