package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/goliatone/go-convert/cmd/convert/internal/bootstrap"
	"github.com/goliatone/go-convert/internal/commands"
	"github.com/goliatone/go-convert/internal/commands/convertcmd"
)

func main() {
	if err := runExtract(os.Args[1:]); err != nil {
		log.Fatalf("convert extract: %v", err)
	}
}

func runExtract(args []string) error {
	fs := flag.NewFlagSet("convert-extract", flag.ExitOnError)
	file := fs.String("file", "", "Native file to convert (html, odt, idml, rc)")
	format := fs.String("format", "", "Format id; empty uses autoload detection on the filename")
	out := fs.String("out", "", "Destination for the JSON unit dump")
	logLevel := fs.String("log-level", "info", "Log level (trace..fatal)")
	logFormat := fs.String("log-format", "console", "Log output format (console, json, pretty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := bootstrap.Build(bootstrap.Options{LogLevel: *logLevel, LogFormat: *logFormat})
	if err != nil {
		return err
	}

	handler := convertcmd.NewExtractFileHandler(
		module.Registry,
		commands.CommandLogger(module.Provider, "extract"),
	)
	return handler.Execute(context.Background(), convertcmd.ExtractFileCommand{
		Path:       *file,
		Format:     *format,
		OutputPath: *out,
	})
}
