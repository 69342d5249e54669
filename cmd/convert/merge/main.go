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
	if err := runMerge(os.Args[1:]); err != nil {
		log.Fatalf("convert merge: %v", err)
	}
}

func runMerge(args []string) error {
	fs := flag.NewFlagSet("convert-merge", flag.ExitOnError)
	units := fs.String("units", "", "JSON unit dump produced by a prior extract")
	template := fs.String("template", "", "Original native file supplying structure")
	out := fs.String("out", "", "Destination for the merged native file")
	format := fs.String("format", "", "Format id; empty falls back to the dump's recorded format")
	logLevel := fs.String("log-level", "info", "Log level (trace..fatal)")
	logFormat := fs.String("log-format", "console", "Log output format (console, json, pretty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := bootstrap.Build(bootstrap.Options{LogLevel: *logLevel, LogFormat: *logFormat})
	if err != nil {
		return err
	}

	handler := convertcmd.NewMergeFileHandler(
		module.Registry,
		commands.CommandLogger(module.Provider, "merge"),
	)
	return handler.Execute(context.Background(), convertcmd.MergeFileCommand{
		UnitsPath:    *units,
		TemplatePath: *template,
		OutputPath:   *out,
		Format:       *format,
	})
}
