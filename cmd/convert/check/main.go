package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	convert "github.com/goliatone/go-convert"
	"github.com/goliatone/go-convert/cmd/convert/internal/bootstrap"
	"github.com/goliatone/go-convert/internal/logging"
)

func main() {
	if err := runCheck(os.Args[1:]); err != nil {
		log.Fatalf("convert check: %v", err)
	}
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("convert-check", flag.ExitOnError)
	base := fs.String("base", "", "Candidate base file to validate")
	format := fs.String("format", "", "Format id; empty uses autoload detection on the filename")
	logLevel := fs.String("log-level", "warn", "Log level (trace..fatal)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := bootstrap.Build(bootstrap.Options{LogLevel: *logLevel})
	if err != nil {
		return err
	}

	var driver convert.Driver
	if *format != "" {
		driver, err = module.Registry.Get(*format)
		if err != nil {
			return err
		}
	} else {
		var ok bool
		driver, ok = module.Registry.Detect(*base)
		if !ok {
			return fmt.Errorf("no autoload match for %q", *base)
		}
	}

	reporter := logging.NewReporter(logging.ModuleLogger(module.Provider, "convert.check"))
	if !convert.IsValidBaseForNew(driver, *base, reporter) {
		fmt.Println("invalid")
		os.Exit(1)
	}
	fmt.Println("valid")
	return nil
}
