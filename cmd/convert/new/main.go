package main

import (
	"flag"
	"log"
	"os"

	convert "github.com/goliatone/go-convert"
)

func main() {
	if err := runNew(os.Args[1:]); err != nil {
		log.Fatalf("convert new: %v", err)
	}
}

// runNew creates a translation file for a new target language. Convert
// formats cannot generate files from scratch, so a base file is mandatory
// and is byte-copied to the destination.
func runNew(args []string) error {
	fs := flag.NewFlagSet("convert-new", flag.ExitOnError)
	out := fs.String("out", "", "Destination path for the new translation file")
	language := fs.String("language", "", "Target language code (BCP-47 or underscore style)")
	base := fs.String("base", "", "Existing file to copy as the starting point")

	if err := fs.Parse(args); err != nil {
		return err
	}

	return convert.CreateNewFile(*out, *language, *base)
}
