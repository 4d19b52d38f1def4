package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/amberpixels/docblocks/internal/mdimport"
)

var in struct {
	Input  string `help:"Path to the Markdown file to convert." env:"INPUT_FILE" required:""`
	PageID string `help:"Page id the converted blocks attach under." env:"PAGE_ID" default:"root"`

	DevMode bool `help:"Dev mode (verbose logging, etc)" env:"DEV_MODE"`
}

func main() {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to read .env: " + err.Error())
	}

	kong.Parse(&in)

	if in.DevMode {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	source, err := os.ReadFile(in.Input)
	if err != nil {
		ExitWithError("couldn't read the source file", err)
	}

	importer := mdimport.NewImporter(mdimport.DefaultOptions())

	doc, err := importer.Import(in.PageID, string(source))
	if err != nil {
		ExitWithError("couldn't convert the given file", err)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		ExitWithError("couldn't marshal the resulting snapshot", err)
	}

	fmt.Println(string(out))
}

// ExitWithError outputs an error message and exits the program with a non-zero status code.
func ExitWithError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", msg, err)
	os.Exit(1)
}
