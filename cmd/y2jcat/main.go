// Command y2jcat is a small demo CLI: it reads a YAML or JSON file and
// writes the opposite format to stdout, choosing direction from the
// file extension. It contains no business logic beyond that dispatch -
// every conversion decision is made by the exported yamljson API.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/corewell/yamljson"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

func _main(args []string) error {
	if len(args) < 2 {
		return errors.New("y2jcat: usage: y2jcat [--highlight] file.yml|file.json")
	}

	var (
		filename  string
		highlight bool
	)
	for _, a := range args[1:] {
		if a == "--highlight" {
			highlight = true
			continue
		}
		filename = a
	}
	if filename == "" {
		return errors.New("y2jcat: usage: y2jcat [--highlight] file.yml|file.json")
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	src := string(data)

	var out string
	if strings.HasSuffix(filename, ".json") {
		out, err = yamljson.JSONTextToYAMLText(src)
	} else {
		out, err = yamljson.YAMLToJSONText(src)
	}
	if err != nil {
		colored := isatty.IsTerminal(os.Stdout.Fd())
		if highlight {
			fmt.Fprintln(os.Stderr, yamljson.FormatError(err, colored, src))
			return nil
		}
		return err
	}

	writer := colorable.NewColorableStdout()
	fmt.Fprintln(writer, out)
	return nil
}

func main() {
	if err := _main(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
