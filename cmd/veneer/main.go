package main

import (
	"fmt"
	"os"

	"github.com/agiangrant/veneer/cmd/veneer/commands"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "replay":
		err = commands.Replay(args, os.Stdout)
	case "init":
		err = commands.Init(args, os.Stdout)
	case "theme":
		err = commands.Theme(args, os.Stdout)
	case "version", "-v", "--version":
		fmt.Printf("veneer version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`veneer - retained-mode UI toolkit CLI

Usage: veneer <command> [options]

Commands:
  replay    Run a scripted session against the demo app and print frames
  init      Write a default veneer.toml
  theme     Check a theme file and print its resolved palette
  version   Print version information
  help      Show this help message

Examples:
  veneer replay session.yaml           Replay a YAML script
  veneer replay -frames session.toml   Print every frame's commands
  veneer init -format yaml             Write veneer.yaml instead
  veneer theme brand.toml              Validate a theme

Configuration:
  Apps read veneer.toml (or veneer.yaml) from the working directory.
  VENEER_LOG_LEVEL, VENEER_LOG_FORMAT and VENEER_LOG_FILE override logging.`)
}
