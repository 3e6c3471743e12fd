package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lanchat/pkg/semver"
)

type (
	// Options - role and overrides picked on the command line; process
	// defaults come from LANCHAT_* environment variables.
	Options struct {
		// Server - start as the broadcast relay.
		Server bool
		// ServerAddr - the relay address a client connects to.
		ServerAddr string
		// Pseudonym - non-interactive pseudonym for the client role.
		Pseudonym string
	}
)

var (
	// Opts - current command line options
	Opts = Options{}

	// BinaryName - name of run application binary
	BinaryName = strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))

	// Version - app version fingerprint
	Version = semver.V{Minor: 2, PreRelease: ""}.String()
)

func init() {
	out := flag.CommandLine.Output()
	printUsage := func() {
		fmt.Fprintf(out, "Text chat over TCP for trusted local networks\n\n\t%s [options]\nOptions:\n\n", BinaryName)
		flag.PrintDefaults()
		fmt.Fprint(out, "\n")
	}
	printError := func(msg string) {
		fmt.Fprintf(out, "%s (v%s) error:\n\n\t%s\n", BinaryName, Version, msg)
	}

	help := false
	flag.BoolVar(&help, "help", false, "Print usage help")
	flag.BoolVar(&Opts.Server, "i", false, "Start as the broadcast server and print the bindable address")
	flag.BoolVar(&Opts.Server, "server", false, "Same as -i")
	flag.StringVar(&Opts.ServerAddr, "s", "", "The address of the target server to chat through")
	flag.StringVar(&Opts.Pseudonym, "p", "", "Your pseudonym; the client prompts when omitted")

	flag.Parse()

	if help {
		printUsage()
		os.Exit(0)
	}

	if !Opts.Server && Opts.ServerAddr == "" {
		printError("provide a target server address with -s, or start a server with -i")
		fmt.Fprint(out, "\n")
		printUsage()
		os.Exit(1)
	}

	if Opts.Server && Opts.ServerAddr != "" {
		printError("-i and -s are mutually exclusive")
		os.Exit(1)
	}
}
