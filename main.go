package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"oneshot-fileserver/config"
	"oneshot-fileserver/server"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run serves exactly one connection on the port or service named by the
// single positional argument and returns the process exit status.
func run(args []string, stderr io.Writer) int {
	diag := log.New(stderr, "", 0)

	flags := flag.NewFlagSet("fileserve", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "YAML configuration file")
	linger := flags.Duration("linger", config.DefaultLinger, "pause before closing the connection")
	root := flags.String("root", "", "confine requested paths to this directory")
	strict := flags.Bool("strict", false, "validate the request line and require GET")
	verbose := flags.Bool("v", false, "log the exchange to stderr")
	flags.Usage = func() {
		diag.Print("usage: fileserve [options] <port|service>")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if flags.NArg() != 1 {
		diag.Print("Please enter one argument")
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		diag.Printf("config: %v", err)
		return 1
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "linger":
			cfg.Linger = *linger
		case "root":
			cfg.Root = *root
		case "strict":
			cfg.Strict = *strict
		case "v":
			cfg.Verbose = *verbose
		}
	})
	if err := cfg.Validate(); err != nil {
		diag.Printf("config: %v", err)
		return 1
	}

	logger := log.New(io.Discard, "serve ", log.LstdFlags)
	if cfg.Verbose {
		logger.SetOutput(stderr)
	}

	ep, err := server.Listen(flags.Arg(0), cfg.Backlog)
	if err != nil {
		diag.Print(err)
		return server.ExitCode(err)
	}
	defer ep.Close()
	logger.Printf("listening on %s backlog=%d", ep.Addr(), ep.Backlog())

	peer, err := ep.Accept()
	if err != nil {
		diag.Print(err)
		return server.ExitCode(err)
	}
	logger.Printf("accepted %s", peer.Addr)

	start := time.Now()
	srv := server.New(server.Options{
		FS:     cfg.Filesystem(),
		Window: cfg.Window,
		Linger: cfg.Linger,
		Strict: cfg.Strict,
		Logger: logger,
	})
	x := srv.Serve(peer)
	logger.Printf("done path=%q sent=%d in %s", x.Path, x.Sent, time.Since(start).Round(time.Millisecond))
	return 0
}
