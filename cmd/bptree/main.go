// Package main provides an interactive driver for the bptree package.
//
//	bptree -order 5 -log zap
//	printf 'SET 1 10\nSET 2 20\nDUMP\n' | bptree -script
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"github.com/alexhholmes/bptree"
	"github.com/alexhholmes/bptree/internal/cli"
	"github.com/alexhholmes/bptree/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns an exit code.
// This is separated from main() to facilitate testing.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bptree", flag.ContinueOnError)
	fs.SetOutput(stderr)

	order := fs.Int("order", bptree.DefaultOrder, "Branching factor (at least 4)")
	logKind := fs.String("log", "none", "Structural event logging: none, logrus, zap")
	script := fs.Bool("script", false, "Suppress banner and prompts")
	noColor := fs.Bool("no-color", false, "Disable colored output")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	opts := []bptree.Option{bptree.WithOrder(*order)}
	switch *logKind {
	case "none":
	case "logrus":
		l := logrus.New()
		l.SetOutput(stderr)
		l.SetLevel(logrus.DebugLevel)
		opts = append(opts, bptree.WithLogger(logger.NewLogrus(l)))
	case "zap":
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(stderr, "Error creating logger: %v\n", err)
			return 1
		}
		defer func() { _ = l.Sync() }()
		opts = append(opts, bptree.WithLogger(logger.NewZap(l)))
	default:
		fmt.Fprintf(stderr, "Error: unknown -log %q\n", *logKind)
		return 2
	}

	tree, err := bptree.New(opts...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	c := cli.NewCli(stdin, stdout, tree)
	if *script {
		c.DisablePrompt()
	}
	if *noColor || *script {
		c.DisableColor()
	}
	if err := c.Start(); err != nil {
		fmt.Fprintf(stderr, "Error reading input: %v\n", err)
		return 1
	}
	return 0
}
