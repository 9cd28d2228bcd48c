// Package cli implements a line-oriented driver for a bptree.Tree. Commands
// are read one per line, so a session can be typed or piped in.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"

	"github.com/alexhholmes/bptree"
)

type Cli struct {
	scanner *bufio.Scanner
	out     io.Writer
	tree    *bptree.Tree

	internal *color.Color
	leaf     *color.Color
	fail     *color.Color
	ok       *color.Color

	prompt bool
}

func NewCli(in io.Reader, out io.Writer, t *bptree.Tree) *Cli {
	return &Cli{
		scanner:  bufio.NewScanner(in),
		out:      out,
		tree:     t,
		internal: color.New(color.FgCyan, color.Bold),
		leaf:     color.New(color.FgGreen),
		fail:     color.New(color.FgRed),
		ok:       color.New(color.FgYellow),
		prompt:   true,
	}
}

// DisableColor turns off escape sequences, for output that is not a
// terminal.
func (c *Cli) DisableColor() {
	for _, col := range []*color.Color{c.internal, c.leaf, c.fail, c.ok} {
		col.DisableColor()
	}
}

// DisablePrompt stops the banner and "> " prompts, for scripted input.
func (c *Cli) DisablePrompt() {
	c.prompt = false
}

// Start processes commands until EXIT or end of input.
func (c *Cli) Start() error {
	if c.prompt {
		c.printHelp()
		c.printPrompt()
	}
	for c.scanner.Scan() {
		if !c.processInput(c.scanner.Text()) {
			return nil
		}
		if c.prompt {
			c.printPrompt()
		}
	}
	return c.scanner.Err()
}

func (c *Cli) printHelp() {
	fmt.Fprintf(c.out, `
B+ Tree CLI (order %d)

Available Commands:
  SET <key> <val> Insert or update a key-value pair
  DEL <key>       Remove a key
  GET <key>       Retrieve the value for key
  DUMP            Print every node, level by level
  CHECK           Verify the tree invariants and print its checksum
  HELP            Show this message
  EXIT            Terminate this session

`, c.tree.Order())
}

func (c *Cli) printPrompt() {
	fmt.Fprint(c.out, "> ")
}

// processInput runs one command line and reports whether to keep going.
func (c *Cli) processInput(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return true
	}
	command := strings.ToLower(fields[0])
	switch command {
	default:
		c.fail.Fprintf(c.out, "Unknown command %q\n", command)
	case "set":
		c.processSetCommand(fields[1:])
	case "del":
		c.processDeleteCommand(fields[1:])
	case "get":
		c.processGetCommand(fields[1:])
	case "dump":
		c.printDump()
	case "check":
		c.processCheckCommand()
	case "help":
		c.printHelp()
	case "exit", "quit":
		return false
	}
	return true
}

func (c *Cli) processSetCommand(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.out, "Usage: SET <key> <value>")
		return
	}
	key, ok := c.parseInt(args[0])
	if !ok {
		return
	}
	value, ok := c.parseInt(args[1])
	if !ok {
		return
	}

	res, err := c.tree.Insert(key, value)
	if err != nil {
		c.fail.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	c.ok.Fprintf(c.out, "%s %d\n", res, key)
}

func (c *Cli) processDeleteCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: DEL <key>")
		return
	}
	key, ok := c.parseInt(args[0])
	if !ok {
		return
	}

	err := c.tree.Remove(key)
	switch {
	case errors.Is(err, bptree.ErrEmptyTree):
		c.fail.Fprintln(c.out, "Tree is empty.")
	case errors.Is(err, bptree.ErrKeyNotFound):
		c.fail.Fprintln(c.out, "Key not found.")
	case err != nil:
		c.fail.Fprintf(c.out, "Error: %v\n", err)
	default:
		c.ok.Fprintf(c.out, "removed %d\n", key)
	}
}

func (c *Cli) processGetCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: GET <key>")
		return
	}
	key, ok := c.parseInt(args[0])
	if !ok {
		return
	}

	value, found := c.tree.Search(key)
	if !found {
		c.fail.Fprintln(c.out, "Key not found.")
		return
	}
	fmt.Fprintln(c.out, value)
}

func (c *Cli) processCheckCommand() {
	if err := c.tree.Verify(); err != nil {
		c.fail.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	c.ok.Fprintf(c.out, "ok keys=%d nodes=%d depth=%d checksum=%016x\n",
		c.tree.Len(), c.tree.NodeCount(), c.tree.Depth(), c.tree.Checksum())
}

// printDump colours the dump lines by node kind.
func (c *Cli) printDump() {
	for _, line := range strings.Split(strings.TrimSuffix(c.tree.Dump(), "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "internal"):
			c.internal.Fprintln(c.out, line)
		case strings.HasPrefix(line, "leaf"):
			c.leaf.Fprintln(c.out, line)
		default:
			fmt.Fprintln(c.out, line)
		}
	}
}

func (c *Cli) parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		c.fail.Fprintf(c.out, "Invalid integer %q\n", s)
		return 0, false
	}
	return n, true
}
