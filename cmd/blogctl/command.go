package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"blog-server/blogclient"
)

// Command is one blogctl subcommand.
type Command struct {
	// Flags are parsed from the arguments following the command name.
	Flags *flag.FlagSet

	// Usage starts with the command name, e.g. "show <id>".
	Usage string
	Short string

	Exec func(ctx context.Context, env *Env, args []string) error
}

// Env is what a command gets to work with.
type Env struct {
	Client *blogclient.Client
	Out    io.Writer
	Err    io.Writer
}

func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-24s %s", c.Usage, c.Short)
}

func (c *Command) PrintHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: blogctl", c.Usage)
	fmt.Fprintln(w)
	fmt.Fprintln(w, c.Short)
	if c.Flags != nil && c.Flags.HasFlags() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Flags:")
		c.Flags.SetOutput(w)
		c.Flags.PrintDefaults()
	}
}

// Run parses flags and executes the command. It returns the exit code.
func (c *Command) Run(ctx context.Context, env *Env, args []string) int {
	c.Flags.SetOutput(io.Discard)

	if err := c.Flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(env.Out)
			return 0
		}
		fmt.Fprintln(env.Err, "error:", err)
		fmt.Fprintln(env.Err)
		c.PrintHelp(env.Err)
		return 1
	}

	if err := c.Exec(ctx, env, c.Flags.Args()); err != nil {
		fmt.Fprintln(env.Err, "error:", err)
		return 1
	}
	return 0
}
