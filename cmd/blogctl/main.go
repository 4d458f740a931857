package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"blog-server/blogclient"
	"blog-server/httpclient"
	"blog-server/logger"
)

const defaultServer = "http://localhost:5000"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes blogctl with args and returns the exit code.
func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	global := flag.NewFlagSet("blogctl", flag.ContinueOnError)
	global.SetInterspersed(false)
	global.SetOutput(io.Discard)
	server := global.String("server", envOr("BLOG_API_URL", defaultServer), "Blog API base URL")
	logLevel := global.String("log-level", "error", "Log level of HTTP request logging")

	cmds := commands()
	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(out, global, cmds)
			return 0
		}
		fmt.Fprintln(errOut, "error:", err)
		printUsage(errOut, global, cmds)
		return 1
	}
	logger.Init("blogctl", *logLevel)

	rest := global.Args()
	if len(rest) == 0 {
		printUsage(errOut, global, cmds)
		return 1
	}

	env := &Env{
		Client: blogclient.New(*server, httpclient.NewDefault()),
		Out:    out,
		Err:    errOut,
	}
	for _, c := range cmds {
		if c.Name() == rest[0] {
			return c.Run(ctx, env, rest[1:])
		}
	}
	fmt.Fprintf(errOut, "error: unknown command %q\n", rest[0])
	printUsage(errOut, global, cmds)
	return 1
}

func printUsage(w io.Writer, global *flag.FlagSet, cmds []*Command) {
	fmt.Fprintln(w, "Usage: blogctl [--server URL] <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range cmds {
		fmt.Fprintln(w, c.HelpLine())
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global flags:")
	global.SetOutput(w)
	global.PrintDefaults()
	global.SetOutput(io.Discard)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
