package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rooftopcms/rooftop"
)

// Run executes the rewrite command.
func (c *RewriteCmd) Run(deps *Dependencies) error {
	mode, err := rooftop.ParseOutputMode(c.Mode)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", rooftop.ErrorMessage(err))
		return err
	}

	fragment, err := c.read(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", rooftop.ErrorMessage(err))
		return err
	}

	links := newLinkStack(deps.Lookup, c.ByPath, nil, deps.Logger)

	out, err := links.Rewriter.Rewrite(deps.Ctx, fragment, links.Resolver, c.Prefix, mode)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", rooftop.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, out)
	return nil
}

// read loads the fragment from a URL, a file or stdin.
func (c *RewriteCmd) read(deps *Dependencies) (string, error) {
	switch {
	case c.Source == "" || c.Source == "-":
		b, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	case strings.HasPrefix(c.Source, "http://"), strings.HasPrefix(c.Source, "https://"):
		if deps.Fetcher == nil {
			return "", rooftop.Errorf(rooftop.EINTERNAL, "no fetcher configured")
		}
		return deps.Fetcher.Fetch(deps.Ctx, c.Source)
	default:
		b, err := os.ReadFile(c.Source)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}
