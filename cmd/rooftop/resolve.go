package main

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/rooftopcms/rooftop"
	"github.com/rooftopcms/rooftop/resolve"
)

// Run executes the resolve command.
func (c *ResolveCmd) Run(deps *Dependencies) error {
	host := c.Host
	if host == "" {
		if u, err := url.Parse(c.URL); err == nil {
			host = u.Host
		}
	}
	if host == "" {
		err := rooftop.Errorf(rooftop.EINVALID, "--host is required for URLs without a host")
		fmt.Fprintf(deps.Stderr, "error: %s\n", rooftop.ErrorMessage(err))
		return err
	}

	mode := rooftop.ResolveByURL
	if c.ByPath {
		mode = rooftop.ResolveByPath
	}

	target, err := resolve.NewResolver(deps.Lookup, resolve.WithMode(mode)).Resolve(deps.Ctx, c.URL, host)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", rooftop.ErrorMessage(err))
		return err
	}

	b, err := json.Marshal(target)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "%s\t%s\n", target.Kind, b)
	return nil
}
