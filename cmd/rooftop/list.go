package main

import (
	"fmt"

	"github.com/rooftopcms/rooftop"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := rooftop.ContentFilter{}
	if c.Type != "" {
		filter.Type = &c.Type
	}
	if c.Status != "" {
		filter.Status = &c.Status
	}

	contents, err := deps.Contents.FindContents(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", rooftop.ErrorMessage(err))
		return err
	}

	if len(contents) == 0 {
		fmt.Fprintln(deps.Stdout, "No content found. Use 'rooftop import' to add some.")
		return nil
	}

	for _, content := range contents {
		fmt.Fprintf(deps.Stdout, "%d  %s  %s  %s  %s\n", content.ID, content.Type, content.Status, content.Path, content.Title)
	}

	return nil
}
