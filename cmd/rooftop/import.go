package main

import (
	"fmt"
	"os"

	"github.com/rooftopcms/rooftop"
	"gopkg.in/yaml.v3"
)

// fixture is the YAML document read by the import command. Contents are
// created in file order, so parents must come before their children.
type fixture struct {
	Contents []*rooftop.Content `yaml:"contents"`
	Menus    []*rooftop.Menu    `yaml:"menus"`
}

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	b, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	var fx fixture
	if err := yaml.Unmarshal(b, &fx); err != nil {
		err = rooftop.Errorf(rooftop.EINVALID, "invalid fixture %s: %v", c.File, err)
		fmt.Fprintf(deps.Stderr, "error: %s\n", rooftop.ErrorMessage(err))
		return err
	}

	for i, content := range fx.Contents {
		if err := deps.Contents.CreateContent(deps.Ctx, content); err != nil {
			fmt.Fprintf(deps.Stderr, "error: content %d (%s): %s\n", i+1, content.Slug, rooftop.ErrorMessage(err))
			return err
		}
	}

	for _, menu := range fx.Menus {
		if err := deps.Menus.CreateMenu(deps.Ctx, menu); err != nil {
			fmt.Fprintf(deps.Stderr, "error: menu %q: %s\n", menu.Slug, rooftop.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Imported %d content items and %d menus\n", len(fx.Contents), len(fx.Menus))
	return nil
}
