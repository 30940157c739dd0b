package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/rooftopcms/rooftop"
	"github.com/rooftopcms/rooftop/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	DB       *sqlite.DB
	Contents rooftop.ContentService
	Menus    rooftop.MenuService
	Lookup   rooftop.ContentLookup
	Fetcher  rooftop.Fetcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	LogLevel string `name:"log-level" default:"info" enum:"debug,info,warn,error" env:"ROOFTOP_LOG_LEVEL" help:"Log level (${enum})"`

	Serve   ServeCmd   `cmd:"" help:"Serve sanitised content over HTTP"`
	Rewrite RewriteCmd `cmd:"" help:"Rewrite internal links in an HTML fragment"`
	Resolve ResolveCmd `cmd:"" help:"Show what a URL resolves to"`
	Import  ImportCmd  `cmd:"" help:"Import content and menus from a YAML file"`
	List    ListCmd    `cmd:"" help:"List stored content"`
	Audit   AuditCmd   `cmd:"" help:"Report internal links with no content behind them"`
}

// LinkFlags are shared by the commands that rewrite fragments.
type LinkFlags struct {
	Mode   string `default:"attributes" enum:"attributes,shortcode" env:"ROOFTOP_MODE" help:"Placeholder output mode (${enum})"`
	ByPath bool   `name:"by-path" env:"ROOFTOP_BY_PATH" help:"Find content by path segments instead of stored paths"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	LinkFlags `embed:""`

	Addr      string  `default:":8080" env:"ROOFTOP_ADDR" help:"Listen address"`
	NoLinks   bool    `name:"no-links" help:"Omit the link field from content responses"`
	RawHTML   bool    `name:"raw-html" help:"Skip HTML sanitising of content bodies"`
	RPS       float64 `name:"rps" default:"0" env:"ROOFTOP_RPS" help:"Requests per second allowed per client, 0 disables limiting"`
	Burst     int     `default:"20" env:"ROOFTOP_BURST" help:"Request burst allowed per client"`
	NoMetrics bool    `name:"no-metrics" help:"Do not serve /metrics"`

	Refresh time.Duration `default:"30s" env:"ROOFTOP_REFRESH" help:"How often to reload content paths from the database, 0 disables"`
}

// RewriteCmd is the "rewrite" subcommand.
type RewriteCmd struct {
	LinkFlags `embed:""`

	Source string `arg:"" optional:"" help:"File path or http(s) URL to read, stdin when omitted or -"`
	Prefix string `required:"" env:"ROOFTOP_PREFIX" help:"Local host prefix, e.g. https://example.com"`
}

// ResolveCmd is the "resolve" subcommand.
type ResolveCmd struct {
	URL    string `arg:"" help:"URL to resolve"`
	Host   string `help:"Request host, defaults to the URL's own host"`
	ByPath bool   `name:"by-path" env:"ROOFTOP_BY_PATH" help:"Find content by path segments instead of stored paths"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File string `arg:"" type:"existingfile" help:"YAML file with contents and menus"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Type   string `short:"t" help:"Only list content of this type"`
	Status string `short:"s" help:"Only list content with this status"`
}

// AuditCmd is the "audit" subcommand.
type AuditCmd struct {
	Prefix string `required:"" env:"ROOFTOP_PREFIX" help:"Local host prefix, e.g. https://example.com"`
	ByPath bool   `name:"by-path" env:"ROOFTOP_BY_PATH" help:"Find content by path segments instead of stored paths"`
}
