package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/kvdrop"
	"github.com/fwojciec/kvdrop/workspace"
)

// Storage backends.
const (
	backendSQLite = "sqlite"
	backendFS     = "fs"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Workspace *workspace.Workspace

	// Watcher is only available with the fs backend.
	Watcher kvdrop.SnapshotWatcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Backend string `enum:"sqlite,fs" default:"sqlite" help:"Storage backend (sqlite or fs)"`
	Verbose bool   `short:"v" help:"Log to stderr"`

	Drop   DropCmd   `cmd:"" help:"Extract key-value pairs from dropped content"`
	List   ListCmd   `cmd:"" help:"List all records"`
	Set    SetCmd    `cmd:"" help:"Edit the key or value of a record"`
	Remove RemoveCmd `cmd:"" help:"Remove a record"`
	Clear  ClearCmd  `cmd:"" help:"Remove all records and the dataset name"`
	Name   NameCmd   `cmd:"" help:"Set the dataset name"`
	Show   ShowCmd   `cmd:"" help:"Show the dataset name and record count"`
	Export ExportCmd `cmd:"" help:"Export the dataset to a file"`
	Watch  WatchCmd  `cmd:"" help:"Print records whenever stored data changes (fs backend)"`
}

// DropCmd is the "drop" subcommand.
type DropCmd struct {
	JSON  string `name:"json" placeholder:"FILE" help:"Structured JSON payload ('-' for stdin)"`
	HTML  string `name:"html" placeholder:"FILE" help:"HTML markup payload ('-' for stdin)"`
	XHTML string `name:"xhtml" placeholder:"FILE" help:"XHTML markup payload ('-' for stdin)"`
	Text  string `name:"text" placeholder:"FILE" help:"Plain text payload ('-' for stdin)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// SetCmd is the "set" subcommand.
type SetCmd struct {
	ID    string `arg:"" help:"Record ID"`
	Field string `arg:"" enum:"key,value" help:"Field to edit (key or value)"`
	Value string `arg:"" help:"New content"`
}

// RemoveCmd is the "remove" subcommand.
type RemoveCmd struct {
	ID string `arg:"" help:"Record ID"`
}

// ClearCmd is the "clear" subcommand.
type ClearCmd struct {
	Force bool `help:"Confirm clearing"`
}

// NameCmd is the "name" subcommand.
type NameCmd struct {
	Name string `arg:"" help:"Dataset name"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct{}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Format string `arg:"" help:"Export format (json, csv, yaml, xlsx)"`
	Out    string `short:"o" default:"." type:"path" help:"Output directory"`
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct{}

// printNotices writes one line per notice.
func printNotices(w io.Writer, notices []kvdrop.Notice) {
	for _, n := range notices {
		fmt.Fprintf(w, "%s: %s\n", n.Severity, n.Message)
	}
}

// printRecords writes one line per record.
func printRecords(w io.Writer, records []kvdrop.Record) {
	for _, r := range records {
		fmt.Fprintf(w, "%s  %s  %s\n", r.ID, r.Key, r.Value)
	}
}
