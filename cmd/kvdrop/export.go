package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/kvdrop"
	"github.com/fwojciec/kvdrop/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	format := kvdrop.Format(strings.ToLower(c.Format))

	doc, notice, err := deps.Workspace.Export(deps.Ctx, format)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kvdrop.ErrorMessage(err))
		return err
	}

	path, changed, err := fs.NewWriter(c.Out).WriteDocument(deps.Ctx, doc)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kvdrop.ErrorMessage(err))
		return err
	}

	printNotices(deps.Stdout, []kvdrop.Notice{*notice})
	if changed {
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
	} else {
		fmt.Fprintf(deps.Stdout, "Unchanged %s\n", path)
	}
	return nil
}
