package main

import (
	"fmt"

	"github.com/fwojciec/kvdrop"
)

// Run executes the watch command.
func (c *WatchCmd) Run(deps *Dependencies) error {
	if deps.Watcher == nil {
		fmt.Fprintln(deps.Stderr, "error: watch requires --backend fs")
		return kvdrop.Errorf(kvdrop.EINVALID, "watch requires --backend fs")
	}

	printSnapshot := func(snap kvdrop.Snapshot) {
		name := snap.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(deps.Stdout, "-- %s (%d records)\n", name, len(snap.Records))
		printRecords(deps.Stdout, snap.Records)
	}

	printSnapshot(deps.Workspace.Store.Snapshot())
	return deps.Watcher.Watch(deps.Ctx, func(snap kvdrop.Snapshot) {
		deps.Workspace.Store.Restore(snap)
		printSnapshot(snap)
	})
}
