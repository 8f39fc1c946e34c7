package main

import "fmt"

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	records := deps.Workspace.Store.Records()
	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No records found. Use 'kvdrop drop' to add some.")
		return nil
	}

	printRecords(deps.Stdout, records)
	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	ds := deps.Workspace.Dataset()
	name := ds.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(deps.Stdout, "Dataset: %s\nRecords: %d\n", name, len(ds.Records))
	return nil
}
