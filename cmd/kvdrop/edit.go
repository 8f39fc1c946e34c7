package main

import (
	"fmt"

	"github.com/fwojciec/kvdrop"
)

// Run executes the set command.
func (c *SetCmd) Run(deps *Dependencies) error {
	field, err := kvdrop.ParseField(c.Field)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kvdrop.ErrorMessage(err))
		return err
	}

	ok, err := deps.Workspace.Update(deps.Ctx, c.ID, field, c.Value)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kvdrop.ErrorMessage(err))
		return err
	}
	if !ok {
		fmt.Fprintf(deps.Stderr, "error: record %q not found. Use 'kvdrop list' to see record IDs.\n", c.ID)
		return kvdrop.Errorf(kvdrop.ENOTFOUND, "record %q not found", c.ID)
	}

	fmt.Fprintf(deps.Stdout, "Updated %s of record %s\n", field, c.ID)
	return nil
}

// Run executes the remove command.
func (c *RemoveCmd) Run(deps *Dependencies) error {
	notice, err := deps.Workspace.Remove(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kvdrop.ErrorMessage(err))
		return err
	}
	if notice == nil {
		fmt.Fprintf(deps.Stderr, "error: record %q not found. Use 'kvdrop list' to see record IDs.\n", c.ID)
		return kvdrop.Errorf(kvdrop.ENOTFOUND, "record %q not found", c.ID)
	}

	printNotices(deps.Stdout, []kvdrop.Notice{*notice})
	return nil
}

// Run executes the clear command.
func (c *ClearCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm clearing all data\n")
		return kvdrop.Errorf(kvdrop.EINVALID, "use --force to confirm clearing all data")
	}

	notice, err := deps.Workspace.Clear(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kvdrop.ErrorMessage(err))
		return err
	}

	printNotices(deps.Stdout, []kvdrop.Notice{*notice})
	return nil
}

// Run executes the name command.
func (c *NameCmd) Run(deps *Dependencies) error {
	if err := deps.Workspace.Rename(deps.Ctx, c.Name); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kvdrop.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Dataset name set to %q\n", c.Name)
	return nil
}
