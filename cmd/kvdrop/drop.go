package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/kvdrop"
)

// Run executes the drop command.
func (c *DropCmd) Run(deps *Dependencies) error {
	sources := []struct {
		contentType string
		path        string
	}{
		{kvdrop.ContentTypeJSON, c.JSON},
		{kvdrop.ContentTypeHTML, c.HTML},
		{kvdrop.ContentTypeXHTML, c.XHTML},
		{kvdrop.ContentTypeText, c.Text},
	}

	data := make(map[string]string)
	for _, src := range sources {
		if src.path == "" {
			continue
		}
		content, err := readSource(src.path, deps.Stdin)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		data[src.contentType] = content
	}
	if len(data) == 0 {
		fmt.Fprintln(deps.Stderr, "error: provide at least one of --json, --html, --xhtml or --text")
		return kvdrop.Errorf(kvdrop.EINVALID, "no payload given")
	}

	drop, err := deps.Workspace.Drop(deps.Ctx, kvdrop.NewPayload(data))
	if drop != nil {
		printNotices(deps.Stderr, drop.Notices)
	}
	if err != nil {
		if kvdrop.ErrorCode(err) != kvdrop.ENODATA {
			fmt.Fprintf(deps.Stderr, "error: %s\n", kvdrop.ErrorMessage(err))
		}
		return err
	}

	printRecords(deps.Stdout, drop.Records)
	return nil
}

// readSource reads a payload file, or r when path is "-".
func readSource(path string, r io.Reader) (string, error) {
	if path == "-" {
		if r == nil {
			return "", fmt.Errorf("no standard input available")
		}
		b, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(b), nil
}
