package mobileconfig

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/groob/plist"
)

// Items retrieves every installed profile in full, grouped by
// installation domain. The system utility only writes its listing to a
// file, so the call owns a temporary directory for its duration; the
// directory is removed on every return path.
func (c *Client) Items(ctx context.Context) (Inventory, error) {
	tmpdir, err := os.MkdirTemp("", "profiles")
	if err != nil {
		return nil, fmt.Errorf("creating temporary directory: %w", err)
	}
	defer os.RemoveAll(tmpdir)

	outPath := filepath.Join(tmpdir, "profiles.plist")
	status, err := c.runner.Run(ctx, profilesPath, "-P", "-o", outPath)
	if err != nil {
		return nil, err
	}
	if status != 0 {
		return nil, &ExecutionError{Op: "read profiles into", Subject: outPath, Status: status}
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("reading profile listing: %w", err)
	}

	var inventory Inventory
	if err := plist.Unmarshal(raw, &inventory); err != nil {
		return nil, fmt.Errorf("parsing profile listing: %w", err)
	}

	c.log.Debug().Int("domains", len(inventory)).Msg("read installed profiles")
	return inventory, nil
}

// Exists reports whether a profile with the given identifier is
// installed in any domain.
func (c *Client) Exists(ctx context.Context, identifier string) (bool, error) {
	inventory, err := c.Items(ctx)
	if err != nil {
		return false, err
	}

	for _, profiles := range inventory {
		for _, profile := range profiles {
			if profile.ProfileIdentifier == identifier {
				return true, nil
			}
		}
	}

	return false, nil
}
