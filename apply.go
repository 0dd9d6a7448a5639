package mobileconfig

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ApplyResult reports what Apply decided for one definition.
type ApplyResult struct {
	Identifier string
	UUID       string
	Digest     string
	// Changed is true when the profile was (re)installed, false when
	// the installed profile already matched the definition.
	Changed bool
}

// Apply brings the machine in line with a profile definition: the
// document is generated, fingerprinted, and installed unless the same
// content is already installed. A nil store disables change tracking
// and always reinstalls.
func (c *Client) Apply(ctx context.Context, def Definition, store Store) (*ApplyResult, error) {
	profileUUID := def.UUID
	if profileUUID == "" {
		profileUUID = uuid.NewString()
	}

	raw, err := Generate(def.Identifier, profileUUID, def.Options())
	if err != nil {
		return nil, err
	}

	digest, err := DocumentDigest(raw)
	if err != nil {
		return nil, err
	}

	result := &ApplyResult{Identifier: def.Identifier, UUID: profileUUID, Digest: digest}

	installed, err := c.Exists(ctx, def.Identifier)
	if err != nil {
		return nil, err
	}

	if installed && store != nil {
		record, err := store.GetProfile(ctx, def.Identifier)
		switch {
		case err == nil && record.Digest == digest:
			c.log.Debug().Str("identifier", def.Identifier).Msg("profile unchanged")
			return result, nil
		case err != nil && !errors.Is(err, ErrNotFound):
			return nil, err
		}
	}

	tmpdir, err := os.MkdirTemp("", "mobileconfig")
	if err != nil {
		return nil, fmt.Errorf("creating temporary directory: %w", err)
	}
	defer os.RemoveAll(tmpdir)

	path := filepath.Join(tmpdir, def.Identifier+".mobileconfig")
	if err := os.WriteFile(path, raw, 0600); err != nil {
		return nil, fmt.Errorf("writing profile document: %w", err)
	}

	if err := c.Install(ctx, path); err != nil {
		return nil, err
	}
	result.Changed = true

	if store != nil {
		record := ProfileRecord{
			Identifier:  def.Identifier,
			UUID:        profileUUID,
			Digest:      digest,
			InstalledAt: time.Now().UTC(),
		}
		if err := store.SaveProfile(ctx, record); err != nil {
			return nil, fmt.Errorf("recording installed profile: %w", err)
		}
	}

	return result, nil
}
