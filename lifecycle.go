package mobileconfig

import "context"

// Install installs the configuration profile at path through the
// system utility. The installed state change is entirely owned by the
// utility; a non-zero exit is surfaced as an ExecutionError.
func (c *Client) Install(ctx context.Context, path string) error {
	status, err := c.runner.Run(ctx, profilesPath, "-I", "-F", path)
	if err != nil {
		return err
	}
	if status != 0 {
		return &ExecutionError{Op: "install profile at", Subject: path, Status: status}
	}

	c.log.Info().Str("path", path).Msg("installed profile")
	return nil
}

// Remove removes the installed profile with the given identifier.
func (c *Client) Remove(ctx context.Context, identifier string) error {
	status, err := c.runner.Run(ctx, profilesPath, "-R", "-p", identifier)
	if err != nil {
		return err
	}
	if status != 0 {
		return &ExecutionError{Op: "remove profile", Subject: identifier, Status: status}
	}

	c.log.Info().Str("identifier", identifier).Msg("removed profile")
	return nil
}
