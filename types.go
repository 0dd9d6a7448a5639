package mobileconfig

import "time"

// Payload is one configuration unit nested inside a profile document.
// Keys are the well-known Payload* strings plus whatever settings the
// payload type defines.
type Payload map[string]any

// Document is a full .mobileconfig profile document, ready to be
// serialized as an XML property list.
type Document map[string]any

// Inventory is the output of the system profile listing: a map from an
// installation domain ("_computerlevel", or a user name) to the
// profiles installed under it.
type Inventory map[string][]InstalledProfile

// InstalledProfile is one record of the system profile listing. It is
// only ever parsed, never built by this package.
type InstalledProfile struct {
	// The stable identifier the profile was installed under. This is
	// the primary key for existence checks.
	ProfileIdentifier string
	// The document UUID reported by the system.
	ProfileUUID         string    `plist:",omitempty"`
	ProfileDisplayName  string    `plist:",omitempty"`
	ProfileDescription  string    `plist:",omitempty"`
	ProfileOrganization string    `plist:",omitempty"`
	ProfileType         string    `plist:",omitempty"`
	ProfileInstallDate  time.Time `plist:",omitempty"`
	// The payloads carried by the profile, as reported by the system.
	ProfileItems []ProfileItem `plist:",omitempty"`
}

// ProfileItem is a payload summary inside an InstalledProfile.
type ProfileItem struct {
	PayloadType        string
	PayloadIdentifier  string `plist:",omitempty"`
	PayloadUUID        string `plist:",omitempty"`
	PayloadDisplayName string `plist:",omitempty"`
	PayloadVersion     int    `plist:",omitempty"`
}
