package mobileconfig

import (
	"errors"
	"fmt"
)

const adPayloadType = "com.apple.DirectoryService.managed"

var errInvalidPayload = errors.New("invalid payload: missing PayloadType")

// Managed Active Directory configuration keys are ignored by the
// installer unless a companion <key>Flag boolean is also present, so
// every configured key needs its flag shoehorned in. See
// https://support.apple.com/kb/HT5981.
var adFlagKeys = map[string]struct{}{
	"ADAllowMultiDomainAuth":        {},
	"ADCreateMobileAccountAtLogin":  {},
	"ADDefaultUserShell":            {},
	"ADDomainAdminGroupList":        {},
	"ADForceHomeLocal":              {},
	"ADNamespace":                   {},
	"ADPacketEncrypt":               {},
	"ADPacketSign":                  {},
	"ADPreferredDCServer":           {},
	"ADRestrictDDNS":                {},
	"ADTrustChangePassIntervalDays": {},
	"ADUseWindowsUNCPath":           {},
	"ADWarnUserBeforeCreatingMA":    {},
}

// TransformContent normalizes the payloads of a profile document:
// each payload gets a content-derived PayloadUUID, a derived
// PayloadIdentifier when none was supplied, the mandatory
// PayloadEnabled/PayloadVersion keys, and the Active Directory flag
// keys where applicable. Input order is preserved and the input
// payloads are never mutated.
func TransformContent(content []Payload, identifier string) ([]Payload, error) {
	if len(content) == 0 {
		return []Payload{}, nil
	}

	transformed := make([]Payload, 0, len(content))
	for i, payload := range content {
		out, err := transformPayload(payload, identifier)
		if err != nil {
			return nil, fmt.Errorf("payload %d: %w", i, err)
		}
		transformed = append(transformed, out)
	}

	return transformed, nil
}

func transformPayload(payload Payload, identifier string) (Payload, error) {
	payloadType, ok := payload["PayloadType"].(string)
	if !ok || payloadType == "" {
		return nil, errInvalidPayload
	}

	// Stale ids are never trusted: the UUID is always recomputed from
	// the remaining content.
	out := make(Payload, len(payload)+4)
	for k, v := range payload {
		if k == "PayloadUUID" {
			continue
		}
		out[k] = v
	}

	hashed, err := contentUUID(out)
	if err != nil {
		return nil, err
	}

	if _, ok := out["PayloadIdentifier"]; !ok {
		out["PayloadIdentifier"] = identifier + "." + hashed
	}
	out["PayloadUUID"] = hashed
	out["PayloadEnabled"] = true
	out["PayloadVersion"] = 1

	if payloadType == adPayloadType {
		addActiveDirectoryFlags(out)
	}

	return out, nil
}

func addActiveDirectoryFlags(payload Payload) {
	var configured []string
	for k := range payload {
		if _, ok := adFlagKeys[k]; ok {
			configured = append(configured, k)
		}
	}
	for _, k := range configured {
		payload[k+"Flag"] = true
	}
}
