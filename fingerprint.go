package mobileconfig

import (
	"crypto/md5"
	"fmt"

	"github.com/google/uuid"
	"howett.net/plist"
)

// contentUUID derives the stable identifier for a payload: the MD5 of
// its canonical XML plist form, with any PayloadUUID key removed,
// printed in the usual 8-4-4-4-12 form. Identical content always maps
// to the identical id, which is what lets higher-level tooling detect
// payload changes without a stored diff.
//
// The plist encoder emits dictionary keys sorted, so the bytes fed to
// the hash are stable across runs regardless of map iteration order.
func contentUUID(p Payload) (string, error) {
	clean := make(map[string]any, len(p))
	for k, v := range p {
		if k == "PayloadUUID" {
			continue
		}
		clean[k] = v
	}

	data, err := plist.Marshal(clean, plist.XMLFormat)
	if err != nil {
		return "", fmt.Errorf("serializing payload: %w", err)
	}

	return uuid.UUID(md5.Sum(data)).String(), nil
}

// DocumentDigest fingerprints a serialized profile document, ignoring
// the document-level PayloadUUID. Two generations of the same profile
// definition compare equal even though each generation draws a fresh
// random document UUID.
func DocumentDigest(raw []byte) (string, error) {
	var document map[string]any
	if _, err := plist.Unmarshal(raw, &document); err != nil {
		return "", fmt.Errorf("parsing profile document: %w", err)
	}
	return contentUUID(Payload(document))
}
