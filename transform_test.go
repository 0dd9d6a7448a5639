package mobileconfig

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uuidRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func TestTransformContentEmpty(t *testing.T) {
	out, err := TransformContent(nil, "com.example.test")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = TransformContent([]Payload{}, "com.example.test")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestTransformPayloadUUIDDeterministic(t *testing.T) {
	payload := Payload{
		"PayloadType": "com.apple.ManagedClient.preferences",
		"PayloadContent": map[string]any{
			"com.apple.dock": map[string]any{"orientation": "left"},
		},
	}

	first, err := TransformContent([]Payload{payload}, "com.example.test")
	require.NoError(t, err)
	second, err := TransformContent([]Payload{payload}, "com.example.test")
	require.NoError(t, err)

	uuid := first[0]["PayloadUUID"].(string)
	assert.Regexp(t, uuidRe, uuid)
	assert.Equal(t, uuid, second[0]["PayloadUUID"])
}

func TestTransformPayloadUUIDTracksContent(t *testing.T) {
	a := Payload{"PayloadType": "com.apple.dock", "orientation": "left"}
	b := Payload{"PayloadType": "com.apple.dock", "orientation": "right"}

	out, err := TransformContent([]Payload{a, b}, "com.example.test")
	require.NoError(t, err)
	assert.NotEqual(t, out[0]["PayloadUUID"], out[1]["PayloadUUID"])
}

func TestTransformIgnoresStaleUUID(t *testing.T) {
	withStale := Payload{
		"PayloadType": "com.apple.dock",
		"PayloadUUID": "99999999-9999-9999-9999-999999999999",
	}
	without := Payload{"PayloadType": "com.apple.dock"}

	a, err := TransformContent([]Payload{withStale}, "com.example.test")
	require.NoError(t, err)
	b, err := TransformContent([]Payload{without}, "com.example.test")
	require.NoError(t, err)

	assert.Equal(t, b[0]["PayloadUUID"], a[0]["PayloadUUID"])
	assert.NotEqual(t, "99999999-9999-9999-9999-999999999999", a[0]["PayloadUUID"])
}

func TestTransformInjectsCommonKeys(t *testing.T) {
	out, err := TransformContent([]Payload{{"PayloadType": "com.apple.dock"}}, "com.example.test")
	require.NoError(t, err)

	payload := out[0]
	assert.Equal(t, true, payload["PayloadEnabled"])
	assert.Equal(t, 1, payload["PayloadVersion"])
	assert.Equal(t, "com.example.test."+payload["PayloadUUID"].(string), payload["PayloadIdentifier"])
}

func TestTransformKeepsSuppliedIdentifier(t *testing.T) {
	out, err := TransformContent([]Payload{{
		"PayloadType":       "com.apple.dock",
		"PayloadIdentifier": "com.example.custom",
	}}, "com.example.test")
	require.NoError(t, err)
	assert.Equal(t, "com.example.custom", out[0]["PayloadIdentifier"])
}

func TestTransformOverwritesEnabledAndVersion(t *testing.T) {
	out, err := TransformContent([]Payload{{
		"PayloadType":    "com.apple.dock",
		"PayloadEnabled": false,
		"PayloadVersion": 7,
	}}, "com.example.test")
	require.NoError(t, err)
	assert.Equal(t, true, out[0]["PayloadEnabled"])
	assert.Equal(t, 1, out[0]["PayloadVersion"])
}

func TestTransformPreservesOrder(t *testing.T) {
	content := []Payload{
		{"PayloadType": "com.apple.dock"},
		{"PayloadType": "com.apple.loginwindow"},
		{"PayloadType": "com.apple.screensaver"},
	}

	out, err := TransformContent(content, "com.example.test")
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "com.apple.dock", out[0]["PayloadType"])
	assert.Equal(t, "com.apple.loginwindow", out[1]["PayloadType"])
	assert.Equal(t, "com.apple.screensaver", out[2]["PayloadType"])
}

func TestTransformDoesNotMutateInput(t *testing.T) {
	payload := Payload{
		"PayloadType": "com.apple.dock",
		"PayloadUUID": "stale",
	}

	_, err := TransformContent([]Payload{payload}, "com.example.test")
	require.NoError(t, err)

	assert.Equal(t, "stale", payload["PayloadUUID"])
	assert.NotContains(t, payload, "PayloadEnabled")
}

func TestTransformActiveDirectoryFlags(t *testing.T) {
	out, err := TransformContent([]Payload{{
		"PayloadType":        "com.apple.DirectoryService.managed",
		"ADDefaultUserShell": "/bin/zsh",
		"ADPacketSign":       "allow",
		"HostName":           "ad.example.com",
	}}, "com.example.test")
	require.NoError(t, err)

	payload := out[0]
	assert.Equal(t, true, payload["ADDefaultUserShellFlag"])
	assert.Equal(t, true, payload["ADPacketSignFlag"])
	assert.NotContains(t, payload, "HostNameFlag")
}

func TestTransformNoFlagsOutsideADPayload(t *testing.T) {
	// The AD key names only trigger flag injection for the managed
	// DirectoryService payload type.
	out, err := TransformContent([]Payload{{
		"PayloadType":        "com.apple.dock",
		"ADDefaultUserShell": "/bin/zsh",
	}}, "com.example.test")
	require.NoError(t, err)
	assert.NotContains(t, out[0], "ADDefaultUserShellFlag")
}

func TestTransformMissingPayloadType(t *testing.T) {
	_, err := TransformContent([]Payload{{"Setting": true}}, "com.example.test")
	assert.ErrorIs(t, err, errInvalidPayload)
}
