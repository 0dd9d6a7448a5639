package mobileconfig

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"howett.net/plist"
)

// ProfileOptions are the recognized options of Generate. The zero
// value of a field means the corresponding key is left out of the
// document.
type ProfileOptions struct {
	Description       string
	DisplayName       string
	Organization      string
	Content           []Payload
	RemovalDisallowed bool

	// Scope overrides the default System installation scope.
	Scope                string
	RemovalDate          time.Time
	DurationUntilRemoval float64
	// ConsentText maps a locale ("default", "en", ...) to the message
	// shown when the profile is installed interactively.
	ConsentText map[string]string
}

// ignoredOptions are orchestration bookkeeping keys that arrive
// alongside real options when the caller is a state or orchestration
// layer. They must never leak into the profile document.
var ignoredOptions = map[string]struct{}{
	"__id__":     {},
	"fun":        {},
	"state":      {},
	"__env__":    {},
	"__sls__":    {},
	"order":      {},
	"watch":      {},
	"watch_in":   {},
	"require":    {},
	"require_in": {},
	"prereq":     {},
	"prereq_in":  {},
}

// OptionsFromMap builds ProfileOptions from a loose option map, the
// shape an orchestration layer hands over. Orchestration keys and
// unrecognized keys are silently dropped; removaldisallowed is true
// only when the value is exactly boolean true.
func OptionsFromMap(options map[string]any) ProfileOptions {
	var opts ProfileOptions
	for k, v := range options {
		if _, skip := ignoredOptions[k]; skip {
			continue
		}
		switch k {
		case "description":
			opts.Description, _ = v.(string)
		case "displayname":
			opts.DisplayName, _ = v.(string)
		case "organization":
			opts.Organization, _ = v.(string)
		case "content":
			opts.Content = toPayloads(v)
		case "removaldisallowed":
			opts.RemovalDisallowed = v == true
		case "scope":
			opts.Scope, _ = v.(string)
		case "removaldate":
			opts.RemovalDate, _ = v.(time.Time)
		case "durationuntilremoval":
			switch d := v.(type) {
			case float64:
				opts.DurationUntilRemoval = d
			case int:
				opts.DurationUntilRemoval = float64(d)
			}
		case "consenttext":
			opts.ConsentText = toConsentText(v)
		}
	}
	return opts
}

func toPayloads(v any) []Payload {
	switch content := v.(type) {
	case []Payload:
		return content
	case []map[string]any:
		out := make([]Payload, 0, len(content))
		for _, item := range content {
			out = append(out, Payload(item))
		}
		return out
	case []any:
		out := make([]Payload, 0, len(content))
		for _, item := range content {
			switch payload := item.(type) {
			case Payload:
				out = append(out, payload)
			case map[string]any:
				out = append(out, Payload(payload))
			}
		}
		return out
	}
	return nil
}

func toConsentText(v any) map[string]string {
	switch text := v.(type) {
	case map[string]string:
		return text
	case map[string]any:
		out := make(map[string]string, len(text))
		for locale, message := range text {
			if s, ok := message.(string); ok {
				out[locale] = s
			}
		}
		return out
	}
	return nil
}

// Generate assembles a profile document and returns it as XML plist
// text. The identifier becomes the document's PayloadIdentifier, the
// primary key existence checks run against. An empty profileUUID draws
// a fresh random UUID; passing one in pins the output for tests.
//
// Generate has no side effects: persisting the returned bytes is the
// caller's job.
func Generate(identifier, profileUUID string, opts ProfileOptions) ([]byte, error) {
	if identifier == "" {
		return nil, errors.New("profile identifier is required")
	}
	if profileUUID == "" {
		profileUUID = uuid.NewString()
	}

	document := Document{
		"PayloadScope":      "System",
		"PayloadUUID":       profileUUID,
		"PayloadVersion":    1,
		"PayloadType":       "Configuration",
		"PayloadIdentifier": identifier,
	}

	if opts.Scope != "" {
		document["PayloadScope"] = opts.Scope
	}
	if opts.Description != "" {
		document["PayloadDescription"] = opts.Description
	}
	if opts.DisplayName != "" {
		document["PayloadDisplayName"] = opts.DisplayName
	}
	if opts.Organization != "" {
		document["PayloadOrganization"] = opts.Organization
	}
	if opts.RemovalDisallowed {
		document["PayloadRemovalDisallowed"] = true
	}
	if !opts.RemovalDate.IsZero() {
		document["RemovalDate"] = opts.RemovalDate
	}
	if opts.DurationUntilRemoval > 0 {
		document["DurationUntilRemoval"] = opts.DurationUntilRemoval
	}
	if len(opts.ConsentText) > 0 {
		document["ConsentText"] = opts.ConsentText
	}
	if opts.Content != nil {
		content, err := TransformContent(opts.Content, identifier)
		if err != nil {
			return nil, err
		}
		document["PayloadContent"] = content
	}

	raw, err := plist.MarshalIndent(document, plist.XMLFormat, "\t")
	if err != nil {
		return nil, fmt.Errorf("serializing profile document: %w", err)
	}
	return raw, nil
}
