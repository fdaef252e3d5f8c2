// Package wasmver extracts the extension-API compatibility version that the
// extension framework embeds in compiled wasm components. Consumers gate
// compatibility decisions on this value, so a component without a valid tag
// is rejected.
package wasmver

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// SectionName is the custom section carrying the compatibility version
const SectionName = "ext:api-version"

// versionPayloadLen is three big-endian u16s: major, minor, patch
const versionPayloadLen = 6

// ErrVersionMissing indicates the component carries no valid version tag,
// typically because the extension was built against an absent or
// incompatible extension framework.
var ErrVersionMissing = errors.New("no extension api version section found")

// Extractor parses the compatibility version out of a compiled component
type Extractor interface {
	Extract(extensionID string, component []byte) (*semver.Version, error)
}

// SectionExtractor implements Extractor by walking the component's custom
// sections.
type SectionExtractor struct{}

// Extract returns the compatibility version embedded in component.
// extensionID only contextualizes errors.
func (SectionExtractor) Extract(extensionID string, component []byte) (*semver.Version, error) {
	payload, ok := findCustomSection(component, SectionName)
	if !ok {
		return nil, fmt.Errorf("extension %s: %w", extensionID, ErrVersionMissing)
	}
	if len(payload) != versionPayloadLen {
		return nil, fmt.Errorf("extension %s: malformed %s section: expected %d bytes, got %d",
			extensionID, SectionName, versionPayloadLen, len(payload))
	}

	major := binary.BigEndian.Uint16(payload[0:2])
	minor := binary.BigEndian.Uint16(payload[2:4])
	patch := binary.BigEndian.Uint16(payload[4:6])
	return semver.New(uint64(major), uint64(minor), uint64(patch), "", ""), nil
}
