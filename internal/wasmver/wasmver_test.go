package wasmver

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uvarint(n int) []byte {
	buf := make([]byte, binary.MaxVarintLen64)
	return buf[:binary.PutUvarint(buf, uint64(n))]
}

func customSection(name string, payload []byte) []byte {
	body := append(uvarint(len(name)), name...)
	body = append(body, payload...)
	section := append([]byte{0x00}, uvarint(len(body))...)
	return append(section, body...)
}

func coreModule(sections ...[]byte) []byte {
	module := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	for _, s := range sections {
		module = append(module, s...)
	}
	return module
}

func versionPayload(major, minor, patch uint16) []byte {
	payload := make([]byte, 6)
	binary.BigEndian.PutUint16(payload[0:2], major)
	binary.BigEndian.PutUint16(payload[2:4], minor)
	binary.BigEndian.PutUint16(payload[4:6], patch)
	return payload
}

func TestExtract_Valid(t *testing.T) {
	component := coreModule(customSection(SectionName, versionPayload(0, 6, 2)))

	v, err := SectionExtractor{}.Extract("my-extension", component)

	require.NoError(t, err)
	assert.Equal(t, "0.6.2", v.String())
}

func TestExtract_IgnoresOtherCustomSections(t *testing.T) {
	component := coreModule(
		customSection("producers", []byte("rustc")),
		customSection(SectionName, versionPayload(1, 0, 0)),
	)

	v, err := SectionExtractor{}.Extract("my-extension", component)

	require.NoError(t, err)
	assert.Equal(t, "1.0.0", v.String())
}

func TestExtract_NestedCoreModule(t *testing.T) {
	// Component binaries carry the version header 0x0d 0x00 0x01 0x00 and
	// embed whole core modules as sections.
	inner := coreModule(customSection(SectionName, versionPayload(0, 3, 1)))
	component := []byte{0x00, 0x61, 0x73, 0x6d, 0x0d, 0x00, 0x01, 0x00}
	component = append(component, 0x01) // core module section id
	component = append(component, uvarint(len(inner))...)
	component = append(component, inner...)

	v, err := SectionExtractor{}.Extract("my-extension", component)

	require.NoError(t, err)
	assert.Equal(t, "0.3.1", v.String())
}

func TestExtract_MissingSection(t *testing.T) {
	component := coreModule(customSection("producers", []byte("rustc")))

	_, err := SectionExtractor{}.Extract("my-extension", component)

	assert.ErrorIs(t, err, ErrVersionMissing)
	assert.Contains(t, err.Error(), "my-extension")
}

func TestExtract_MalformedPayload(t *testing.T) {
	component := coreModule(customSection(SectionName, []byte{0, 1, 2}))

	_, err := SectionExtractor{}.Extract("my-extension", component)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 6 bytes")
}

func TestExtract_NotWasm(t *testing.T) {
	_, err := SectionExtractor{}.Extract("my-extension", []byte("definitely not wasm"))
	assert.ErrorIs(t, err, ErrVersionMissing)
}

func TestExtract_TruncatedSection(t *testing.T) {
	component := coreModule(customSection(SectionName, versionPayload(0, 1, 0)))
	truncated := component[:len(component)-3]

	_, err := SectionExtractor{}.Extract("my-extension", truncated)
	assert.ErrorIs(t, err, ErrVersionMissing)
}
