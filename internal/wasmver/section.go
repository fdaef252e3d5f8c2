package wasmver

import (
	"bytes"
	"encoding/binary"
)

var wasmMagic = []byte{0x00, 0x61, 0x73, 0x6d}

// headerLen is the wasm magic plus the 4-byte version/layer field. The
// field differs between core modules and component-model binaries; both are
// accepted here since only section framing matters.
const headerLen = 8

// findCustomSection walks the binary's sections looking for a custom
// section with the given name. Component binaries embed whole core modules
// as sections, so any non-custom section that itself starts with the wasm
// magic is walked recursively.
func findCustomSection(data []byte, name string) ([]byte, bool) {
	if len(data) < headerLen || !bytes.Equal(data[0:4], wasmMagic) {
		return nil, false
	}

	offset := headerLen
	for offset < len(data) {
		id := data[offset]
		offset++

		size, n := binary.Uvarint(data[offset:])
		if n <= 0 {
			return nil, false
		}
		offset += n

		end := offset + int(size)
		if end < offset || end > len(data) {
			return nil, false
		}
		payload := data[offset:end]
		offset = end

		if id == 0 {
			if sectionName, rest, ok := readName(payload); ok && sectionName == name {
				return rest, true
			}
			continue
		}
		if len(payload) >= headerLen && bytes.Equal(payload[0:4], wasmMagic) {
			if inner, ok := findCustomSection(payload, name); ok {
				return inner, true
			}
		}
	}
	return nil, false
}

// readName splits a custom section payload into its name and remaining data
func readName(payload []byte) (string, []byte, bool) {
	nameLen, n := binary.Uvarint(payload)
	if n <= 0 {
		return "", nil, false
	}
	end := n + int(nameLen)
	if end < n || end > len(payload) {
		return "", nil, false
	}
	return string(payload[n:end]), payload[end:], true
}
