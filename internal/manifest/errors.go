package manifest

import "errors"

// Sentinel errors for the manifest package
var (
	// ErrNotFound indicates the extension directory carries no manifest file
	ErrNotFound = errors.New("no extension.toml or extension.json found")

	// ErrInvalidFormat indicates the manifest file could not be parsed
	ErrInvalidFormat = errors.New("invalid manifest format")

	// ErrMissingID indicates the manifest does not declare an extension id
	ErrMissingID = errors.New("manifest must declare an extension id")

	// ErrNoGrammarName indicates a grammar config file has no usable name stem
	ErrNoGrammarName = errors.New("grammar config file has no name")
)
