package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrammarNames_Sorted(t *testing.T) {
	m := &ExtensionManifest{
		Grammars: map[string]GrammarManifestEntry{
			"zig":    {},
			"astro":  {},
			"python": {},
		},
	}

	assert.Equal(t, []string{"astro", "python", "zig"}, m.GrammarNames())
}

func TestGrammarNames_Empty(t *testing.T) {
	m := &ExtensionManifest{}
	assert.Empty(t, m.GrammarNames())
}

func TestSchemaVersion_IsLegacy(t *testing.T) {
	assert.True(t, SchemaVersionLegacy.IsLegacy())
	assert.False(t, SchemaVersion(1).IsLegacy())
}

func TestValidate_RequiresID(t *testing.T) {
	m := &ExtensionManifest{}
	assert.ErrorIs(t, m.Validate(), ErrMissingID)

	m.ID = "ok"
	assert.NoError(t, m.Validate())
}
