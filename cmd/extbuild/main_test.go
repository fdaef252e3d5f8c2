package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Flags(t *testing.T) {
	for _, name := range []string{"release", "cache-dir", "config", "verbose"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "flag %s should be registered", name)
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["doctor"])
	assert.True(t, names["version"])
}

func TestRootCmd_NoArgsShowsHelp(t *testing.T) {
	rootCmd.SetArgs([]string{})
	require.NoError(t, rootCmd.Execute())
}
