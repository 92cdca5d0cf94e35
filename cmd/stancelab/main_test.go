package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandWiring(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["run"], "run subcommand registered")
	assert.True(t, names["compare"], "compare subcommand registered")
	assert.True(t, names["checkpoints"], "checkpoints subcommand registered")
}

func TestRunCommandFlags(t *testing.T) {
	for _, flag := range []string{"model", "target", "split", "action", "clear-checkpoints"} {
		require.NotNil(t, runCmd.Flags().Lookup(flag), "missing flag %s", flag)
	}

	assert.Equal(t, "train", runCmd.Flags().Lookup("split").DefValue)
	assert.Equal(t, "both", runCmd.Flags().Lookup("action").DefValue)
}

func TestCompareCommandFlags(t *testing.T) {
	require.NotNil(t, compareCmd.Flags().Lookup("a"))
	require.NotNil(t, compareCmd.Flags().Lookup("b"))
}
