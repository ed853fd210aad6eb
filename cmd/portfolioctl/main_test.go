package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["migrate"])
	assert.True(t, names["seed"])
	assert.True(t, names["status"])

	timeout, err := root.PersistentFlags().GetDuration("timeout")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, timeout)
}

func TestSeedCmd_ModeFlagDefault(t *testing.T) {
	var d time.Duration
	cmd := newSeedCmd(&d)

	f := cmd.Flags().Lookup("mode")
	require.NotNil(t, f)
	assert.Equal(t, "reconcile", f.DefValue)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, migrationRow{Version: 1, File: "00001_create_portfolio_tables.sql", Applied: true}))
	assert.JSONEq(t, `{"version":1,"file":"00001_create_portfolio_tables.sql","applied":true}`, buf.String())
}
