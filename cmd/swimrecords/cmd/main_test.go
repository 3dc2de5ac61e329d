package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecute(t *testing.T) {
	// Execute() calls os.Exit(1) on error, so only its presence is checked here.
	assert.NotNil(t, Execute)
}

func TestVersionVariables(t *testing.T) {
	assert.NotEmpty(t, Version, "Version should not be empty")
	assert.NotEmpty(t, Commit, "Commit should not be empty")
}

func TestCLIFlagsVariables(t *testing.T) {
	// cfgFile defaults to swimrecords.yaml via init()
	assert.Equal(t, "swimrecords.yaml", cfgFile, "cfgFile should default to swimrecords.yaml")
	assert.Equal(t, "", logLevel)
	assert.Equal(t, "", logFormat)
	assert.Equal(t, "", dataKind)
	assert.Equal(t, "", dataFile)
	assert.Equal(t, "", outputFormat)
	assert.Equal(t, false, noColor)
}

func TestCommandVariables(t *testing.T) {
	assert.Equal(t, int64(0), recordsMeetID)
	assert.Equal(t, "", recordsSwimmer)
	assert.Equal(t, "", importFile)
	assert.False(t, importDryRun)
	assert.False(t, schemaPrint)
	assert.Equal(t, "", serveAddr)
}
