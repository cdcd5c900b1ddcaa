package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUICmd_Exists(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "tui" {
			found = true
			break
		}
	}
	assert.True(t, found, "tui command should be registered")
}

func TestTUICmd_ShortDescription(t *testing.T) {
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
}

func TestTUICmd_HelpOutput(t *testing.T) {
	resetServices(t)

	out, err := run(t, "tui", "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "interactive terminal user interface")
	assert.Contains(t, out, "Controls:")
}

func TestTUICmd_HelpDoesNotLeakIntoNextRun(t *testing.T) {
	resetServices(t)
	_, err := run(t, "tui", "--help")
	require.NoError(t, err)

	resetServices(t)
	_, err = run(t, "tui")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create TUI")
}

func TestTUIPorts(t *testing.T) {
	setupTestServices(t)
	regionFlag = "coastal"
	langFlag = "ta"

	ports := tuiPorts()

	require.NoError(t, ports.Validate())
	assert.Equal(t, guidanceService, ports.Guidance)
	assert.Equal(t, emergencyService, ports.Emergency)
	assert.Equal(t, "coastal", ports.Region)
	assert.Equal(t, "ta", ports.LanguageHint)
}

func TestTUICmd_NoGuidanceService(t *testing.T) {
	resetServices(t)

	_, err := run(t, "tui")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create TUI")
}
