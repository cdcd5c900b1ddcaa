package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	assert.NotEqual(t, ErrMissingGuidanceService.Error(), ErrInvalidPorts.Error())
}

func TestErrMissingGuidanceService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingGuidanceService.Error(), "guidance service")
}

func TestErrInvalidPorts_Message(t *testing.T) {
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
