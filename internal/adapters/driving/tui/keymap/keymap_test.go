package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_QuitBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	assert.Contains(t, keys, "q")
	assert.Contains(t, keys, "ctrl+c")
}

func TestDefaultKeyMap_BackBinding(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Back.Keys(), "esc")
}

func TestDefaultKeyMap_SubmitBinding(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Submit.Keys(), "enter")
	assert.Equal(t, "evaluate", km.Submit.Help().Desc)
}

func TestDefaultKeyMap_Navigation(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Up.Keys(), "up")
	assert.Contains(t, km.Up.Keys(), "k")
	assert.Contains(t, km.Down.Keys(), "down")
	assert.Contains(t, km.Down.Keys(), "j")
}

func TestDefaultKeyMap_ToggleEmergency(t *testing.T) {
	km := DefaultKeyMap()

	assert.Equal(t, []string{"e"}, km.ToggleEmergency.Keys())
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	assert.Len(t, bindings, 2)
	assert.Equal(t, km.Submit, bindings[0])
	assert.Equal(t, km.Back, bindings[1])
}

func TestGuidanceHelp_StartsWithNewQuery(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.GuidanceHelp()

	require.NotEmpty(t, bindings)
	assert.Equal(t, km.NewQuery, bindings[0])
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.FullHelp()

	assert.Len(t, bindings, 3)
	for _, group := range bindings {
		assert.Len(t, group, 3)
	}
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("n", km.NewQuery))
	assert.True(t, Matches("k", km.Up))

	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("down", km.Up))
}

func TestBindings_HaveHelp(t *testing.T) {
	km := DefaultKeyMap()

	testCases := []struct {
		name    string
		binding key.Binding
	}{
		{"Quit", km.Quit},
		{"Help", km.Help},
		{"Back", km.Back},
		{"Submit", km.Submit},
		{"Up", km.Up},
		{"Down", km.Down},
		{"Select", km.Select},
		{"NewQuery", km.NewQuery},
		{"ToggleEmergency", km.ToggleEmergency},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			help := tc.binding.Help()
			assert.NotEmpty(t, help.Key, "binding should have help key")
		})
	}
}
