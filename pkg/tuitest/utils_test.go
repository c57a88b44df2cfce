package tuitest

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	in := "\x1b[1mbold\x1b[0m   \nnext  \n\n"
	assert.Equal(t, "bold\nnext", StripANSI(in))
}

func TestKeyStrings(t *testing.T) {
	tests := []struct {
		msg  tea.Msg
		want string
	}{
		{KeyPress('j'), "j"},
		{KeySpace(), "space"},
		{KeyEnter(), "enter"},
		{KeyEsc(), "esc"},
		{KeyLeft(), "left"},
		{KeyRight(), "right"},
		{KeyDown(), "down"},
		{KeyUp(), "up"},
		{KeyBackspace(), "backspace"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			key, ok := tt.msg.(tea.KeyPressMsg)
			assert.True(t, ok)
			assert.Equal(t, tt.want, key.String())
		})
	}
}

func TestKeyText(t *testing.T) {
	key, ok := KeyText("5").(tea.KeyPressMsg)
	assert.True(t, ok)
	assert.Equal(t, "5", key.Text)
	assert.Nil(t, KeyText(""))
}
