package input

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wrapsnake/engine/board"
)

func TestCommand_Heading(t *testing.T) {
	tests := []struct {
		Command  Command
		Expected board.Heading
		OK       bool
	}{
		{Command: Up, Expected: board.Up, OK: true},
		{Command: Down, Expected: board.Down, OK: true},
		{Command: Left, Expected: board.Left, OK: true},
		{Command: Right, Expected: board.Right, OK: true},
		{Command: Quit},
		{Command: Restart},
		{Command: None},
	}
	for _, test := range tests {
		h, ok := test.Command.Heading()
		require.Equal(t, test.OK, ok, test.Command.String())
		require.Equal(t, test.Expected, h, test.Command.String())
	}
}
