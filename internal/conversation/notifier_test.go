package conversation

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hammamikhairi/souschef/internal/logger"
)

func TestCLINotifier(t *testing.T) {
	tests := []struct {
		name   string
		color  bool
		urgent bool
		want   string
	}{
		{"plain", false, false, "Timer done: rice!"},
		{"plain urgent", false, true, "Timer done: rice!"},
		{"colour", true, false, cyan + bold + "Timer done: rice!" + reset},
		{"colour urgent", true, true, red + bold + "Timer done: rice!" + reset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			capture := func(format string, a ...any) {
				got = append(got, fmt.Sprintf(format, a...))
			}
			n := NewCLINotifier(logger.New(logger.LevelOff, nil), capture, WithColor(tt.color))

			var err error
			if tt.urgent {
				err = n.NotifyUrgent(context.Background(), "Timer done: rice!")
			} else {
				err = n.Notify(context.Background(), "Timer done: rice!")
			}
			assert.NoError(t, err)
			assert.Equal(t, []string{tt.want}, got)
		})
	}
}
