package sink

import (
	"context"
	"fmt"
	"io"
	"nick-lab/domain/nick"
	"sync"

	"github.com/gookit/color"
)

// ConsoleSink prints the bot's lines on a terminal.
type ConsoleSink struct {
	mu      sync.Mutex
	out     io.Writer
	botName string
}

func NewConsoleSink(out io.Writer, botName string) *ConsoleSink {
	return &ConsoleSink{out: out, botName: botName}
}

func (c *ConsoleSink) Reply(ctx context.Context, recipient nick.Nickname, text string) error {
	return c.write(ctx, fmt.Sprintf("%s: %s", color.OpBold.Sprint(recipient), text))
}

func (c *ConsoleSink) Say(ctx context.Context, text string) error {
	return c.write(ctx, text)
}

func (c *ConsoleSink) write(ctx context.Context, line string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.out, "<%s> %s\n", color.FgCyan.Sprint(c.botName), line)
	return err
}
