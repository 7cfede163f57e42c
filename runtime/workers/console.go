package workers

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"nick-lab/domain/nick"
	"strings"
	"sync"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, trigger nick.Trigger) error
}

// ConsoleWorker reads "<sender> <message>" lines and dispatches them one at a time.
// It returns nil once the input is exhausted and closes Done.
// A single reader goroutine serves every Run, so a restarted worker resumes on the next line.
type ConsoleWorker struct {
	log        *slog.Logger
	dispatcher Dispatcher
	input      io.Reader
	lines      chan string
	scanErr    chan error
	done       chan struct{}
	start      sync.Once
	finish     sync.Once
	err        error
}

func NewConsoleWorker(log *slog.Logger, dispatcher Dispatcher, input io.Reader) *ConsoleWorker {
	return &ConsoleWorker{
		log:        log,
		dispatcher: dispatcher,
		input:      input,
		lines:      make(chan string),
		scanErr:    make(chan error, 1),
		done:       make(chan struct{}),
	}
}

func (w *ConsoleWorker) Done() <-chan struct{} {
	return w.done
}

// Run binds the reader to the context of its first call; the supervisor restarts
// a worker with the same context.
func (w *ConsoleWorker) Run(ctx context.Context) error {
	w.start.Do(func() { go w.scan(ctx) })

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-w.lines:
			if !ok {
				w.finish.Do(func() {
					w.err = <-w.scanErr
					if w.err == nil {
						close(w.done)
					}
				})
				return w.err
			}
			w.handle(ctx, line)
		}
	}
}

// scan blocks on the reader, so it cannot watch ctx by itself between lines.
func (w *ConsoleWorker) scan(ctx context.Context) {
	defer close(w.lines)
	scanner := bufio.NewScanner(w.input)
	for scanner.Scan() {
		select {
		case w.lines <- scanner.Text():
		case <-ctx.Done():
			w.scanErr <- ctx.Err()
			return
		}
	}
	w.scanErr <- scanner.Err()
}

func (w *ConsoleWorker) handle(ctx context.Context, line string) {
	sender, message, ok := strings.Cut(strings.TrimSpace(line), " ")
	if !ok || sender == "" {
		w.log.Debug("Console line ignored, expected <sender> <message>", "line", line)
		return
	}
	trigger := nick.Trigger{
		Sender: nick.Nickname(sender),
		Line:   strings.TrimSpace(message),
	}
	if err := w.dispatcher.Dispatch(ctx, trigger); err != nil {
		w.log.Error("Reply could not be delivered", "sender", sender, "error", err)
	}
}
