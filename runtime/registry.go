package runtime

import (
	"context"
	"fmt"
	"nick-lab/domain/nick"
	"nick-lab/errors"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// HandlerFunc runs a command with the arguments following its name.
type HandlerFunc func(ctx context.Context, args []string) nick.Reply

type Command struct {
	Name string
	// OwnerOnly commands answer DeniedKey to anyone but the bot owners.
	OwnerOnly bool
	DeniedKey nick.MessageKey
	// Examples are argument lists shown by the help command after the prefix and name.
	Examples []string
	Handle   HandlerFunc
}

type CommandRegistry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{commands: make(map[string]Command)}
}

// Register adds the command under its lower-cased name. It panics if the name is already taken.
func (r *CommandRegistry) Register(command Command) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.ToLower(command.Name)
	if _, exists := r.commands[name]; exists {
		panic(fmt.Sprintf("command %s already registered", name))
	}
	r.commands[name] = command
}

func (r *CommandRegistry) Lookup(name string) (Command, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	command, ok := r.commands[strings.ToLower(name)]
	if !ok {
		return Command{}, fmt.Errorf("%w: %s", errors.ErrUnknownCommand, name)
	}
	return command, nil
}

func (r *CommandRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := lo.Keys(r.commands)
	slices.Sort(names)
	return names
}
