package runtime

import (
	"context"
	"log/slog"
	"nick-lab/contract"
	"nick-lab/domain/nick"
	"nick-lab/observability"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Dispatcher turns chat lines into command calls and sends the rendered reply back.
// Lines are handled one at a time by the caller; the dispatcher holds no lock.
type Dispatcher struct {
	log      *slog.Logger
	registry *CommandRegistry
	catalog  nick.Catalog
	sink     contract.ReplySink
	metrics  observability.IMetrics
	prefix   string
	owners   []nick.Nickname
}

func NewDispatcher(
	log *slog.Logger,
	registry *CommandRegistry,
	catalog nick.Catalog,
	sink contract.ReplySink,
	metrics observability.IMetrics,
	prefix string,
	owners []nick.Nickname,
) *Dispatcher {
	return &Dispatcher{
		log:      log,
		registry: registry,
		catalog:  catalog,
		sink:     sink,
		metrics:  metrics,
		prefix:   prefix,
		owners:   owners,
	}
}

// Dispatch ignores lines that are not a registered command.
// The returned error only comes from the reply sink.
func (d *Dispatcher) Dispatch(ctx context.Context, trigger nick.Trigger) error {
	name, args, ok := trigger.Command(d.prefix)
	if !ok {
		return nil
	}
	// Without a sender there is nobody to check or answer.
	if trigger.Sender.IsEmpty() {
		d.log.Debug("Command without sender ignored", "command", name)
		return nil
	}
	command, err := d.registry.Lookup(name)
	if err != nil {
		d.log.Debug("Command ignored", "sender", trigger.Sender, "error", err)
		return nil
	}

	log := d.log.With("request_id", uuid.NewString(), "command", command.Name, "sender", trigger.Sender)
	start := time.Now()

	var reply nick.Reply
	if command.OwnerOnly && !d.IsOwner(trigger.Sender) {
		log.Warn("Command denied to non owner")
		reply = nick.ReplyTo(command.DeniedKey)
	} else {
		reply = command.Handle(ctx, args)
	}

	d.metrics.ObserveCommand(command.Name, reply.Key, time.Since(start))
	log.Info("Command handled", "outcome", reply.Key, "duration", time.Since(start))

	text := d.catalog.Render(reply)
	if reply.Mode == nick.ModeReply {
		return d.sink.Reply(ctx, trigger.Sender, text)
	}
	return d.sink.Say(ctx, text)
}

func (d *Dispatcher) IsOwner(sender nick.Nickname) bool {
	return lo.ContainsBy(d.owners, func(owner nick.Nickname) bool {
		return owner.Equal(sender)
	})
}
