package runtime

import (
	"context"
	"nick-lab/domain/nick"
	"nick-lab/services"
	"strings"

	"github.com/samber/lo"
)

// RegisterNickCommands binds the nick-group commands to the service.
func RegisterNickCommands(registry *CommandRegistry, service services.INickGroupService) {
	registry.Register(Command{
		Name:      "nickmerge",
		OwnerOnly: true,
		DeniedKey: nick.OwnerMerge,
		Examples:  []string{"newbie into old_friend"},
		Handle: func(ctx context.Context, args []string) nick.Reply {
			return service.Merge(ctx, nick.ParseMergeCommand(args))
		},
	})
	registry.Register(Command{
		Name:      "nickunmerge",
		OwnerOnly: true,
		DeniedKey: nick.OwnerUnmerge,
		Examples:  []string{"DeadAlias"},
		Handle: func(ctx context.Context, args []string) nick.Reply {
			return service.Unmerge(ctx, nick.ParseUnmergeCommand(args))
		},
	})
	registry.Register(Command{
		Name:     "shownickgroup",
		Examples: []string{"AlsoKnownAsNil", "1337"},
		Handle: func(ctx context.Context, args []string) nick.Reply {
			return service.ShowGroup(ctx, nick.ParseShowGroupCommand(args))
		},
	})
}

// RegisterHelpCommand adds "help", which lists the commands or shows the examples of one of them.
func RegisterHelpCommand(registry *CommandRegistry, prefix string) {
	registry.Register(Command{
		Name:     "help",
		Examples: []string{"", "nickmerge"},
		Handle: func(_ context.Context, args []string) nick.Reply {
			if len(args) == 0 {
				return nick.ReplyTo(nick.HelpList, strings.Join(registry.Names(), ", "))
			}
			command, err := registry.Lookup(strings.TrimPrefix(args[0], prefix))
			if err != nil {
				return nick.ReplyTo(nick.HelpUnknown, args[0])
			}
			examples := lo.Map(command.Examples, func(example string, _ int) string {
				return strings.TrimSpace(prefix + command.Name + " " + example)
			})
			if len(examples) == 0 {
				examples = []string{prefix + command.Name}
			}
			return nick.ReplyTo(nick.HelpUsage, strings.Join(examples, " | "))
		},
	})
}
