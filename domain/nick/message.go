package nick

import "fmt"

type MessageKey string

const (
	OwnerMerge     MessageKey = "OWNER_MERGE"
	MergeSyntax    MessageKey = "MERGE_SYNTAX"
	MergeDone      MessageKey = "MERGE_DONE"
	MergeGrouped   MessageKey = "MERGE_GROUPED"
	MergeUnknown   MessageKey = "MERGE_UNKNOWN"
	OwnerUnmerge   MessageKey = "OWNER_UNMERGE"
	UnmergeSyntax  MessageKey = "UNMERGE_SYNTAX"
	NotGrouped     MessageKey = "NOT_GROUPED"
	UnmergeUnknown MessageKey = "UNMERGE_UNKNOWN"
	UnmergeDone    MessageKey = "UNMERGE_DONE"
	GlistSyntax    MessageKey = "GLIST_SYNTAX"
	GlistByID      MessageKey = "GLIST_BY_ID"
	GlistByNick    MessageKey = "GLIST_BY_NICK"
	GlistFailed    MessageKey = "GLIST_FAILED"
	GlistEmpty     MessageKey = "GLIST_EMPTY"
	StoreFailure   MessageKey = "STORE_FAILURE"
	HelpList       MessageKey = "HELP_LIST"
	HelpUsage      MessageKey = "HELP_USAGE"
	HelpUnknown    MessageKey = "HELP_UNKNOWN"
)

// Catalog maps an outcome to its fmt template.
type Catalog map[MessageKey]string

var DefaultCatalog = Catalog{
	OwnerMerge: "Only the bot owner can merge users.",
	MergeSyntax: "I want to be sure there are no mistakes here. " +
		"Please specify nicks to merge as: <duplicate> into <primary>",
	MergeDone:      "Merged %s into %s.",
	MergeGrouped:   "Nicks %s & %s are already grouped.",
	MergeUnknown:   "Encountered unknown nick. Aborting merge.",
	OwnerUnmerge:   "Only the bot owner can unmerge nicks.",
	UnmergeSyntax:  "I need a nickname to unmerge.",
	NotGrouped:     "Nick group %s contains only one nick; nothing to do.",
	UnmergeUnknown: "Encountered unknown nick. Aborting unmerge.",
	UnmergeDone:    "Removed %s from nick group %s.",
	GlistSyntax:    "I need a nickname to look up.",
	GlistByID:      "Nicks in group %s: %s.",
	GlistByNick:    "Other nicks in %s's group: %s.",
	GlistFailed:    "Could not find nick group for %s.",
	GlistEmpty:     "No nicks grouped with %s.",
	StoreFailure:   "Something went wrong with the nick database; nothing was reported as done.",
	HelpList:       "Commands: %s.",
	HelpUsage:      "e.g. %s",
	HelpUnknown:    "No command named %s.",
}

// ReplyMode tells the transport whether the text is addressed to the caller or said to the channel.
type ReplyMode int

const (
	ModeSay ReplyMode = iota
	ModeReply
)

// Reply is the outcome of a command, rendered later through a Catalog.
type Reply struct {
	Key  MessageKey
	Args []any
	Mode ReplyMode
}

func Say(key MessageKey, args ...any) Reply {
	return Reply{Key: key, Args: args, Mode: ModeSay}
}

func ReplyTo(key MessageKey, args ...any) Reply {
	return Reply{Key: key, Args: args, Mode: ModeReply}
}

// Render formats the reply. An unknown key renders as the key itself so a
// missing translation stays visible in the channel.
func (c Catalog) Render(reply Reply) string {
	template, ok := c[reply.Key]
	if !ok {
		return string(reply.Key)
	}
	if len(reply.Args) == 0 {
		return template
	}
	return fmt.Sprintf(template, reply.Args...)
}
