package nick

import "strings"

// Trigger is a chat line addressed to the bot.
type Trigger struct {
	Sender Nickname
	Line   string
}

// Command splits the line into a command name and its arguments once the prefix is removed.
// It returns false when the line is not a command.
func (t Trigger) Command(prefix string) (string, []string, bool) {
	if prefix == "" || !strings.HasPrefix(t.Line, prefix) {
		return "", nil, false
	}
	tokens := strings.Fields(strings.TrimPrefix(t.Line, prefix))
	if len(tokens) == 0 {
		return "", nil, false
	}
	return strings.ToLower(tokens[0]), tokens[1:], true
}
