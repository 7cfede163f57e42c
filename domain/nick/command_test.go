package nick

import (
	"nick-lab/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMergeCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "Valid merge", args: []string{"newbie", "into", "old_friend"}},
		{name: "Connective is case insensitive", args: []string{"newbie", "INTO", "old_friend"}},
		{name: "Extra arguments are ignored", args: []string{"newbie", "into", "old_friend", "please"}},
		{name: "Missing primary", args: []string{"newbie", "into"}, wantErr: true},
		{name: "Wrong connective", args: []string{"newbie", "onto", "old_friend"}, wantErr: true},
		{name: "No argument at all", args: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			err := ParseMergeCommand(tt.args).Validate()
			if tt.wantErr {
				req.ErrorIs(err, errors.ErrInvalidCommand)
				return
			}
			req.NoError(err)
		})
	}
}

func TestParseMergeCommand_Fields(t *testing.T) {
	req := require.New(t)

	cmd := ParseMergeCommand([]string{"Newbie", "Into", "Old_Friend"})

	req.Equal(MergeCommand{Duplicate: "Newbie", Connective: "into", Primary: "Old_Friend"}, cmd)
}

func TestParseUnmergeCommand(t *testing.T) {
	req := require.New(t)

	req.NoError(ParseUnmergeCommand([]string{"DeadAlias"}).Validate())
	req.ErrorIs(ParseUnmergeCommand(nil).Validate(), errors.ErrInvalidCommand)
}

func TestParseShowGroupCommand(t *testing.T) {
	req := require.New(t)

	req.Equal(Nickname("1337"), ParseShowGroupCommand([]string{"1337"}).Target)
	req.ErrorIs(ParseShowGroupCommand([]string{}).Validate(), errors.ErrInvalidCommand)
}

func TestTrigger_Command(t *testing.T) {
	req := require.New(t)

	name, args, ok := Trigger{Line: ".NickMerge newbie into old_friend"}.Command(".")
	req.True(ok)
	req.Equal("nickmerge", name)
	req.Equal([]string{"newbie", "into", "old_friend"}, args)

	_, _, ok = Trigger{Line: "hello there"}.Command(".")
	req.False(ok)

	_, _, ok = Trigger{Line: ".   "}.Command(".")
	req.False(ok)
}

func TestCatalog_Render(t *testing.T) {
	req := require.New(t)

	req.Equal("Merged newbie into old_friend.", DefaultCatalog.Render(Say(MergeDone, Nickname("newbie"), Nickname("old_friend"))))
	req.Equal("I need a nickname to look up.", DefaultCatalog.Render(Say(GlistSyntax)))
	req.Equal("Something went wrong with the nick database; nothing was reported as done.", DefaultCatalog.Render(ReplyTo(StoreFailure)))
	req.Equal("MISSING", Catalog{}.Render(Say("MISSING")))
	req.Equal(ModeReply, ReplyTo(MergeUnknown).Mode)
}
