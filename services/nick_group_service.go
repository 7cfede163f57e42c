package services

import (
	"context"
	goerrors "errors"
	"fmt"
	"log/slog"
	"nick-lab/domain/nick"
	"nick-lab/errors"
	"nick-lab/repositories"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

type INickGroupService interface {
	Merge(ctx context.Context, cmd nick.MergeCommand) nick.Reply
	Unmerge(ctx context.Context, cmd nick.UnmergeCommand) nick.Reply
	ShowGroup(ctx context.Context, cmd nick.ShowGroupCommand) nick.Reply
}

// NickGroupService answers every command with a Reply. Storage failures are
// logged and turned into nick.StoreFailure, nothing is rolled back.
type NickGroupService struct {
	repository repositories.INickRepository
	fields     nick.FieldSet
	log        *slog.Logger
}

func NewNickGroupService(repository repositories.INickRepository, fields nick.FieldSet, log *slog.Logger) *NickGroupService {
	return &NickGroupService{repository: repository, fields: fields, log: log}
}

type stagedValue struct {
	field string
	value int64
}

// Merge folds the duplicate into the primary, keeping the combined stats on the primary.
func (s *NickGroupService) Merge(ctx context.Context, cmd nick.MergeCommand) nick.Reply {
	if err := cmd.Validate(); err != nil {
		return nick.ReplyTo(nick.MergeSyntax)
	}

	duplicateID, err := s.repository.ResolveGroupID(cmd.Duplicate, false)
	if err != nil {
		return s.lookupFailure(ctx, err, nick.ReplyTo(nick.MergeUnknown))
	}
	primaryID, err := s.repository.ResolveGroupID(cmd.Primary, false)
	if err != nil {
		return s.lookupFailure(ctx, err, nick.ReplyTo(nick.MergeUnknown))
	}
	if duplicateID == primaryID {
		return nick.ReplyTo(nick.MergeGrouped, cmd.Primary, cmd.Duplicate)
	}

	// Every value is read before the first write: the duplicate is zeroed below.
	staged, err := s.stage(cmd.Duplicate, cmd.Primary)
	if err != nil {
		return s.storeFailure(ctx, "nickmerge", err)
	}

	for _, v := range staged {
		if err = s.repository.SetValue(cmd.Primary, v.field, v.value); err != nil {
			return s.storeFailure(ctx, "nickmerge", err)
		}
		// Some stores leave the duplicate's values in place on a group merge.
		if err = s.repository.SetValue(cmd.Duplicate, v.field, 0); err != nil {
			return s.storeFailure(ctx, "nickmerge", err)
		}
	}

	if err = s.repository.MergeGroups(cmd.Primary, cmd.Duplicate); err != nil {
		return s.storeFailure(ctx, "nickmerge", err)
	}

	s.log.InfoContext(ctx, "Nicks merged",
		"duplicate", cmd.Duplicate, "primary", cmd.Primary,
		"duplicate_group", duplicateID, "primary_group", primaryID,
		"fields", len(staged))
	return nick.Say(nick.MergeDone, cmd.Duplicate, cmd.Primary)
}

func (s *NickGroupService) stage(duplicate, primary nick.Nickname) ([]stagedValue, error) {
	staged := make([]stagedValue, 0, len(s.fields))
	for _, field := range s.fields {
		duplicateValue, err := s.repository.GetValue(duplicate, field.Name)
		if err != nil {
			return nil, err
		}
		primaryValue, err := s.repository.GetValue(primary, field.Name)
		if err != nil {
			return nil, err
		}
		value, err := field.Policy.Combine(lo.FromPtr(duplicateValue), lo.FromPtr(primaryValue))
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		staged = append(staged, stagedValue{field: field.Name, value: value})
	}
	return staged, nil
}

// Unmerge removes a nick from its group so it is learned again as a new user.
func (s *NickGroupService) Unmerge(ctx context.Context, cmd nick.UnmergeCommand) nick.Reply {
	if err := cmd.Validate(); err != nil {
		return nick.Say(nick.UnmergeSyntax)
	}

	group, err := s.repository.ResolveGroupID(cmd.Target, false)
	if err != nil {
		return s.lookupFailure(ctx, err, nick.Say(nick.UnmergeUnknown))
	}

	err = s.repository.RemoveFromGroup(cmd.Target)
	switch {
	case err == nil:
		s.log.InfoContext(ctx, "Nick removed from group", "nick", cmd.Target, "group", group)
		return nick.Say(nick.UnmergeDone, cmd.Target, group)
	case goerrors.Is(err, errors.ErrAlreadySingleton):
		return nick.Say(nick.NotGrouped, group)
	default:
		return s.lookupFailure(ctx, err, nick.Say(nick.UnmergeUnknown))
	}
}

// ShowGroup lists the other nicks of a nick's group, or every nick of a group
// when the target is a numeric group id that no nick is called after.
func (s *NickGroupService) ShowGroup(ctx context.Context, cmd nick.ShowGroupCommand) nick.Reply {
	if err := cmd.Validate(); err != nil {
		return nick.Say(nick.GlistSyntax)
	}
	target := cmd.Target

	idLookup := false
	group, err := s.repository.ResolveGroupID(target, false)
	if err != nil {
		if !goerrors.Is(err, errors.ErrNickNotFound) {
			return s.storeFailure(ctx, "shownickgroup", err)
		}
		if !target.IsDigit() {
			return nick.Say(nick.GlistFailed, target)
		}
		id, parseErr := strconv.ParseInt(target.String(), 10, 64)
		if parseErr != nil {
			return nick.Say(nick.GlistFailed, target)
		}
		group = nick.GroupID(id)
		idLookup = true
	}

	nicknames, err := s.repository.ListNicknamesInGroup(group)
	if err != nil {
		return s.storeFailure(ctx, "shownickgroup", err)
	}
	if len(nicknames) == 0 {
		return nick.Say(nick.GlistFailed, target)
	}
	if idLookup {
		return nick.Say(nick.GlistByID, target, joinNicknames(nicknames))
	}

	others := withoutNickname(nicknames, target)
	if len(others) == 0 {
		return nick.Say(nick.GlistEmpty, target)
	}
	return nick.Say(nick.GlistByNick, target, joinNicknames(others))
}

func (s *NickGroupService) lookupFailure(ctx context.Context, err error, notFound nick.Reply) nick.Reply {
	if goerrors.Is(err, errors.ErrNickNotFound) {
		return notFound
	}
	return s.storeFailure(ctx, "lookup", err)
}

func (s *NickGroupService) storeFailure(ctx context.Context, operation string, err error) nick.Reply {
	s.log.ErrorContext(ctx, "Nick store failure", "operation", operation, "error", err)
	return nick.ReplyTo(nick.StoreFailure)
}

// withoutNickname drops the first member matching the target, if any.
func withoutNickname(nicknames []nick.Nickname, target nick.Nickname) []nick.Nickname {
	_, i, found := lo.FindIndexOf(nicknames, func(n nick.Nickname) bool {
		return n.Equal(target)
	})
	if !found {
		return nicknames
	}
	return slices.Delete(slices.Clone(nicknames), i, i+1)
}

func joinNicknames(nicknames []nick.Nickname) string {
	return strings.Join(lo.Map(nicknames, func(n nick.Nickname, _ int) string {
		return n.String()
	}), ", ")
}
