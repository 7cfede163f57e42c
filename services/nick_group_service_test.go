package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"nick-lab/domain/nick"
	"nick-lab/errors"
	"nick-lab/mocks"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	duplicate = nick.Nickname("newbie")
	primary   = nick.Nickname("old_friend")
)

func newService(t *testing.T, fields nick.FieldSet) (*NickGroupService, *mocks.MockINickRepository) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockINickRepository(ctrl)
	return NewNickGroupService(mockRepo, fields, slog.Default()), mockRepo
}

func expectNoWrite(mockRepo *mocks.MockINickRepository) {
	mockRepo.EXPECT().GetValue(gomock.Any(), gomock.Any()).Times(0)
	mockRepo.EXPECT().SetValue(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	mockRepo.EXPECT().MergeGroups(gomock.Any(), gomock.Any()).Times(0)
}

func TestNickGroupService_Merge(t *testing.T) {
	fields := nick.NewFieldSet([]string{"wins"}, []string{"last_used"})

	t.Run("should sum stats and keep the latest rate", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo := newService(t, fields)

		mockRepo.EXPECT().ResolveGroupID(duplicate, false).Return(nick.GroupID(2), nil)
		mockRepo.EXPECT().ResolveGroupID(primary, false).Return(nick.GroupID(1), nil)

		// Every read happens before the first write
		gomock.InOrder(
			mockRepo.EXPECT().GetValue(duplicate, "wins").Return(lo.ToPtr(int64(3)), nil),
			mockRepo.EXPECT().GetValue(primary, "wins").Return(lo.ToPtr(int64(5)), nil),
			mockRepo.EXPECT().GetValue(duplicate, "last_used").Return(lo.ToPtr(int64(100)), nil),
			mockRepo.EXPECT().GetValue(primary, "last_used").Return(lo.ToPtr(int64(80)), nil),
			mockRepo.EXPECT().SetValue(primary, "wins", int64(8)).Return(nil),
			mockRepo.EXPECT().SetValue(duplicate, "wins", int64(0)).Return(nil),
			mockRepo.EXPECT().SetValue(primary, "last_used", int64(100)).Return(nil),
			mockRepo.EXPECT().SetValue(duplicate, "last_used", int64(0)).Return(nil),
			mockRepo.EXPECT().MergeGroups(primary, duplicate).Return(nil),
		)

		reply := svc.Merge(context.Background(), nick.ParseMergeCommand([]string{"newbie", "into", "old_friend"}))

		req.Equal(nick.Say(nick.MergeDone, duplicate, primary), reply)
		req.Equal("Merged newbie into old_friend.", nick.DefaultCatalog.Render(reply))
	})

	t.Run("should treat missing values as zero", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo := newService(t, fields)

		mockRepo.EXPECT().ResolveGroupID(duplicate, false).Return(nick.GroupID(2), nil)
		mockRepo.EXPECT().ResolveGroupID(primary, false).Return(nick.GroupID(1), nil)
		mockRepo.EXPECT().GetValue(duplicate, "wins").Return(nil, nil)
		mockRepo.EXPECT().GetValue(primary, "wins").Return(lo.ToPtr(int64(5)), nil)
		mockRepo.EXPECT().GetValue(duplicate, "last_used").Return(lo.ToPtr(int64(10)), nil)
		mockRepo.EXPECT().GetValue(primary, "last_used").Return(nil, nil)
		mockRepo.EXPECT().SetValue(primary, "wins", int64(5)).Return(nil)
		mockRepo.EXPECT().SetValue(primary, "last_used", int64(10)).Return(nil)
		mockRepo.EXPECT().SetValue(duplicate, gomock.Any(), int64(0)).Return(nil).Times(2)
		mockRepo.EXPECT().MergeGroups(primary, duplicate).Return(nil)

		reply := svc.Merge(context.Background(), nick.ParseMergeCommand([]string{"newbie", "into", "old_friend"}))

		req.Equal(nick.MergeDone, reply.Key)
	})

	t.Run("should refuse a wrong syntax without touching the store", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo := newService(t, fields)
		mockRepo.EXPECT().ResolveGroupID(gomock.Any(), gomock.Any()).Times(0)
		expectNoWrite(mockRepo)

		for _, args := range [][]string{
			{"newbie", "onto", "old_friend"},
			{"newbie", "into"},
			{},
		} {
			reply := svc.Merge(context.Background(), nick.ParseMergeCommand(args))
			req.Equal(nick.ReplyTo(nick.MergeSyntax), reply)
		}
	})

	t.Run("should do nothing when nicks are already grouped", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo := newService(t, fields)

		mockRepo.EXPECT().ResolveGroupID(duplicate, false).Return(nick.GroupID(7), nil)
		mockRepo.EXPECT().ResolveGroupID(primary, false).Return(nick.GroupID(7), nil)
		expectNoWrite(mockRepo)

		reply := svc.Merge(context.Background(), nick.ParseMergeCommand([]string{"newbie", "into", "old_friend"}))

		req.Equal(nick.ReplyTo(nick.MergeGrouped, primary, duplicate), reply)
		req.Equal("Nicks old_friend & newbie are already grouped.", nick.DefaultCatalog.Render(reply))
	})

	t.Run("should abort on an unknown duplicate", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo := newService(t, fields)

		mockRepo.EXPECT().ResolveGroupID(duplicate, false).Return(nick.GroupID(0), errors.ErrNickNotFound)
		mockRepo.EXPECT().ResolveGroupID(primary, false).Times(0)
		expectNoWrite(mockRepo)

		reply := svc.Merge(context.Background(), nick.ParseMergeCommand([]string{"newbie", "into", "old_friend"}))

		req.Equal(nick.ReplyTo(nick.MergeUnknown), reply)
	})

	t.Run("should abort on an unknown primary", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo := newService(t, fields)

		mockRepo.EXPECT().ResolveGroupID(duplicate, false).Return(nick.GroupID(2), nil)
		mockRepo.EXPECT().ResolveGroupID(primary, false).
			Return(nick.GroupID(0), fmt.Errorf("%w: old_friend", errors.ErrNickNotFound))
		expectNoWrite(mockRepo)

		reply := svc.Merge(context.Background(), nick.ParseMergeCommand([]string{"newbie", "into", "old_friend"}))

		req.Equal(nick.MergeUnknown, reply.Key)
	})

	t.Run("should report a store failure and stop writing", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo := newService(t, nick.NewFieldSet([]string{"wins"}, nil))

		mockRepo.EXPECT().ResolveGroupID(duplicate, false).Return(nick.GroupID(2), nil)
		mockRepo.EXPECT().ResolveGroupID(primary, false).Return(nick.GroupID(1), nil)
		mockRepo.EXPECT().GetValue(gomock.Any(), "wins").Return(lo.ToPtr(int64(1)), nil).Times(2)
		mockRepo.EXPECT().SetValue(primary, "wins", int64(2)).Return(fmt.Errorf("disk full"))
		mockRepo.EXPECT().SetValue(duplicate, gomock.Any(), gomock.Any()).Times(0)
		mockRepo.EXPECT().MergeGroups(gomock.Any(), gomock.Any()).Times(0)

		reply := svc.Merge(context.Background(), nick.ParseMergeCommand([]string{"newbie", "into", "old_friend"}))

		req.Equal(nick.ReplyTo(nick.StoreFailure), reply)
	})
}

func TestNickGroupService_Merge_Properties(t *testing.T) {
	fields := nick.NewFieldSet([]string{"wins"}, []string{"last_used"})
	pairs := [][2]int64{{0, 0}, {3, 5}, {5, 3}, {100, 80}, {1 << 40, 7}}

	for _, pair := range pairs {
		t.Run(fmt.Sprintf("duplicate=%d primary=%d", pair[0], pair[1]), func(t *testing.T) {
			req := require.New(t)
			svc, mockRepo := newService(t, fields)
			written := map[string]int64{}

			mockRepo.EXPECT().ResolveGroupID(duplicate, false).Return(nick.GroupID(2), nil)
			mockRepo.EXPECT().ResolveGroupID(primary, false).Return(nick.GroupID(1), nil)
			mockRepo.EXPECT().GetValue(duplicate, gomock.Any()).Return(lo.ToPtr(pair[0]), nil).Times(2)
			mockRepo.EXPECT().GetValue(primary, gomock.Any()).Return(lo.ToPtr(pair[1]), nil).Times(2)
			mockRepo.EXPECT().SetValue(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(n nick.Nickname, field string, value int64) error {
					written[n.String()+"."+field] = value
					return nil
				}).Times(4)
			mockRepo.EXPECT().MergeGroups(primary, duplicate).Return(nil)

			svc.Merge(context.Background(), nick.MergeCommand{Duplicate: duplicate, Connective: "into", Primary: primary})

			req.Equal(pair[0]+pair[1], written["old_friend.wins"])
			req.Equal(max(pair[0], pair[1]), written["old_friend.last_used"])
			req.Zero(written["newbie.wins"])
			req.Zero(written["newbie.last_used"])
		})
	}

	overflows := [][2]int64{{math.MaxInt64, 1}, {1, math.MaxInt64}, {math.MinInt64, -1}}
	for _, pair := range overflows {
		t.Run(fmt.Sprintf("duplicate=%d primary=%d overflows", pair[0], pair[1]), func(t *testing.T) {
			req := require.New(t)
			svc, mockRepo := newService(t, fields)

			mockRepo.EXPECT().ResolveGroupID(duplicate, false).Return(nick.GroupID(2), nil)
			mockRepo.EXPECT().ResolveGroupID(primary, false).Return(nick.GroupID(1), nil)
			mockRepo.EXPECT().GetValue(duplicate, "wins").Return(lo.ToPtr(pair[0]), nil)
			mockRepo.EXPECT().GetValue(primary, "wins").Return(lo.ToPtr(pair[1]), nil)
			mockRepo.EXPECT().SetValue(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			mockRepo.EXPECT().MergeGroups(gomock.Any(), gomock.Any()).Times(0)

			reply := svc.Merge(context.Background(), nick.MergeCommand{Duplicate: duplicate, Connective: "into", Primary: primary})

			req.Equal(nick.ReplyTo(nick.StoreFailure), reply)
		})
	}
}

func TestNickGroupService_Unmerge(t *testing.T) {
	target := nick.Nickname("DeadAlias")

	t.Run("should remove the nick from its group", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo := newService(t, nil)

		mockRepo.EXPECT().ResolveGroupID(target, false).Return(nick.GroupID(12), nil)
		mockRepo.EXPECT().RemoveFromGroup(target).Return(nil).Times(1)

		reply := svc.Unmerge(context.Background(), nick.ParseUnmergeCommand([]string{"DeadAlias"}))

		req.Equal(nick.Say(nick.UnmergeDone, target, nick.GroupID(12)), reply)
		req.Equal("Removed DeadAlias from nick group 12.", nick.DefaultCatalog.Render(reply))
	})

	t.Run("should have nothing to do for a sole member", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo := newService(t, nil)

		mockRepo.EXPECT().ResolveGroupID(target, false).Return(nick.GroupID(12), nil)
		mockRepo.EXPECT().RemoveFromGroup(target).Return(fmt.Errorf("%w: DeadAlias", errors.ErrAlreadySingleton))

		reply := svc.Unmerge(context.Background(), nick.ParseUnmergeCommand([]string{"DeadAlias"}))

		req.Equal("Nick group 12 contains only one nick; nothing to do.", nick.DefaultCatalog.Render(reply))
	})

	t.Run("should abort on an unknown nick", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo := newService(t, nil)

		mockRepo.EXPECT().ResolveGroupID(target, false).Return(nick.GroupID(0), errors.ErrNickNotFound)
		mockRepo.EXPECT().RemoveFromGroup(gomock.Any()).Times(0)

		reply := svc.Unmerge(context.Background(), nick.ParseUnmergeCommand([]string{"DeadAlias"}))

		req.Equal(nick.Say(nick.UnmergeUnknown), reply)
	})

	t.Run("should ask for a nick", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo := newService(t, nil)
		mockRepo.EXPECT().ResolveGroupID(gomock.Any(), gomock.Any()).Times(0)

		reply := svc.Unmerge(context.Background(), nick.ParseUnmergeCommand(nil))

		req.Equal(nick.Say(nick.UnmergeSyntax), reply)
	})
}

func TestNickGroupService_ShowGroup(t *testing.T) {
	t.Run("should list the other nicks of the group", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo := newService(t, nil)

		mockRepo.EXPECT().ResolveGroupID(nick.Nickname("NewBie"), false).Return(nick.GroupID(4), nil)
		mockRepo.EXPECT().ListNicknamesInGroup(nick.GroupID(4)).
			Return([]nick.Nickname{"newbie", "newbie_away", "old_friend"}, nil)

		reply := svc.ShowGroup(context.Background(), nick.ParseShowGroupCommand([]string{"NewBie"}))

		req.Equal("Other nicks in NewBie's group: newbie_away, old_friend.", nick.DefaultCatalog.Render(reply))
	})

	t.Run("should tell when no other nick is grouped", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo := newService(t, nil)

		mockRepo.EXPECT().ResolveGroupID(nick.Nickname("alice"), false).Return(nick.GroupID(4), nil)
		mockRepo.EXPECT().ListNicknamesInGroup(nick.GroupID(4)).Return([]nick.Nickname{"Alice"}, nil)

		reply := svc.ShowGroup(context.Background(), nick.ParseShowGroupCommand([]string{"alice"}))

		req.Equal(nick.Say(nick.GlistEmpty, nick.Nickname("alice")), reply)
	})

	t.Run("should tolerate a target missing from the group", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo := newService(t, nil)

		mockRepo.EXPECT().ResolveGroupID(nick.Nickname("alice"), false).Return(nick.GroupID(4), nil)
		mockRepo.EXPECT().ListNicknamesInGroup(nick.GroupID(4)).Return([]nick.Nickname{"bob"}, nil)

		reply := svc.ShowGroup(context.Background(), nick.ParseShowGroupCommand([]string{"alice"}))

		req.Equal(nick.Say(nick.GlistByNick, nick.Nickname("alice"), "bob"), reply)
	})

	t.Run("should look up a numeric group id", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo := newService(t, nil)

		mockRepo.EXPECT().ResolveGroupID(nick.Nickname("1337"), false).Return(nick.GroupID(0), errors.ErrNickNotFound)
		mockRepo.EXPECT().ListNicknamesInGroup(nick.GroupID(1337)).Return([]nick.Nickname{"leet", "1337"}, nil)

		reply := svc.ShowGroup(context.Background(), nick.ParseShowGroupCommand([]string{"1337"}))

		// The queried token is kept in id lookup mode
		req.Equal("Nicks in group 1337: leet, 1337.", nick.DefaultCatalog.Render(reply))
	})

	t.Run("should fail on an empty group id", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo := newService(t, nil)

		mockRepo.EXPECT().ResolveGroupID(nick.Nickname("42"), false).Return(nick.GroupID(0), errors.ErrNickNotFound)
		mockRepo.EXPECT().ListNicknamesInGroup(nick.GroupID(42)).Return(nil, nil)

		reply := svc.ShowGroup(context.Background(), nick.ParseShowGroupCommand([]string{"42"}))

		req.Equal(nick.Say(nick.GlistFailed, nick.Nickname("42")), reply)
	})

	t.Run("should fail on an unknown nick", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo := newService(t, nil)

		mockRepo.EXPECT().ResolveGroupID(nick.Nickname("ghost"), false).Return(nick.GroupID(0), errors.ErrNickNotFound)
		mockRepo.EXPECT().ListNicknamesInGroup(gomock.Any()).Times(0)

		reply := svc.ShowGroup(context.Background(), nick.ParseShowGroupCommand([]string{"ghost"}))

		req.Equal("Could not find nick group for ghost.", nick.DefaultCatalog.Render(reply))
	})

	t.Run("should ask for a nick", func(t *testing.T) {
		req := require.New(t)
		svc, _ := newService(t, nil)

		reply := svc.ShowGroup(context.Background(), nick.ParseShowGroupCommand(nil))

		req.Equal(nick.Say(nick.GlistSyntax), reply)
	})

	t.Run("should report a store failure", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo := newService(t, nil)

		mockRepo.EXPECT().ResolveGroupID(nick.Nickname("alice"), false).Return(nick.GroupID(0), fmt.Errorf("io error"))

		reply := svc.ShowGroup(context.Background(), nick.ParseShowGroupCommand([]string{"alice"}))

		req.Equal(nick.StoreFailure, reply.Key)
	})
}
