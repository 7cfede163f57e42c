package test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"nick-lab/domain/nick"
	"nick-lab/observability"
	"nick-lab/repositories"
	"nick-lab/runtime"
	"nick-lab/runtime/workers"
	"nick-lab/services"
	"nick-lab/sink"
	"strings"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func Test_Scenario(t *testing.T) {
	ctx := context.Background()
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR).
		WithValueLogFileSize(16 << 20))
	req.NoError(err)
	defer db.Close()

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	store, err := repositories.NewNickRepository(db, log)
	req.NoError(err)
	defer store.Close()

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)
	repository := repositories.NewCachedNickRepository(store, 1, log, metrics)
	cacheEntries := observability.NewCacheEntriesGauge(registry, repository.EntryCount)
	fields := nick.NewFieldSet([]string{"wins"}, []string{"last_used"})
	commands := runtime.NewCommandRegistry()
	runtime.RegisterNickCommands(commands, services.NewNickGroupService(repository, fields, log))

	var out bytes.Buffer
	dispatcher := runtime.NewDispatcher(log, commands, nick.DefaultCatalog,
		sink.NewConsoleSink(&out, "nickbot"), metrics, ".", []nick.Nickname{"owner"})

	// Given two known nicks with their own stats
	req.NoError(repository.SetValue("newbie", "wins", 3))
	req.NoError(repository.SetValue("newbie", "last_used", 100))
	req.NoError(repository.SetValue("old_friend", "wins", 5))
	req.NoError(repository.SetValue("old_friend", "last_used", 80))
	req.NoError(repository.SetValue("old_friend", "untracked", 1))
	primaryGroup, err := repository.ResolveGroupID("old_friend", false)
	req.NoError(err)

	// When the owner merges newbie into old_friend through the console
	input := strings.Join([]string{
		"mallory .nickmerge newbie into old_friend",
		"owner .nickmerge newbie into old_friend",
		"owner .nickmerge newbie into old_friend",
		"owner .nickmerge ghost into old_friend",
		"alice .shownickgroup old_friend",
		"alice .shownickgroup " + primaryGroup.String(),
		"owner .nickunmerge newbie",
		"owner .nickunmerge old_friend",
		"alice .shownickgroup newbie",
		"alice .shownickgroup old_friend",
	}, "\n")
	worker := workers.NewConsoleWorker(log, dispatcher, strings.NewReader(input))
	req.NoError(worker.Run(ctx))

	// Then every command got its answer
	group := primaryGroup.String()
	expected := []string{
		"<nickbot> mallory: Only the bot owner can merge users.",
		"<nickbot> Merged newbie into old_friend.",
		"<nickbot> owner: Nicks old_friend & newbie are already grouped.",
		"<nickbot> owner: Encountered unknown nick. Aborting merge.",
		"<nickbot> Other nicks in old_friend's group: newbie.",
		fmt.Sprintf("<nickbot> Nicks in group %s: newbie, old_friend.", group),
		fmt.Sprintf("<nickbot> Removed newbie from nick group %s.", group),
		fmt.Sprintf("<nickbot> Nick group %s contains only one nick; nothing to do.", group),
		"<nickbot> Could not find nick group for newbie.",
		"<nickbot> No nicks grouped with old_friend.",
	}
	lines := strings.Split(strings.TrimSpace(color.ClearCode(out.String())), "\n")
	req.Equal(expected, lines)

	// And the merged stats live on the primary's group
	wins, err := repository.GetValue("old_friend", "wins")
	req.NoError(err)
	req.Equal(int64(8), lo.FromPtr(wins))
	lastUsed, err := repository.GetValue("old_friend", "last_used")
	req.NoError(err)
	req.Equal(int64(100), lo.FromPtr(lastUsed))
	untracked, err := repository.GetValue("old_friend", "untracked")
	req.NoError(err)
	req.Equal(int64(1), lo.FromPtr(untracked))

	// And the unmerged nick is learned again as a fresh identity
	fresh, err := repository.ResolveGroupID("newbie", true)
	req.NoError(err)
	req.NotEqual(primaryGroup, fresh)
	value, err := repository.GetValue("newbie", "wins")
	req.NoError(err)
	req.Nil(value)

	req.Equal(float64(1), counterValue(t, registry, "nicklab_commands_total", "nickmerge", "MERGE_DONE"))
	req.Equal(float64(1), counterValue(t, registry, "nicklab_commands_total", "nickmerge", "OWNER_MERGE"))
	req.Positive(testutil.ToFloat64(cacheEntries))
	req.Equal(float64(repository.EntryCount()), testutil.ToFloat64(cacheEntries))
}

func counterValue(t *testing.T, registry *prometheus.Registry, name, command, outcome string) float64 {
	t.Helper()
	families, err := registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			labels := lo.SliceToMap(m.GetLabel(), func(pair *dto.LabelPair) (string, string) {
				return pair.GetName(), pair.GetValue()
			})
			if labels["command"] == command && labels["outcome"] == outcome {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}
