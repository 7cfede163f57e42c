package repositories

import (
	"encoding/binary"
	goerrors "errors"
	"log/slog"
	"nick-lab/domain/nick"

	"github.com/coocood/freecache"
)

// CachedNickRepository keeps resolved group ids in memory.
// Any write that can move a nick between groups clears the whole cache.
type CachedNickRepository struct {
	INickRepository
	cache    *freecache.Cache
	log      *slog.Logger
	observer CacheObserver
}

type CacheObserver interface {
	IncCacheHits()
	IncCacheMisses()
}

func NewCachedNickRepository(repository INickRepository, sizeMB int, log *slog.Logger, observer CacheObserver) *CachedNickRepository {
	return &CachedNickRepository{
		INickRepository: repository,
		cache:           freecache.NewCache(sizeMB * 1024 * 1024),
		log:             log,
		observer:        observer,
	}
}

func (c *CachedNickRepository) ResolveGroupID(nickname nick.Nickname, create bool) (nick.GroupID, error) {
	key := []byte(nickname.Slug())
	if cached, err := c.cache.Get(key); err == nil && len(cached) == 8 {
		c.observer.IncCacheHits()
		return nick.GroupID(binary.BigEndian.Uint64(cached)), nil
	} else if err != nil && !goerrors.Is(err, freecache.ErrNotFound) {
		c.log.Warn("Nick cache lookup failed", "nick", nickname, "error", err)
	}
	c.observer.IncCacheMisses()

	id, err := c.INickRepository.ResolveGroupID(nickname, create)
	if err != nil {
		return 0, err
	}
	value := make([]byte, 8)
	binary.BigEndian.PutUint64(value, uint64(id))
	if err = c.cache.Set(key, value, 0); err != nil {
		c.log.Warn("Nick cache store failed", "nick", nickname, "error", err)
	}
	return id, nil
}

func (c *CachedNickRepository) MergeGroups(primary, duplicate nick.Nickname) error {
	defer c.cache.Clear()
	return c.INickRepository.MergeGroups(primary, duplicate)
}

func (c *CachedNickRepository) RemoveFromGroup(nickname nick.Nickname) error {
	defer c.cache.Clear()
	return c.INickRepository.RemoveFromGroup(nickname)
}

// EntryCount backs the nicklab_nick_cache_entries gauge.
func (c *CachedNickRepository) EntryCount() int64 {
	return c.cache.EntryCount()
}
