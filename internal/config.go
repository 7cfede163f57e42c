package internal

import (
	"fmt"
	"nick-lab/domain/nick"
	"nick-lab/errors"
	"strings"
	"time"

	"github.com/samber/lo"
)

type Config struct {
	BadgerFilepath  string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	BotName         string        `env:"BOT_NAME,default=nickbot"`
	CommandPrefix   string        `env:"COMMAND_PREFIX,default=."`
	OwnerNicks      string        `env:"OWNER_NICKS,required=true"`
	StatFields      string        `env:"STAT_FIELDS"`
	RateFields      string        `env:"RATE_FIELDS"`
	CacheSizeMB     int           `env:"CACHE_SIZE_MB,default=8"`
	MetricsAddr     string        `env:"METRICS_ADDR"`
	DebugPort       int           `env:"DEBUG_PORT,default=8081"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms"`
}

// Owners splits OWNER_NICKS on commas.
func (c Config) Owners() ([]nick.Nickname, error) {
	owners := lo.Map(splitList(c.OwnerNicks), func(s string, _ int) nick.Nickname {
		return nick.Nickname(s)
	})
	if len(owners) == 0 {
		return nil, fmt.Errorf("OWNER_NICKS must name at least one nick, got %q", c.OwnerNicks)
	}
	return owners, nil
}

// FieldSet returns the merged fields. An unset list falls back to its built-in default,
// a list set to "-" is disabled.
func (c Config) FieldSet() (nick.FieldSet, error) {
	stats := fieldList(c.StatFields, nick.DefaultStatFields)
	rates := fieldList(c.RateFields, nick.DefaultRateFields)
	set := nick.NewFieldSet(stats, rates)
	if len(set) == 0 {
		return nil, errors.ErrInvalidFieldSet
	}
	return set, nil
}

func fieldList(value string, fallback []string) []string {
	switch strings.TrimSpace(value) {
	case "":
		return fallback
	case "-":
		return nil
	default:
		return splitList(value)
	}
}

func splitList(value string) []string {
	return lo.Compact(lo.Map(strings.Split(value, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
}
