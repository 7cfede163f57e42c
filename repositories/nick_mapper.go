package repositories

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mama165/sdk-go/database"
)

// NickMapper renders the nick store keys for the badger debug inspector.
func NickMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)

	switch {
	case strings.HasPrefix(key, nickPrefix):
		var record NickRecord
		if err := json.Unmarshal(val, &record); err != nil {
			row.Detail = "Error: unmarshal failed"
			return row
		}
		row.Type = "NICK"
		row.Namespace = "nick"
		row.EntityID = strconv.FormatInt(record.ID, 10)
		row.Detail = record.Canonical
	case strings.HasPrefix(key, groupPrefix):
		id, slug, _ := strings.Cut(strings.TrimPrefix(key, groupPrefix), ":")
		row.Type = "MEMBER"
		row.Namespace = "group"
		row.EntityID = id
		row.Detail = string(val) + " (" + slug + ")"
	case strings.HasPrefix(key, valuePrefix):
		id, field, _ := strings.Cut(strings.TrimPrefix(key, valuePrefix), ":")
		var value int64
		if err := json.Unmarshal(val, &value); err != nil {
			row.Detail = "Error: unmarshal failed"
			return row
		}
		row.Type = "VALUE"
		row.Namespace = "value"
		row.EntityID = id
		row.Detail = field
		row.Scores = strconv.FormatInt(value, 10)
	}
	return row
}
