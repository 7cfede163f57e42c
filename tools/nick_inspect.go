package main

import (
	"flag"
	"fmt"
	"log"
	"nick-lab/repositories"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
)

type groupRow struct {
	nicks  []string
	values []string
}

func main() {
	dbPath := flag.String("db", "./data/badger", "Path to badger DB")
	flag.Parse()

	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	groups := make(map[int64]*groupRow)
	row := func(id int64) *groupRow {
		if _, ok := groups[id]; !ok {
			groups[id] = &groupRow{}
		}
		return groups[id]
	}

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := string(item.Key())
			err := item.Value(func(v []byte) error {
				switch {
				case strings.HasPrefix(key, "nick:"):
					var record repositories.NickRecord
					if err := json.Unmarshal(v, &record); err != nil {
						fmt.Printf("Error unmarshaling key %s: %v\n", key, err)
						return nil
					}
					row(record.ID).nicks = append(row(record.ID).nicks, record.Canonical)
				case strings.HasPrefix(key, "value:"):
					rawID, field, ok := strings.Cut(strings.TrimPrefix(key, "value:"), ":")
					if !ok {
						return nil
					}
					id, err := strconv.ParseInt(rawID, 10, 64)
					if err != nil {
						return nil
					}
					row(id).values = append(row(id).values, fmt.Sprintf("%s=%s", field, v))
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	ids := make([]int64, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Group", "Nicks", "Values"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, id := range ids {
		g := groups[id]
		sort.Strings(g.nicks)
		table.Append([]string{
			strconv.FormatInt(id, 10),
			strings.Join(g.nicks, ", "),
			strings.Join(g.values, " "),
		})
	}
	table.Render()
}
