// Package search provides ranked fuzzy lookup of items across a playlist
// tree.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/cueset/internal/domain"
)

// Match is one ranked hit. FolderPath is the slash path of the folder owning
// the item, empty for root-level items.
type Match struct {
	Item       *domain.Item
	FolderPath string
	Rank       int // lower is better
}

type entry struct {
	item *domain.Item
	path string
}

// Items returns the playlist's items whose display name fuzzily matches the
// query, best matches first. An empty query matches nothing.
func Items(p *domain.Playlist, query string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	entries := collect(p.RootChildren, "", nil)
	if len(entries) == 0 {
		return nil
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.item.DisplayName()
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	matches := make([]Match, 0, len(ranks))
	for _, r := range ranks {
		matches = append(matches, Match{
			Item:       entries[r.OriginalIndex].item,
			FolderPath: entries[r.OriginalIndex].path,
			Rank:       r.Distance,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Rank < matches[j].Rank
	})
	return matches
}

func collect(forest domain.Nodes, path string, acc []entry) []entry {
	for _, n := range forest {
		switch v := n.(type) {
		case *domain.Item:
			acc = append(acc, entry{item: v, path: path})
		case *domain.Folder:
			acc = collect(v.Children, path+"/"+v.Name, acc)
		}
	}
	return acc
}
