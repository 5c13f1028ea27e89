// Package ranking keeps a user's restaurant leaderboard consistent when the
// user reorders it by hand.
//
// Everything here is a pure function of its inputs. Callers read rated items
// from storage, ask for an order or a plan, and persist the result themselves.
package ranking

import (
	"cmp"
	"slices"

	"github.com/platelistapp/platelist-server/internal/domain"
)

// Order returns the canonical display order of items.
//
// Unrated items are dropped. Items with a manual rank come first, by rank
// ascending; the rest follow by rating descending. Equal keys keep their
// input order so repeated calls never flicker.
func Order(items []domain.RatedItem) []domain.RatedItem {
	ordered := make([]domain.RatedItem, 0, len(items))
	for _, item := range items {
		if item.IsRated() {
			ordered = append(ordered, item)
		}
	}

	slices.SortStableFunc(ordered, compare)
	return ordered
}

func compare(a, b domain.RatedItem) int {
	switch {
	case a.HasManualRank() && b.HasManualRank():
		return cmp.Compare(*a.ManualRank, *b.ManualRank)
	case a.HasManualRank():
		return -1
	case b.HasManualRank():
		return 1
	default:
		// Descending.
		return cmp.Compare(*b.Rating, *a.Rating)
	}
}

// Drifted reports whether the order a client is looking at no longer matches
// the canonical order, e.g. because another session reordered in the meantime.
func Drifted(viewIDs []string, canonical []domain.RatedItem) bool {
	if len(viewIDs) != len(canonical) {
		return true
	}
	for i, item := range canonical {
		if viewIDs[i] != item.ID {
			return true
		}
	}
	return false
}

// IDs returns the item IDs in order.
func IDs(items []domain.RatedItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

// Baseline returns the rank updates that make stored ranks match the given
// order exactly (1..N). Items already at their position are skipped.
func Baseline(order []domain.RatedItem) []domain.RankUpdate {
	var updates []domain.RankUpdate
	for i, item := range order {
		if item.HasManualRank() && *item.ManualRank == i+1 {
			continue
		}
		updates = append(updates, domain.RankUpdate{ItemID: item.ID, NewManualRank: i + 1})
	}
	return updates
}

// Merge combines two update sets. Updates in override win over base for the same item.
// The result lists base order first, then items only present in override.
func Merge(base, override []domain.RankUpdate) []domain.RankUpdate {
	if len(base) == 0 {
		return slices.Clone(override)
	}

	byID := make(map[string]int, len(override))
	for _, u := range override {
		byID[u.ItemID] = u.NewManualRank
	}

	merged := make([]domain.RankUpdate, 0, len(base)+len(override))
	seen := make(map[string]bool, len(base))
	for _, u := range base {
		if rank, ok := byID[u.ItemID]; ok {
			u.NewManualRank = rank
		}
		merged = append(merged, u)
		seen[u.ItemID] = true
	}
	for _, u := range override {
		if !seen[u.ItemID] {
			merged = append(merged, u)
		}
	}
	return merged
}
