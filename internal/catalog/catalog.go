// Package catalog holds the immutable in-memory snapshots the engine
// computes over: the game catalog and the per-user rating collections.
// Both are loaded once at startup and are read-only for the life of the
// process, so requests can share them without locking.
package catalog

import "github.com/brandonp20/board-game-rec/internal/domain"

// Snapshot is the full catalog in stable load order. The slice order is
// the deterministic tie-break for pagination, so it must not be reordered
// after construction.
type Snapshot struct {
	games []domain.GameRecord
	byID  map[int64]int
}

// NewSnapshot builds a snapshot over games. The slice is retained as-is;
// callers must not mutate it afterwards.
func NewSnapshot(games []domain.GameRecord) *Snapshot {
	byID := make(map[int64]int, len(games))
	for i, g := range games {
		byID[g.BggID] = i
	}
	return &Snapshot{games: games, byID: byID}
}

// Games returns the catalog in stable order. Read-only.
func (s *Snapshot) Games() []domain.GameRecord {
	return s.games
}

// Get looks a game up by its catalog id.
func (s *Snapshot) Get(id int64) (domain.GameRecord, bool) {
	i, ok := s.byID[id]
	if !ok {
		return domain.GameRecord{}, false
	}
	return s.games[i], true
}

// Order returns the stable catalog position of a game id, or -1.
func (s *Snapshot) Order(id int64) int {
	if i, ok := s.byID[id]; ok {
		return i
	}
	return -1
}

// Len reports the catalog size.
func (s *Snapshot) Len() int {
	return len(s.games)
}

// CollectionIndex buckets rating entries by user and by game, which is all
// the overlap finder needs: who rated a favorite, and what else they rated.
type CollectionIndex struct {
	byUser map[string][]domain.RatingEntry
	byGame map[int64][]domain.RatingEntry
}

// NewCollectionIndex builds both buckets from a flat entry list.
func NewCollectionIndex(entries []domain.RatingEntry) *CollectionIndex {
	idx := &CollectionIndex{
		byUser: make(map[string][]domain.RatingEntry),
		byGame: make(map[int64][]domain.RatingEntry),
	}
	for _, e := range entries {
		idx.byUser[e.Username] = append(idx.byUser[e.Username], e)
		idx.byGame[e.GameID] = append(idx.byGame[e.GameID], e)
	}
	return idx
}

// RatingsByUser returns every rating a user holds.
func (i *CollectionIndex) RatingsByUser(username string) []domain.RatingEntry {
	return i.byUser[username]
}

// RatingsByGame returns every rating a game received.
func (i *CollectionIndex) RatingsByGame(gameID int64) []domain.RatingEntry {
	return i.byGame[gameID]
}

// Len reports the number of distinct rated games.
func (i *CollectionIndex) Len() int {
	return len(i.byGame)
}
