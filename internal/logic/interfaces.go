package logic

import "libcatalog/internal/domain"

// CollectionStore holds the most recently loaded collection.
// Every Replace bumps a generation counter so readers can key caches on it.
type CollectionStore interface {
	Snapshot() (domain.Collection, uint64)
	Replace(records domain.Collection) uint64
	Len() int
}
