package mdimport

import "github.com/google/uuid"

// idAllocator produces fresh, pairwise-unique block identifiers. A UUID-style
// generator suffices here: stability across runs is not required, only
// uniqueness within a snapshot. uuid.NewString is backed by crypto/rand and
// is safe for concurrent use, so two Importers converting independent
// documents on separate goroutines never collide.
type idAllocator struct{}

func newIDAllocator() *idAllocator { return &idAllocator{} }

func (*idAllocator) fresh() string {
	return uuid.NewString()
}
