package cache

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
)

func NewStore() (*ristretto_store.RistrettoStore, error) {
	inner, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     10 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to initialize ristretto: %v", err)
	}

	return ristretto_store.NewRistretto(inner), nil
}
