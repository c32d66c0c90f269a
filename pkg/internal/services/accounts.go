package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/picshare/picshare/pkg/internal/models"
	"gorm.io/gorm"
)

// Directory resolves account identifiers to account records. It is strictly
// read-only; edge sets are mutated through the GraphStore and post lists
// through the Fanout engine.
type Directory struct {
	db      *gorm.DB
	marshal *marshaler.Marshaler
}

func NewDirectory(db *gorm.DB, cacheStore store.StoreInterface) *Directory {
	cacheManager := cache.New[any](cacheStore)
	return &Directory{
		db:      db,
		marshal: marshaler.New(cacheManager),
	}
}

func (v *Directory) GetAccount(id string) (models.Account, error) {
	var account models.Account
	if err := v.db.Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, ErrAccountNotFound
		}
		return account, fmt.Errorf("unable to get account by id: %v", err)
	}
	return account, nil
}

// GetAccountByUsername caches only the username to id mapping; the record
// itself is always re-read so follower sets never come back stale.
func (v *Directory) GetAccountByUsername(username string) (models.Account, error) {
	ctx := context.Background()

	cacheKey := fmt.Sprintf("account-username#%s", username)
	if val, err := v.marshal.Get(ctx, cacheKey, new(string)); err == nil {
		if account, err := v.GetAccount(*(val.(*string))); err == nil {
			return account, nil
		}
	}

	var account models.Account
	if err := v.db.Where("username = ?", username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, ErrAccountNotFound
		}
		return account, fmt.Errorf("unable to get account by username: %v", err)
	}

	_ = v.marshal.Set(
		ctx,
		cacheKey,
		account.ID,
		store.WithExpiration(5*time.Minute),
		store.WithTags([]string{"account-username", fmt.Sprintf("account#%s", account.ID)}),
	)

	return account, nil
}
