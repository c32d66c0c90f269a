package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/picshare/picshare/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const graphWriteAttempts = 3

// GraphStore owns the followers/following edge sets. An edge between two
// accounts lives in both of their rows, so every mutation updates the pair
// inside one transaction; readers never observe a half-applied edge.
//
// Mutations serialize on per-account mutexes taken in sorted order (the
// service owns the graph exclusively, so in-process locking is enough).
// Edges sharing an endpoint serialize because they rewrite the same edge
// set column; fully disjoint edges do not contend with each other.
type GraphStore struct {
	db       *gorm.DB
	accounts sync.Map
}

func NewGraphStore(db *gorm.DB) *GraphStore {
	return &GraphStore{db: db}
}

func (v *GraphStore) Follow(followerID, followeeID string) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}
	return v.mutateEdge(followerID, followeeID, true)
}

func (v *GraphStore) Unfollow(followerID, followeeID string) error {
	if followerID == followeeID {
		return ErrNotFollowing
	}
	return v.mutateEdge(followerID, followeeID, false)
}

// ListFollowers returns a point-in-time snapshot of the follower set.
func (v *GraphStore) ListFollowers(accountID string) ([]string, error) {
	var account models.Account
	if err := v.db.Select("id", "followers").Where("id = ?", accountID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("unable to list followers: %v", err)
	}
	return account.Followers, nil
}

func (v *GraphStore) IsFollowing(followerID, followeeID string) (bool, error) {
	var account models.Account
	if err := v.db.Select("id", "following").Where("id = ?", followerID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrAccountNotFound
		}
		return false, fmt.Errorf("unable to check following: %v", err)
	}
	return lo.Contains([]string(account.Following), followeeID), nil
}

func (v *GraphStore) mutateEdge(followerID, followeeID string, insert bool) error {
	unlock := v.lockPair(followerID, followeeID)
	defer unlock()

	var err error
	for attempt := 0; attempt < graphWriteAttempts; attempt++ {
		err = v.db.Transaction(func(tx *gorm.DB) error {
			var rows []models.Account
			if err := tx.Where("id IN ?", []string{followerID, followeeID}).Find(&rows).Error; err != nil {
				return fmt.Errorf("unable to load edge accounts: %v", err)
			}
			if len(rows) != 2 {
				return ErrAccountNotFound
			}

			var follower, followee *models.Account
			for idx := range rows {
				switch rows[idx].ID {
				case followerID:
					follower = &rows[idx]
				case followeeID:
					followee = &rows[idx]
				}
			}

			present := lo.Contains([]string(followee.Followers), followerID)
			if insert {
				if present {
					return ErrAlreadyFollowing
				}
				followee.Followers = append(followee.Followers, followerID)
				follower.Following = append(follower.Following, followeeID)
			} else {
				if !present {
					return ErrNotFollowing
				}
				followee.Followers = datatypes.NewJSONSlice(lo.Without([]string(followee.Followers), followerID))
				follower.Following = datatypes.NewJSONSlice(lo.Without([]string(follower.Following), followeeID))
			}

			// Both sides commit together or not at all.
			if err := tx.Model(&models.Account{}).Where("id = ?", followee.ID).
				Update("followers", followee.Followers).Error; err != nil {
				return fmt.Errorf("unable to update follower set: %v", err)
			}
			if err := tx.Model(&models.Account{}).Where("id = ?", follower.ID).
				Update("following", follower.Following).Error; err != nil {
				return fmt.Errorf("unable to update following set: %v", err)
			}

			return nil
		})

		switch {
		case err == nil:
			return nil
		case errors.Is(err, ErrAccountNotFound),
			errors.Is(err, ErrAlreadyFollowing),
			errors.Is(err, ErrNotFollowing):
			return err
		}
		// Transient failure rolled the pair back as a unit; retry it whole.
	}

	return fmt.Errorf("unable to apply edge mutation after %d attempts: %v", graphWriteAttempts, err)
}

func (v *GraphStore) lockPair(a, b string) func() {
	if b < a {
		a, b = b, a
	}
	first := v.accountLock(a)
	second := v.accountLock(b)
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}

func (v *GraphStore) accountLock(id string) *sync.Mutex {
	val, _ := v.accounts.LoadOrStore(id, &sync.Mutex{})
	return val.(*sync.Mutex)
}
