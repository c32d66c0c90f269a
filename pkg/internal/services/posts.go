package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/pemistahl/lingua-go"
	"github.com/picshare/picshare/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Posts records the author's own copy of a published post. Fan-out into
// follower feeds is the Fanout engine's job; this store only appends to the
// author's post list, which is the commit point of a publish.
type Posts struct {
	db       *gorm.DB
	detector lingua.LanguageDetector
}

func NewPosts(db *gorm.DB) *Posts {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English,
			lingua.Spanish,
			lingua.French,
			lingua.German,
			lingua.Japanese,
			lingua.Chinese,
		).
		Build()

	return &Posts{db: db, detector: detector}
}

func (v *Posts) New(author models.Account, postRef string, caption *string) (models.Post, error) {
	item := models.Post{
		Attachment: postRef,
		Caption:    caption,
		Language:   v.DetectLanguage(caption),
		AuthorID:   author.ID,
	}

	log.Debug().Str("author", author.ID).Str("attachment", postRef).Msg("Recording a new post...")
	start := time.Now()

	if err := v.db.Create(&item).Error; err != nil {
		return item, fmt.Errorf("unable to record post: %v", err)
	}

	log.Debug().Dur("elapsed", time.Since(start)).Uint("id", item.ID).Msg("The post is recorded.")
	return item, nil
}

func (v *Posts) ListByAuthor(authorID string) ([]models.Post, error) {
	var items []models.Post
	if err := v.db.Where("author_id = ?", authorID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("unable to list posts: %v", err)
	}
	return items, nil
}

func (v *Posts) DetectLanguage(caption *string) string {
	if caption == nil || len(strings.TrimSpace(*caption)) == 0 {
		return ""
	}
	if language, ok := v.detector.DetectLanguageOf(*caption); ok {
		return strings.ToLower(language.IsoCode639_1().String())
	}
	return ""
}
