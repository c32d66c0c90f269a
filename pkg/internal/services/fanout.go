package services

import (
	"context"
	"sync"

	"github.com/picshare/picshare/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

const DefaultFanoutWorkers = 8

// FeedAppender is the follower-facing side of the feed cache.
type FeedAppender interface {
	Append(ctx context.Context, recipientID, postRef string) error
}

// NotificationAppender is the follower-facing side of the notification store.
type NotificationAppender interface {
	Append(recipientID, sourceID, sourceName string) error
}

// DeliveryReceipt reports how a fan-out went. A publish is committed once the
// author's own copy is recorded; delivery completeness is a separate,
// best-effort property the caller may act on.
type DeliveryReceipt struct {
	Delivered int      `json:"delivered"`
	Failed    []string `json:"failed"`
}

// Fanout pushes a freshly published post into every follower's feed cache
// and notification log. It holds no state of its own; it orchestrates the
// directory, the graph store and the two delivery logs.
type Fanout struct {
	directory     *Directory
	graph         *GraphStore
	posts         *Posts
	feed          FeedAppender
	notifications NotificationAppender
	workers       int
}

func NewFanout(
	directory *Directory,
	graph *GraphStore,
	posts *Posts,
	feed FeedAppender,
	notifications NotificationAppender,
	workers int,
) *Fanout {
	if workers <= 0 {
		workers = DefaultFanoutWorkers
	}
	return &Fanout{
		directory:     directory,
		graph:         graph,
		posts:         posts,
		feed:          feed,
		notifications: notifications,
		workers:       workers,
	}
}

// Publish records the post on the author's own list, snapshots the follower
// set, then delivers to each follower independently through a bounded worker
// pool. Followers gained after the snapshot are not delivered to; followers
// lost after it may still receive this one post.
//
// A failed follower never blocks, delays or rolls back the others, and never
// fails the publish itself. Cancellation mid fan-out keeps the completed
// deliveries; everything not delivered is reported in the receipt.
func (v *Fanout) Publish(ctx context.Context, authorID, postRef string, caption *string) (models.Post, DeliveryReceipt, error) {
	var receipt DeliveryReceipt

	author, err := v.directory.GetAccount(authorID)
	if err != nil {
		return models.Post{}, receipt, err
	}

	item, err := v.posts.New(author, postRef, caption)
	if err != nil {
		return item, receipt, err
	}

	followers, err := v.graph.ListFollowers(author.ID)
	if err != nil {
		// The post itself is committed; with no usable snapshot there is
		// nobody to deliver to and nothing to report per follower.
		log.Warn().Err(err).Str("author", author.ID).Msg("Unable to snapshot followers, skipping fan-out...")
		return item, receipt, nil
	}
	if len(followers) == 0 {
		return item, receipt, nil
	}

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		slots = make(chan struct{}, v.workers)
	)
	failed := make([]string, 0)
	delivered := 0

	for idx := 0; idx < len(followers); idx++ {
		if ctx.Err() != nil {
			mu.Lock()
			failed = append(failed, followers[idx:]...)
			mu.Unlock()
			break
		}

		slots <- struct{}{}
		wg.Add(1)
		go func(recipient string) {
			defer wg.Done()
			defer func() { <-slots }()

			if err := v.deliver(ctx, recipient, author, item); err != nil {
				log.Warn().Err(err).Str("recipient", recipient).Uint("post", item.ID).
					Msg("Delivery to follower failed.")
				mu.Lock()
				failed = append(failed, recipient)
				mu.Unlock()
				return
			}

			mu.Lock()
			delivered++
			mu.Unlock()
		}(followers[idx])
	}
	wg.Wait()

	receipt.Delivered = delivered
	receipt.Failed = failed

	if len(receipt.Failed) > 0 {
		log.Warn().Int("delivered", receipt.Delivered).Strs("failed", receipt.Failed).
			Uint("post", item.ID).Msg("Fan-out finished partially.")
	} else {
		log.Debug().Int("delivered", receipt.Delivered).Uint("post", item.ID).
			Msg("Fan-out finished.")
	}

	return item, receipt, nil
}

// deliver writes one follower's pair of entries. The two appends are
// independent logs with no ordering between them; the recipient counts as
// delivered only when both succeeded.
func (v *Fanout) deliver(ctx context.Context, recipientID string, author models.Account, item models.Post) error {
	if err := v.feed.Append(ctx, recipientID, item.Attachment); err != nil {
		return err
	}
	if err := v.notifications.Append(recipientID, author.ID, author.Name); err != nil {
		return err
	}
	return nil
}
