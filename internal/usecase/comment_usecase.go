package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/minhtran-ct/collab-view/internal/config"
	"github.com/minhtran-ct/collab-view/internal/kafka"
	"github.com/minhtran-ct/collab-view/internal/models"
	"github.com/minhtran-ct/collab-view/internal/repo/mongodb"
)

// commentRetries bounds the optimistic-concurrency loop before giving up
// with ErrCommentConflict.
const commentRetries = 3

type CommentUsecase interface {
	AddComment(ctx context.Context, store mongodb.TenantStore, recordID models.ObjectID, member, text string) error
}

type commentUsecase struct {
	collection string
	publisher  kafka.Publisher
}

func NewCommentUsecase(conf *config.Config, publisher kafka.Publisher) CommentUsecase {
	return &commentUsecase{
		collection: conf.Collab.Collection,
		publisher:  publisher,
	}
}

// AddComment appends to the member's ordered comment list. Member
// identities are emails and may contain dots, so a store-native push on a
// "comments.<member>" path is not usable; instead the whole mapping is
// rewritten under a compare-and-swap on a revision counter, which fixes
// the original last-writer-wins overwrite without changing the stored
// comments shape.
func (uc *commentUsecase) AddComment(ctx context.Context, store mongodb.TenantStore, recordID models.ObjectID, member, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return models.ErrEmptyComment
	}

	var lastErr error
	for attempt := 0; attempt < commentRetries; attempt++ {
		record, err := store.GetCollaboration(ctx, uc.collection, recordID)
		if err != nil {
			return err
		}

		comments := record.Comments
		if comments == nil {
			comments = make(map[string][]string, 1)
		}
		comments[member] = append(comments[member], trimmed)

		err = store.UpdateFieldGuarded(ctx, uc.collection, recordID,
			"comments", comments, "comments_rev", record.CommentsRev)
		if errors.Is(err, models.ErrCommentConflict) {
			lastErr = err
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to write comments: %w", err)
		}

		uc.audit(ctx, store.Name(), record.Key, member)
		return nil
	}
	return lastErr
}

func (uc *commentUsecase) audit(ctx context.Context, tenant, recordKey, member string) {
	err := uc.publisher.Publish(ctx, kafka.Event{
		Pattern: kafka.PatternCommentAdded,
		Tenant:  tenant,
		Data: map[string]string{
			"record": recordKey,
			"member": member,
		},
	})
	if err != nil {
		log.Warnw(ctx, "failed to publish comment audit event", "error", err)
	}
}
