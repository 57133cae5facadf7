package repository

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/linkveil/cloakgate/pkg/domain/blocklist"
)

type blocklistRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewBlocklistRepository(db *gorm.DB, logger *logrus.Logger) blocklist.Repository {
	return &blocklistRepository{
		db:     db,
		logger: logger,
	}
}

func (r *blocklistRepository) GetOverlay(ctx context.Context) (blocklist.GlobalBlocklists, error) {
	var entries []blocklist.Entry
	if err := r.db.WithContext(ctx).Find(&entries).Error; err != nil {
		return blocklist.GlobalBlocklists{}, err
	}

	var lists blocklist.GlobalBlocklists
	for _, e := range entries {
		switch e.Kind {
		case blocklist.KindIP:
			lists.BlockedIPs = append(lists.BlockedIPs, e.Value)
		case blocklist.KindUserAgent:
			lists.BlockedUserAgents = append(lists.BlockedUserAgents, e.Value)
		case blocklist.KindASN:
			lists.BlockedASNs = append(lists.BlockedASNs, e.Value)
		default:
			r.logger.WithField("kind", e.Kind).Warn("skipping blocklist entry with unknown kind")
		}
	}
	return lists, nil
}

func (r *blocklistRepository) MergeWrite(ctx context.Context, lists blocklist.GlobalBlocklists) error {
	entries := make([]blocklist.Entry, 0,
		len(lists.BlockedIPs)+len(lists.BlockedUserAgents)+len(lists.BlockedASNs))
	for _, v := range lists.BlockedIPs {
		entries = append(entries, blocklist.Entry{Kind: blocklist.KindIP, Value: v})
	}
	for _, v := range lists.BlockedUserAgents {
		entries = append(entries, blocklist.Entry{Kind: blocklist.KindUserAgent, Value: v})
	}
	for _, v := range lists.BlockedASNs {
		entries = append(entries, blocklist.Entry{Kind: blocklist.KindASN, Value: v})
	}
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entries).Error
}
