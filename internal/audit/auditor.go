package audit

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"io.winapps.chatterbox/internal/db"
)

// Store is what the auditor reads: set membership plus key enumeration.
type Store interface {
	db.Store
	db.KeyScanner
}

// Pair is a directed relation between two users.
type Pair struct {
	UserID  string `json:"userId"`
	OtherID string `json:"otherId"`
}

// Report lists inconsistencies left behind by partially applied multi-key writes.
type Report struct {
	UsersScanned int `json:"usersScanned"`
	// Asymmetric holds pairs where UserID lists OtherID as a friend but not the reverse.
	Asymmetric []Pair `json:"asymmetric"`
	// StaleRequests holds pairs where OtherID is already a friend of UserID yet still
	// has a pending request to them.
	StaleRequests []Pair `json:"staleRequests"`
}

func (r Report) Clean() bool {
	return len(r.Asymmetric) == 0 && len(r.StaleRequests) == 0
}

// Auditor walks every friends set and reports inconsistencies. It never repairs them.
type Auditor struct {
	store  Store
	logger *zap.SugaredLogger
}

func NewAuditor(store Store, logger *zap.SugaredLogger) *Auditor {
	return &Auditor{store: store, logger: logger}
}

func (a *Auditor) Run(ctx context.Context) (Report, error) {
	var report Report

	keys, err := a.store.ScanKeys(ctx, db.FriendsKeyPattern)
	if err != nil {
		return report, fmt.Errorf("scan friends sets: %w", err)
	}

	for _, key := range keys {
		userID, ok := db.UserIDFromFriendsKey(key)
		if !ok {
			continue
		}
		report.UsersScanned++

		friendIDs, err := a.store.Members(ctx, key)
		if err != nil {
			return report, fmt.Errorf("read friends of %s: %w", userID, err)
		}

		for _, friendID := range friendIDs {
			mutual, err := a.store.IsMember(ctx, db.FriendsKey(friendID), userID)
			if err != nil {
				return report, fmt.Errorf("check friendship %s -> %s: %w", friendID, userID, err)
			}
			if !mutual {
				report.Asymmetric = append(report.Asymmetric, Pair{UserID: userID, OtherID: friendID})
				a.logger.Warnw("asymmetric friendship", "user_id", userID, "friend_id", friendID)
			}

			stale, err := a.store.IsMember(ctx, db.IncomingRequestsKey(userID), friendID)
			if err != nil {
				return report, fmt.Errorf("check pending request %s -> %s: %w", friendID, userID, err)
			}
			if stale {
				report.StaleRequests = append(report.StaleRequests, Pair{UserID: userID, OtherID: friendID})
				a.logger.Warnw("stale friend request", "user_id", userID, "sender_id", friendID)
			}
		}
	}

	a.logger.Infow("friendship audit completed",
		"users_scanned", report.UsersScanned,
		"asymmetric", len(report.Asymmetric),
		"stale_requests", len(report.StaleRequests),
	)
	return report, nil
}
