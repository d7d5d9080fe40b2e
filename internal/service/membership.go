package service

import (
	"context"
	"fmt"
	"slices"

	"connectrpc.com/connect"

	"github.com/mmynk/groupspend/internal/auth"
	"github.com/mmynk/groupspend/internal/middleware"
	"github.com/mmynk/groupspend/internal/models"
	"github.com/mmynk/groupspend/internal/storage"
)

// currentUserID returns the authenticated caller or a CodeUnauthenticated error.
func currentUserID(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// memberRoster loads the current roster of groupID and checks that userID is
// on it. The roster is read fresh on every call. Every group keeps at least
// its owner, so an empty roster means the group does not exist.
func memberRoster(ctx context.Context, rosters storage.RosterProvider, groupID, userID string) ([]models.Member, error) {
	roster, err := rosters.ListGroupMembers(ctx, groupID)
	if err != nil {
		return nil, storeError(err)
	}
	if len(roster) == 0 {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound))
	}
	if !slices.ContainsFunc(roster, func(m models.Member) bool { return m.ID == userID }) {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotMember)
	}
	return roster, nil
}
