package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/groupspend/internal/models"
	"github.com/mmynk/groupspend/internal/storage"
)

// CreateGroup persists a new group with its owner as the first member.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, owner_id, created_at) VALUES (?, ?, ?, ?)",
		group.ID, group.Name, group.OwnerID, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO group_members (group_id, user_id, joined_at) VALUES (?, ?, ?)",
		group.ID, group.OwnerID, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert owner membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID, including its roster.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, owner_id, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &group.OwnerID, &group.CreatedAt)
	if isNoRows(err) {
		return nil, notFound("group", groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	group.Members, err = s.ListGroupMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroupsForUser returns every group the user is a member of, oldest first.
func (s *SQLiteStore) ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT g.id, g.name, g.owner_id, g.created_at
		 FROM groups g JOIN group_members gm ON gm.group_id = g.id
		 WHERE gm.user_id = ?
		 ORDER BY g.created_at, g.name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.OwnerID, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	return groups, nil
}

// ListGroupMembers returns the group's roster in join order.
func (s *SQLiteStore) ListGroupMembers(ctx context.Context, groupID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.id, u.username, u.email
		 FROM group_members gm JOIN users u ON u.id = gm.user_id
		 WHERE gm.group_id = ?
		 ORDER BY gm.joined_at, gm.rowid`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.DisplayName, &m.Contact); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}
	return members, nil
}

// AddGroupMember adds a user to a group.
func (s *SQLiteStore) AddGroupMember(ctx context.Context, groupID, userID string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO group_members (group_id, user_id, joined_at) VALUES (?, ?, ?)",
		groupID, userID, time.Now().Unix(),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("member %s of group %s: %w", userID, groupID, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to add group member: %w", err)
	}
	return nil
}

// RemoveGroupMember removes a user from a group. Past expenses keep the
// member's name; it simply stops resolving against the roster.
func (s *SQLiteStore) RemoveGroupMember(ctx context.Context, groupID, userID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM group_members WHERE group_id = ? AND user_id = ?",
		groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove group member: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("group member", userID)
	}
	return nil
}
