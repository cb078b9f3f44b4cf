package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm/clause"

	"github.com/example/mataam/internal/models"
)

// UpsertUser inserts the user or refreshes the provided fields of the existing
// row with the same OpenID. Only a user without an explicit role is subject to
// owner promotion: the owner's OpenID becomes admin, anyone else keeps the
// stored role (user for new rows).
func (s *Store) UpsertUser(ctx context.Context, user models.User, ownerOpenID string) error {
	if user.OpenID == "" {
		return errors.New("user open id is required for upsert")
	}

	db, err := s.writer(ctx, "upsert user")
	if err != nil {
		return err
	}

	columns := []string{"last_signed_in", "updated_at"}
	if user.Name != "" {
		columns = append(columns, "name")
	}
	if user.Email != "" {
		columns = append(columns, "email")
	}
	if user.LoginMethod != "" {
		columns = append(columns, "login_method")
	}

	if user.Role == "" && ownerOpenID != "" && user.OpenID == ownerOpenID {
		user.Role = models.RoleAdmin
	}
	if user.Role != "" {
		columns = append(columns, "role")
	} else {
		user.Role = models.RoleUser
	}

	if user.LastSignedIn.IsZero() {
		user.LastSignedIn = time.Now()
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "open_id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(&user).Error
}

// GetUserByOpenID returns nil when no user matches.
func (s *Store) GetUserByOpenID(ctx context.Context, openID string) (*models.User, error) {
	db, ok := s.reader(ctx, "get user")
	if !ok {
		return nil, nil
	}
	return first[models.User](db, "open_id = ?", openID)
}
