package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hanseo-dev/siteoffice/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var row model.User
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, username, password_hash, role, staff_id, created_at
		FROM users
		WHERE username = ?
		LIMIT 1
	`, username).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *UserRepository) Create(ctx context.Context, u model.User) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO users (username, password_hash, role, staff_id)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`, u.Username, u.PasswordHash, u.Role, u.StaffID).Scan(&id).Error
	return id, err
}
