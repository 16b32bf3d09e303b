// db/repo_users_admin.go
package db

import (
	"Gin_postgres_redis_lend_tool/models"
	"context"
)

func (r *Repo) SetUserAdmin(ctx context.Context, userID uint, isAdmin bool) error {
	return r.DB.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("is_admin", isAdmin).Error
}

func (r *Repo) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&models.User{}).
		Where("is_admin = ?", true).
		Count(&n).Error
	return n, err
}
