package repository

import (
	"context"

	"gorm.io/gorm"
)

// Generic single-row helpers shared by the entity services. The list side has
// its own engine in listing.go; these cover the fetch/insert/save/delete
// pattern that is identical across resources.

func FindByID[T any](ctx context.Context, db *gorm.DB, id uint) (*T, error) {
	var entity T
	if err := GetDB(ctx, db).First(&entity, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func FindRowByID[T any](ctx context.Context, db *gorm.DB, def ListDefinition, id uint) (*T, error) {
	var row T
	sql := "SELECT " + def.Select + " FROM " + def.From + " WHERE " + def.SortPrefix + "id = ?"
	result := GetDB(ctx, db).Raw(sql, id).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func Create[T any](ctx context.Context, db *gorm.DB, entity *T) error {
	return GetDB(ctx, db).Create(entity).Error
}

func Save[T any](ctx context.Context, db *gorm.DB, entity *T) error {
	return GetDB(ctx, db).Save(entity).Error
}

func DeleteByID[T any](ctx context.Context, db *gorm.DB, id uint) error {
	var entity T
	return GetDB(ctx, db).Where("id = ?", id).Delete(&entity).Error
}
