package controller

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resumeapi/internal/errcode"
)

// translate 将 GORM 的哨兵错误映射到 errcode。
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, errcode.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", what, errcode.ErrConflict)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}

func listRecords[T any](ctx context.Context, db *gorm.DB, what string, conds ...any) ([]T, error) {
	var rows []T
	q := db.WithContext(ctx).Order("id")
	if len(conds) > 0 {
		q = q.Where(conds[0], conds[1:]...)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, translate(err, "list "+what)
	}
	return rows, nil
}

func takeRecord[T any](ctx context.Context, db *gorm.DB, key map[string]any, what string) (T, error) {
	var row T
	err := db.WithContext(ctx).Where(key).Take(&row).Error
	return row, translate(err, what)
}

// upsertRecord 按自然键匹配 rec：命中则覆盖 updates 列，否则插入。
// 并发插入同一键时 ON CONFLICT DO NOTHING 不影响任何行，此时转为更新已有行，created 为 false。
// 返回时 rec 为库中的最新行。
func upsertRecord[T any](ctx context.Context, db *gorm.DB, rec *T, key map[string]any, updates []string, what string) (bool, error) {
	created := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing T
		err := tx.Where(key).Take(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			res := tx.Clauses(clause.OnConflict{Columns: conflictColumns(key), DoNothing: true}).Create(rec)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				created = true
				break
			}
			if err := tx.Where(key).Take(&existing).Error; err != nil {
				return err
			}
			if err := tx.Model(&existing).Select(updates).Updates(rec).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&existing).Select(updates).Updates(rec).Error; err != nil {
				return err
			}
		}

		var zero T
		*rec = zero
		return tx.Where(key).Take(rec).Error
	})
	if err != nil {
		return false, translate(err, "upsert "+what)
	}
	return created, nil
}

// saveByID 按主键更新 rec，id 为 0 时插入新行。id 非 0 但不存在时返回 ErrNotFound，
// 主键只由数据库分配。
func saveByID[T any](ctx context.Context, db *gorm.DB, rec *T, id uint, updates []string, what string) (bool, error) {
	created := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if id != 0 {
			var existing T
			if err := tx.Where("id = ?", id).Take(&existing).Error; err != nil {
				return err
			}
			return tx.Model(&existing).Select(updates).Updates(rec).Error
		}
		created = true
		return tx.Create(rec).Error
	})
	if err != nil {
		return false, translate(err, "save "+what)
	}
	return created, nil
}

func deleteRecord[T any](ctx context.Context, db *gorm.DB, key map[string]any, what string) error {
	var model T
	res := db.WithContext(ctx).Where(key).Delete(&model)
	if res.Error != nil {
		return translate(res.Error, "delete "+what)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s: %w", what, errcode.ErrNotFound)
	}
	return nil
}

func conflictColumns(key map[string]any) []clause.Column {
	names := make([]string, 0, len(key))
	for name := range key {
		names = append(names, name)
	}
	sort.Strings(names)

	cols := make([]clause.Column, 0, len(names))
	for _, name := range names {
		cols = append(cols, clause.Column{Name: name})
	}
	return cols
}
