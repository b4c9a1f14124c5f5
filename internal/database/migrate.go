package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 预置到 interest_types 的兴趣类别。
const (
	InterestPersonal  = "personal"
	InterestTechnical = "technical"
)

// InterestCategories 按展示顺序列出预置类别。
var InterestCategories = []string{InterestPersonal, InterestTechnical}

// Migrate 创建或更新全部数据表并预置兴趣类别，可重复执行。
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, category := range InterestCategories {
		row := InterestType{InterestType: category}
		if err := db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "interest_type"}}, DoNothing: true}).
			Create(&row).Error; err != nil {
			return fmt.Errorf("seed interest type %q: %w", category, err)
		}
	}
	return nil
}
