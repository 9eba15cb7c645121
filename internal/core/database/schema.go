package database

import (
	"fmt"

	"gorm.io/gorm"

	"blood-donor-service/internal/feature/bloodrequest"
	"blood-donor-service/internal/feature/user"
)

// Migrate 建表（已存在则跳过），可重复执行
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&user.UserModel{}, &bloodrequest.BloodRequestModel{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}
