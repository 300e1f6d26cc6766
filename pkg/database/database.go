package database

import (
	"fmt"
	"log"
	"math_edu_backend/internal/config"
	"math_edu_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}

		log.Println("Database migration completed")

		seedDefaultTags(db)
	}

	return db, nil
}

// Migrate 执行所有模型的自动迁移
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.UserProfile{},
		&model.Problem{},
		&model.Choice{},
		&model.Tag{},
		&model.ProblemTag{},
		&model.UserAnswer{},
		&model.UserProgress{},
	)
}

// 默认的题目标签（为空时插入常用分类）
func seedDefaultTags(db *gorm.DB) {
	var count int64
	db.Model(&model.Tag{}).Count(&count)
	if count > 0 {
		return
	}

	defaultTags := []model.Tag{
		{Name: "algebra", Description: "代数与方程"},
		{Name: "geometry", Description: "几何与图形"},
		{Name: "arithmetic", Description: "四则运算"},
		{Name: "fractions", Description: "分数计算"},
		{Name: "statistics", Description: "数据与统计"},
	}
	for _, t := range defaultTags {
		db.Create(&t)
	}
}
