package database

import (
	"fmt"
	"log"

	"crm/config"
	"crm/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接
func Init(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	// 设置连接池参数
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	// 自动迁移数据库表
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Service{},
		&models.Transaction{},
		&models.Expense{},
		&models.Receipt{},
		&models.Quotation{},
		&models.TeamMember{},
	); err != nil {
		return err
	}

	// 初始化默认管理员（仅当用户表为空时）
	var userCount int64
	DB.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err == nil {
			admin := models.User{
				Username: "admin",
				Password: string(hashed),
				IsAdmin:  true,
				Status:   models.UserStatusActive,
			}
			if err := DB.Create(&admin).Error; err == nil {
				log.Println("已创建默认管理员 admin/admin123，请尽快修改密码")
			}
		}
	}

	log.Println("数据库初始化成功")
	return nil
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
