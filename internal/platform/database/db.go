package database

import (
	"fmt"
	"log"
	"os"

	"github.com/daily-saju/fortune-backend/internal/platform/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是一个全局的数据库句柄，供各业务模块使用
var DB *gorm.DB

// InitDB 根据配置初始化数据库连接
// driver 为 "postgres" 时连接PostgreSQL，否则使用SQLite本地文件
func InitDB(cfg config.DatabaseConfig) {
	var err error

	// GORM日志配置
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 0,
			LogLevel:      logger.Silent, // 在生产环境中可以设为Silent
			Colorful:      true,
		},
	)

	gormCfg := &gorm.Config{Logger: newLogger}

	switch cfg.Driver {
	case "postgres":
		DB, err = gorm.Open(postgres.Open(cfg.DSN), gormCfg)
	default:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "fortune.db"
		}
		DB, err = gorm.Open(sqlite.Open(dsn), gormCfg)
	}

	if err != nil {
		fmt.Println("连接数据库失败", err)
		panic(err)
	}

	fmt.Println("数据库连接成功！")
}
