package database

import (
	"context"
	"fmt"

	"github.com/daily-saju/fortune-backend/internal/platform/config"
	"github.com/redis/go-redis/v9"
)

// RDB 是一个全局的Redis客户端实例，未启用Redis时保持为nil
var RDB *redis.Client

// Ctx 是一个全局的上下文，用于Redis操作
var Ctx = context.Background()

// InitRedis 初始化与Redis的连接，用于缓存统计聚合结果
// Redis是可选依赖：连接失败只打印警告，统计请求会直接落库
func InitRedis(cfg config.RedisConfig) {
	if !cfg.Enabled {
		fmt.Println("Redis未启用，统计缓存关闭。")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 使用Ping命令来测试连接是否成功
	if _, err := client.Ping(Ctx).Result(); err != nil {
		fmt.Printf("警告: 无法连接到Redis (%v)，统计缓存降级为直接查询。\n", err)
		return
	}

	RDB = client
	fmt.Println("Redis 连接成功！")
}
