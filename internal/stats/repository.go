package stats

import (
	"encoding/json"
	"time"

	"github.com/daily-saju/fortune-backend/internal/platform/database"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	// defaultPageSize 是全量拉取时的固定分页大小。
	defaultPageSize = 1000

	// statsCacheKey 是聚合结果在Redis中的缓存键。
	statsCacheKey = "stats:aggregated"
)

// Repository 封装统计模块的所有持久化操作。
// 依赖外部存储在连续分页之间保持稳定的全序，这里不做校验。
type Repository struct {
	db       *gorm.DB
	pageSize int
}

// NewRepository 创建统计仓库。
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, pageSize: defaultPageSize}
}

// InsertUsage 写入一条使用记录。
func (r *Repository) InsertUsage(record *UsageRecord) error {
	return r.db.Create(record).Error
}

// InsertDropout 写入一条流失记录。
func (r *Repository) InsertDropout(record *DropoutRecord) error {
	return r.db.Create(record).Error
}

// FetchAllUsage 按 created_at 降序分全量拉取使用记录。
// 严格串行：上一页返回后才请求下一页；页长小于分页大小
// （包括空页）即终止。调用方需要接受全量驻留内存。
func (r *Repository) FetchAllUsage() ([]UsageRecord, error) {
	var all []UsageRecord
	offset := 0
	for {
		var page []UsageRecord
		err := r.db.Order("created_at DESC").
			Offset(offset).
			Limit(r.pageSize).
			Find(&page).Error
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < r.pageSize {
			return all, nil
		}
		offset += r.pageSize
	}
}

// CountSelectionsInWindow 统计半开窗口 [start, end) 内
// 选择了指定服务标签的使用记录数。
func (r *Repository) CountSelectionsInWindow(start, end time.Time, services []string) (int64, error) {
	var count int64
	err := r.db.Model(&UsageRecord{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Where("selected_service IN ?", services).
		Count(&count).Error
	return count, err
}

// CountDropoutsInWindow 统计半开窗口 [start, end) 内的流失记录数。
func (r *Repository) CountDropoutsInWindow(start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&DropoutRecord{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	return count, err
}

// ResetUsage 删除全部使用记录。流失记录不受影响。
func (r *Repository) ResetUsage() error {
	return r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&UsageRecord{}).Error
}

// TrimDropoutsBefore 删除 created_at 严格早于 cutoff 的流失记录。
func (r *Repository) TrimDropoutsBefore(cutoff time.Time) error {
	return r.db.Where("created_at < ?", cutoff).Delete(&DropoutRecord{}).Error
}

// --- Redis缓存（可选） ---

// GetCachedStats 从Redis读取聚合结果缓存。
// Redis未启用或缓存未命中时返回 (nil, nil)。
func (r *Repository) GetCachedStats() (*AggregatedStats, error) {
	if database.RDB == nil {
		return nil, nil
	}
	result, err := database.RDB.Get(database.Ctx, statsCacheKey).Result()
	if err == redis.Nil {
		return nil, nil // 缓存未命中，是正常情况，不返回错误
	}
	if err != nil {
		return nil, err
	}

	var stats AggregatedStats
	if err := json.Unmarshal([]byte(result), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SetCachedStats 把聚合结果写入Redis缓存。
func (r *Repository) SetCachedStats(stats *AggregatedStats, expire time.Duration) error {
	if database.RDB == nil {
		return nil
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return database.RDB.Set(database.Ctx, statsCacheKey, data, expire).Err()
}

// InvalidateCachedStats 在写操作之后清除缓存。
func (r *Repository) InvalidateCachedStats() {
	if database.RDB == nil {
		return
	}
	database.RDB.Del(database.Ctx, statsCacheKey)
}
