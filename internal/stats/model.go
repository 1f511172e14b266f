package stats

import (
	"time"

	"gorm.io/gorm"
)

// UsageRecord 是一次服务使用的事实记录。
// 只追加、不修改；除管理员整表重置外永久保留。
type UsageRecord struct {
	ID uint `gorm:"primarykey" json:"id"`

	// Gender 是用户自述的性别标签，自由文本。
	Gender string `json:"gender"`

	// BirthDate 是出生日期，格式 YYYY-MM-DD。
	// 年龄分桶只用到前四位的年份。
	BirthDate string `json:"birthDate"`

	// TimeSlot 是使用时段标签。旧版是粗粒度的日间段，
	// 现已与时辰命名统一，这里不区分两种来源。
	TimeSlot string `json:"timeSlot"`

	// Weekday 是使用日的星期标签。
	Weekday string `json:"weekday"`

	// MBTI 可选，缺失时在聚合中被跳过，不计入空键。
	MBTI string `json:"mbti"`

	// SelectedService 是所选服务标签，
	// 三种生成式内容之一或其他服务标签。
	SelectedService string `json:"selectedService"`

	CreatedAt time.Time `json:"createdAt"`
}

// DropoutRecord 记录一次在OCR环节放弃的流程。
// 只由保留期清理删除，统计重置不会触碰它。
type DropoutRecord struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// AggregatedStats 是面向仪表盘的聚合结果。
// 各映射的键集合不固定，随观测到的取值增长。
type AggregatedStats struct {
	TotalUsers   int            `json:"total_users"`
	GenderStats  map[string]int `json:"gender_stats"`
	AgeStats     map[string]int `json:"age_stats"`
	MBTIStats    map[string]int `json:"mbti_stats"`
	ServiceStats map[string]int `json:"service_stats"`
	TimeStats    map[string]int `json:"time_stats"`
	WeekdayStats map[string]int `json:"weekday_stats"`

	// DropoutRate 是当日窗口内的流失率百分比。
	DropoutRate  *int `json:"dropout_rate,omitempty"`
	DropoutCount *int `json:"dropout_count,omitempty"`
}

// SetupDatabase 迁移统计相关的表结构。
func SetupDatabase(db *gorm.DB) error {
	return db.AutoMigrate(&UsageRecord{}, &DropoutRecord{})
}
