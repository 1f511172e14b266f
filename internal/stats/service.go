package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/daily-saju/fortune-backend/internal/fortune"
)

// ValidationError 列出保存请求中缺失的必填字段。
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// SaveUsageInput 是保存使用记录的输入。
type SaveUsageInput struct {
	Gender          string `json:"gender"`
	BirthDate       string `json:"birthDate"`
	TimeSlot        string `json:"timeSlot"`
	Weekday         string `json:"weekday"`
	MBTI            string `json:"mbti"`
	SelectedService string `json:"selectedService"`
}

// Service 是统计聚合引擎。
// now 可注入，测试中用固定时间代替系统时钟。
type Service struct {
	repo         *Repository
	includeTeens bool
	cacheTTL     time.Duration
	now          func() time.Time
}

// NewService 创建统计服务。
// includeTeens 为 false 时沿用旧版年龄分桶：30岁以下全部计入"20s"。
func NewService(repo *Repository, includeTeens bool, cacheTTL time.Duration) *Service {
	return &Service{
		repo:         repo,
		includeTeens: includeTeens,
		cacheTTL:     cacheTTL,
		now:          time.Now,
	}
}

// SaveUsage 校验并写入一条使用记录。
// 任何必填字段缺失都会拒绝整条记录，什么都不落库。
func (s *Service) SaveUsage(input SaveUsageInput) error {
	var missing []string
	if strings.TrimSpace(input.Gender) == "" {
		missing = append(missing, "gender")
	}
	if strings.TrimSpace(input.BirthDate) == "" {
		missing = append(missing, "birthDate")
	}
	if strings.TrimSpace(input.TimeSlot) == "" {
		missing = append(missing, "timeSlot")
	}
	if strings.TrimSpace(input.Weekday) == "" {
		missing = append(missing, "weekday")
	}
	if strings.TrimSpace(input.SelectedService) == "" {
		missing = append(missing, "selectedService")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}

	record := &UsageRecord{
		Gender:          input.Gender,
		BirthDate:       input.BirthDate,
		TimeSlot:        input.TimeSlot,
		Weekday:         input.Weekday,
		MBTI:            input.MBTI,
		SelectedService: input.SelectedService,
	}
	if err := s.repo.InsertUsage(record); err != nil {
		return err
	}
	s.repo.InvalidateCachedStats()
	return nil
}

// ReportDropout 记录一次在OCR环节放弃的流程。
func (s *Service) ReportDropout(reason string) error {
	if err := s.repo.InsertDropout(&DropoutRecord{Reason: reason}); err != nil {
		return err
	}
	s.repo.InvalidateCachedStats()
	return nil
}

// GetStatistics 返回聚合统计。优先读缓存；未命中时全量拉取、
// 聚合并回填当日流失率，再写回缓存。
func (s *Service) GetStatistics() (*AggregatedStats, error) {
	if cached, err := s.repo.GetCachedStats(); err == nil && cached != nil {
		return cached, nil
	}

	records, err := s.repo.FetchAllUsage()
	if err != nil {
		return nil, err
	}

	stats := s.Aggregate(records)

	dayStart, dayEnd := localDayWindow(s.now())
	selections, err := s.repo.CountSelectionsInWindow(dayStart, dayEnd, fortune.GenerativeKinds())
	if err != nil {
		return nil, err
	}
	dropouts, err := s.repo.CountDropoutsInWindow(dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	rate := DropoutRate(int(selections), int(dropouts))
	count := int(dropouts)
	stats.DropoutRate = &rate
	stats.DropoutCount = &count

	if err := s.repo.SetCachedStats(stats, s.cacheTTL); err != nil {
		fmt.Printf("警告: 统计缓存写入失败: %v\n", err)
	}
	return stats, nil
}

// Aggregate 对使用记录做六个维度的独立频次统计。
func (s *Service) Aggregate(records []UsageRecord) *AggregatedStats {
	stats := &AggregatedStats{
		TotalUsers:   len(records),
		GenderStats:  make(map[string]int),
		AgeStats:     make(map[string]int),
		MBTIStats:    make(map[string]int),
		ServiceStats: make(map[string]int),
		TimeStats:    make(map[string]int),
		WeekdayStats: make(map[string]int),
	}

	currentYear := s.now().Year()
	for _, record := range records {
		if record.Gender != "" {
			stats.GenderStats[record.Gender]++
		}
		if bucket, ok := s.ageBucket(record.BirthDate, currentYear); ok {
			stats.AgeStats[bucket]++
		}
		// MBTI缺失时跳过，不计入空键
		if record.MBTI != "" {
			stats.MBTIStats[record.MBTI]++
		}
		if record.SelectedService != "" {
			stats.ServiceStats[record.SelectedService]++
		}
		if record.TimeSlot != "" {
			stats.TimeStats[record.TimeSlot]++
		}
		if record.Weekday != "" {
			stats.WeekdayStats[record.Weekday]++
		}
	}
	return stats
}

// ageBucket 只用出生年份计算年龄，月日忽略（已知的精度损失，
// 与线上口径一致，不要修正）。
func (s *Service) ageBucket(birthDate string, currentYear int) (string, bool) {
	if len(birthDate) < 4 {
		return "", false
	}
	birthYear, err := strconv.Atoi(birthDate[:4])
	if err != nil {
		return "", false
	}
	age := currentYear - birthYear
	switch {
	case age < 20:
		if s.includeTeens {
			return "teens", true
		}
		return "20s", true
	case age < 30:
		return "20s", true
	case age < 40:
		return "30s", true
	case age < 50:
		return "40s", true
	default:
		return "50s+", true
	}
}

// DropoutRate 计算流失率百分比：round(100 * dropouts / selections)。
// 窗口内没有任何内容选择时返回0。
func DropoutRate(selections, dropouts int) int {
	if selections <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(dropouts) / float64(selections)))
}

// ResetStatistics 删除全部使用记录。流失记录不在重置范围内。
func (s *Service) ResetStatistics() error {
	if err := s.repo.ResetUsage(); err != nil {
		return err
	}
	s.repo.InvalidateCachedStats()
	return nil
}

// ExportCSV 导出全部使用记录。
// 字段值直接逗号拼接，不做引号和转义：字段里出现逗号或换行
// 会破坏输出。这是既定的线路格式，消费端已适配，不要加转义。
func (s *Service) ExportCSV() (string, error) {
	records, err := s.repo.FetchAllUsage()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("ID,Gender,BirthDate,TimeSlot,Weekday,MBTI,Service,CreatedAt\n")
	for i, record := range records {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%d,%s,%s,%s,%s,%s,%s,%s",
			record.ID,
			record.Gender,
			record.BirthDate,
			record.TimeSlot,
			record.Weekday,
			record.MBTI,
			record.SelectedService,
			record.CreatedAt.Format("2006-01-02 15:04:05"),
		))
	}
	return b.String(), nil
}

// TrimExpiredDropouts 删除早于“昨天零点”的流失记录。
// 使用记录永远不会被这里触碰。
func (s *Service) TrimExpiredDropouts() error {
	dayStart, _ := localDayWindow(s.now())
	cutoff := dayStart.AddDate(0, 0, -1)
	return s.repo.TrimDropoutsBefore(cutoff)
}

// localDayWindow 返回now所在本地日的半开窗口 [当日零点, 次日零点)。
func localDayWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}
