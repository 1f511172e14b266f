package fortune

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/daily-saju/fortune-backend/internal/saju"
)

// ContentKind 枚举了三种生成式内容产品。
type ContentKind string

const (
	// KindFortune 是每日运势。
	KindFortune ContentKind = "fortune"
	// KindSubconscious 是潜意识解读。
	KindSubconscious ContentKind = "subconscious"
	// KindBalance 是时间平衡解读。
	KindBalance ContentKind = "balance"
)

// GenerativeKinds 返回三种生成式内容的服务标签。
// 统计模块用它作为流失率的分母口径。
func GenerativeKinds() []string {
	return []string{string(KindFortune), string(KindSubconscious), string(KindBalance)}
}

// BirthProfile 是前端提交的出生信息。
// Birthdate 必须是8位数字(YYYYMMDD)；不做历法合法性检查，13月也不会被拒绝。
type BirthProfile struct {
	Gender    string `json:"gender"`
	Birthdate string `json:"birthdate"`
	Birthtime string `json:"birthtime"`
	MBTI      string `json:"mbti"`
}

// ValidationError 表示请求缺失或格式错误的必填字段。
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing or malformed required fields: " + strings.Join(e.Fields, ", ")
}

// Validate 只检查 birthdate 是否为8位数字，其余字段全部可选。
func (p BirthProfile) Validate() error {
	if len(p.Birthdate) != 8 {
		return &ValidationError{Fields: []string{"birthdate"}}
	}
	for _, r := range p.Birthdate {
		if r < '0' || r > '9' {
			return &ValidationError{Fields: []string{"birthdate"}}
		}
	}
	return nil
}

// DerivedFeatures 是由出生信息推导出的历法特征。
type DerivedFeatures struct {
	ZodiacAnimal string
	StarSign     string
	TimeBranch   string
}

// DeriveFeatures 从出生信息推导生肖、星座和时辰。
// 调用前必须先通过 Validate；出生时间缺失或无法解析时，
// 时辰使用占位标签而不是调用推导函数。
func DeriveFeatures(p BirthProfile) DerivedFeatures {
	year, _ := strconv.Atoi(p.Birthdate[0:4])
	month, _ := strconv.Atoi(p.Birthdate[4:6])
	day, _ := strconv.Atoi(p.Birthdate[6:8])

	features := DerivedFeatures{
		ZodiacAnimal: saju.AnimalSign(year),
		StarSign:     saju.StarSign(month, day),
		TimeBranch:   saju.TimeBranchNotProvided,
	}

	if hour, minute, ok := parseBirthtime(p.Birthtime); ok {
		features.TimeBranch = saju.TimeBranch(hour, minute)
	}
	return features
}

func parseBirthtime(s string) (hour, minute int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, false
	}
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, false
	}
	return hour, minute, true
}

// ForecastResult 是每日运势的结构化结果。
// Scores 不来自生成文本，由评分器独立合成。
type ForecastResult struct {
	Fortune string   `json:"fortune"`
	Advice  string   `json:"advice"`
	Scores  ScoreSet `json:"scores"`
}

// SubconsciousResult 是潜意识解读的结构化结果。
type SubconsciousResult struct {
	Keyword        string `json:"keyword"`
	Interpretation string `json:"interpretation"`
	Advice         string `json:"advice"`
}

// BalanceResult 是时间平衡解读的结构化结果。
// 三个百分比由生成服务给出，解析失败时整组回退到默认值。
type BalanceResult struct {
	Work    int    `json:"work"`
	Love    int    `json:"love"`
	Rest    int    `json:"rest"`
	Summary string `json:"summary"`
}
