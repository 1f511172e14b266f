package fortune

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// ScoreSet 是每日运势附带的四项随机评分，取值范围[0,100]。
// Total 是四项的四舍五入平均值。
type ScoreSet struct {
	Money  int `json:"money"`
	Love   int `json:"love"`
	Career int `json:"career"`
	Health int `json:"health"`
	Total  int `json:"total"`
}

// scoreBand 描述一个累积概率档位：r 落在 limit 之下时，
// 得分取 [min, min+width) 内的均匀随机整数。
type scoreBand struct {
	limit float64
	min   int
	width int
}

// scoreBands 是固定的分段概率表。
// 注意：75-79档(width 5)和70-79档(width 10)的取值范围有重叠，
// 75~79可能来自两个档位。这是线上分布的一部分，不要合并。
var scoreBands = []scoreBand{
	{8, 95, 6},
	{25, 90, 5},
	{65, 80, 10},
	{80, 75, 5},
	{90, 70, 10},
	{98, 60, 10},
}

// 兜底档，r >= 98 时使用
var fallbackBand = scoreBand{100, 50, 10}

// Synthesizer 负责合成运势评分。
// 随机源可注入，便于测试时固定种子复现分布。
type Synthesizer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSynthesizer 创建一个以当前时间为种子的评分器。
func NewSynthesizer() *Synthesizer {
	return NewSynthesizerWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewSynthesizerWithSource 用指定随机源创建评分器。
func NewSynthesizerWithSource(src rand.Source) *Synthesizer {
	return &Synthesizer{rng: rand.New(src)}
}

// Score 返回一个[50,100]内的评分。
// 先抽取[0,100)的均匀随机数r，再按累积概率表落档。
func (s *Synthesizer) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.rng.Float64() * 100
	band := fallbackBand
	for _, b := range scoreBands {
		if r < b.limit {
			band = b
			break
		}
	}
	return s.rng.Intn(band.width) + band.min
}

// ScoreSet 独立抽取四次评分并计算平均分。
func (s *Synthesizer) ScoreSet() ScoreSet {
	set := ScoreSet{
		Money:  s.Score(),
		Love:   s.Score(),
		Career: s.Score(),
		Health: s.Score(),
	}
	sum := set.Money + set.Love + set.Career + set.Health
	set.Total = int(math.Round(float64(sum) / 4.0))
	return set
}
