package fortune

import (
	"context"
	"fmt"
)

// Completer 是文本生成服务的接口边界。
// 生产实现是 internal/llm 的客户端，测试中用假实现替代。
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// kindDescriptor 把一个内容类型的提示词模板和解析函数绑在一起。
// 三种内容共用同一条流水线，行为差异全部收敛到描述符里。
type kindDescriptor struct {
	buildPrompt func(p BirthProfile, f DerivedFeatures) string
	parse       func(raw string) any
}

var kindDescriptors = map[ContentKind]kindDescriptor{
	KindFortune: {
		buildPrompt: buildFortunePrompt,
		parse:       func(raw string) any { return parseForecast(raw) },
	},
	KindSubconscious: {
		buildPrompt: buildSubconsciousPrompt,
		parse:       func(raw string) any { return parseSubconscious(raw) },
	},
	KindBalance: {
		buildPrompt: buildBalancePrompt,
		parse:       func(raw string) any { return parseBalance(raw) },
	},
}

// Service 是生成式内容的流水线：推导特征 → 组装提示词 →
// 调用生成服务 → 解析 →（运势类）附加评分。
type Service struct {
	completer Completer
	synth     *Synthesizer
}

// NewService 创建内容生成服务。
func NewService(completer Completer, synth *Synthesizer) *Service {
	if synth == nil {
		synth = NewSynthesizer()
	}
	return &Service{completer: completer, synth: synth}
}

// Generate 执行一次完整的内容生成。
// 校验失败返回 *ValidationError；生成服务失败原样向上传递；
// 解析永远不会失败，缺失字段由默认值兜底。
func (s *Service) Generate(ctx context.Context, kind ContentKind, profile BirthProfile) (any, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	descriptor, ok := kindDescriptors[kind]
	if !ok {
		return nil, fmt.Errorf("unknown content kind: %s", kind)
	}

	features := DeriveFeatures(profile)
	prompt := descriptor.buildPrompt(profile, features)

	raw, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result := descriptor.parse(raw)

	// 评分与生成文本无关，始终独立合成
	if forecast, ok := result.(*ForecastResult); ok {
		forecast.Scores = s.synth.ScoreSet()
	}
	return result, nil
}
