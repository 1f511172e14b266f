package fortune

import (
	"encoding/json"
	"strings"
)

// 解析器对生成文本的任何形变都不向外抛错：
// JSON解析失败退回行扫描，行扫描失败退回固定默认值。

// 每个内容类型的固定默认值。解析不到的字段一律用这些句子补齐。
const (
	defaultFortuneText = "The stars are quiet today. Steady effort will carry you further than luck."
	defaultAdviceText  = "Keep your usual rhythm and avoid hasty decisions."

	defaultKeyword        = "stillness"
	defaultInterpretation = "Your subconscious is resting beneath the surface, gathering strength for what comes next."
	defaultSubAdvice      = "Give yourself a quiet moment today and let your thoughts settle."

	defaultBalanceSummary = "A near-even split will serve you best today."
)

// 平衡解读的默认三元组。任何一项缺失或非数值时整组回退。
const (
	defaultBalanceWork = 34
	defaultBalanceLove = 33
	defaultBalanceRest = 33
)

// stripCodeFences 去掉包裹JSON的markdown围栏（```json 或裸```），
// 并截取第一个 { 到最后一个 } 之间的内容。
func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(trimmed, "```")
		trimmed = strings.TrimSpace(trimmed)
	}
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end >= start {
		return trimmed[start : end+1]
	}
	return trimmed
}

// scanLabeledLine 在文本中找第一个包含label的行，
// 返回label之后去除空白的剩余部分。找不到时返回 ("", false)。
func scanLabeledLine(text, label string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		idx := strings.Index(line, label)
		if idx < 0 {
			continue
		}
		value := strings.TrimSpace(line[idx+len(label):])
		if value != "" {
			return value, true
		}
	}
	return "", false
}

// parseForecast 只做行扫描，不尝试JSON。
// 评分由流水线单独附加，这里不填。
func parseForecast(raw string) *ForecastResult {
	result := &ForecastResult{
		Fortune: defaultFortuneText,
		Advice:  defaultAdviceText,
	}
	if v, ok := scanLabeledLine(raw, "Fortune:"); ok {
		result.Fortune = v
	}
	if v, ok := scanLabeledLine(raw, "Advice:"); ok {
		result.Advice = v
	}
	return result
}

// parseSubconscious 先尝试JSON，成功后逐字段回填默认值；
// 失败则按字段标签行扫描。
func parseSubconscious(raw string) *SubconsciousResult {
	result := &SubconsciousResult{
		Keyword:        defaultKeyword,
		Interpretation: defaultInterpretation,
		Advice:         defaultSubAdvice,
	}

	var parsed struct {
		Keyword        string `json:"keyword"`
		Interpretation string `json:"interpretation"`
		Advice         string `json:"advice"`
	}
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &parsed); err == nil {
		if v := strings.TrimSpace(parsed.Keyword); v != "" {
			result.Keyword = v
		}
		if v := strings.TrimSpace(parsed.Interpretation); v != "" {
			result.Interpretation = v
		}
		if v := strings.TrimSpace(parsed.Advice); v != "" {
			result.Advice = v
		}
		return result
	}

	if v, ok := scanLabeledLine(raw, "keyword:"); ok {
		result.Keyword = v
	}
	if v, ok := scanLabeledLine(raw, "interpretation:"); ok {
		result.Interpretation = v
	}
	if v, ok := scanLabeledLine(raw, "advice:"); ok {
		result.Advice = v
	}
	return result
}

// parseBalance 先尝试JSON。三个百分比只要有一个缺失或非数值，
// 整组回退到默认三元组；summary单独回填。
func parseBalance(raw string) *BalanceResult {
	result := &BalanceResult{
		Work:    defaultBalanceWork,
		Love:    defaultBalanceLove,
		Rest:    defaultBalanceRest,
		Summary: defaultBalanceSummary,
	}

	var parsed struct {
		Work    *float64 `json:"work"`
		Love    *float64 `json:"love"`
		Rest    *float64 `json:"rest"`
		Summary string   `json:"summary"`
	}
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &parsed); err == nil {
		if parsed.Work != nil && parsed.Love != nil && parsed.Rest != nil {
			result.Work = int(*parsed.Work)
			result.Love = int(*parsed.Love)
			result.Rest = int(*parsed.Rest)
		}
		if v := strings.TrimSpace(parsed.Summary); v != "" {
			result.Summary = v
		}
		return result
	}

	if v, ok := scanLabeledLine(raw, "summary:"); ok {
		result.Summary = v
	}
	return result
}
