package fortune

import (
	"fmt"
	"strings"

	"github.com/daily-saju/fortune-backend/internal/saju"
)

// 提示词只“请求”格式约束，不保证生成服务遵守。
// 对响应的兜底由解析器负责。

// profileSection 生成三种提示词共用的档案段落。
func profileSection(p BirthProfile, f DerivedFeatures) string {
	var b strings.Builder

	gender := strings.TrimSpace(p.Gender)
	if gender == "" {
		gender = "unspecified"
	}
	b.WriteString("Profile:\n")
	fmt.Fprintf(&b, "- Gender: %s\n", gender)
	fmt.Fprintf(&b, "- Birthdate: %s\n", p.Birthdate)
	if f.TimeBranch == saju.TimeBranchNotProvided {
		b.WriteString("- Birth time: not provided\n")
	} else {
		fmt.Fprintf(&b, "- Time branch: %s\n", f.TimeBranch)
	}
	fmt.Fprintf(&b, "- Animal sign: %s\n", f.ZodiacAnimal)
	fmt.Fprintf(&b, "- Star sign: %s\n", f.StarSign)
	if mbti := strings.TrimSpace(p.MBTI); mbti != "" {
		fmt.Fprintf(&b, "- MBTI: %s\n", strings.ToUpper(mbti))
	}
	return b.String()
}

// buildFortunePrompt 组装每日运势的提示词。
// MBTI缺失时整段MBTI指令省略，而不是输出空指令。
func buildFortunePrompt(p BirthProfile, f DerivedFeatures) string {
	var b strings.Builder
	b.WriteString("You are a seasoned saju fortune teller. Speak warmly but directly.\n\n")
	b.WriteString(profileSection(p, f))
	b.WriteString("\nWrite today's fortune for this person.\n")
	b.WriteString("The fortune text should be between 200 and 300 characters.\n")
	b.WriteString("Do not use exclamation marks.\n")
	b.WriteString("Answer with exactly two labeled lines and nothing else:\n")
	b.WriteString("Fortune: <today's overall reading>\n")
	b.WriteString("Advice: <one practical suggestion for today>\n")
	if mbti := strings.TrimSpace(p.MBTI); mbti != "" {
		fmt.Fprintf(&b, "The Advice line must be tailored to the %s temperament.\n", strings.ToUpper(mbti))
	}
	return b.String()
}

// buildSubconsciousPrompt 组装潜意识解读的提示词，要求单个JSON对象。
func buildSubconsciousPrompt(p BirthProfile, f DerivedFeatures) string {
	var b strings.Builder
	b.WriteString("You are a gentle reader of the subconscious mind, drawing on traditional saju symbolism.\n\n")
	b.WriteString(profileSection(p, f))
	b.WriteString("\nDescribe what currently occupies this person's subconscious.\n")
	b.WriteString("The interpretation should be between 150 and 250 characters.\n")
	b.WriteString("Do not use exclamation marks.\n")
	b.WriteString("Respond with a single JSON object only, no markdown fences, in this exact shape:\n")
	b.WriteString(`{"keyword": "<one word>", "interpretation": "<the reading>", "advice": "<one gentle suggestion>"}` + "\n")
	if mbti := strings.TrimSpace(p.MBTI); mbti != "" {
		fmt.Fprintf(&b, "Let the advice reflect the %s temperament.\n", strings.ToUpper(mbti))
	}
	return b.String()
}

// buildBalancePrompt 组装时间平衡解读的提示词。
// 三个百分比只要求“大致”加和到100，解析端不强制。
func buildBalancePrompt(p BirthProfile, f DerivedFeatures) string {
	var b strings.Builder
	b.WriteString("You are a life-balance coach versed in saju readings.\n\n")
	b.WriteString(profileSection(p, f))
	b.WriteString("\nEstimate how this person should divide their energy today between work, love and rest.\n")
	b.WriteString("Do not use exclamation marks.\n")
	b.WriteString("Respond with a single JSON object only, no markdown fences, in this exact shape:\n")
	b.WriteString(`{"work": <integer>, "love": <integer>, "rest": <integer>, "summary": "<one or two sentences>"}` + "\n")
	b.WriteString("The three integers are percentages and should sum to approximately 100.\n")
	if mbti := strings.TrimSpace(p.MBTI); mbti != "" {
		fmt.Fprintf(&b, "Weigh the split with the %s temperament in mind.\n", strings.ToUpper(mbti))
	}
	return b.String()
}
