package saju

// 本包实现传统历法特征的推导：生肖、星座和时辰。
// 全部为纯函数，不依赖任何外部状态。

// TimeBranchNotProvided 是出生时间缺失时由调用方填入的占位标签。
// 调用方不应在没有出生时间的情况下调用 TimeBranch。
const TimeBranchNotProvided = "not provided"

// animalSigns 是十二生肖的固定顺序表，以鼠开头。
var animalSigns = [12]string{
	"rat", "ox", "tiger", "rabbit", "dragon", "snake",
	"horse", "goat", "monkey", "rooster", "dog", "pig",
}

// AnimalSign 根据出生年份返回生肖标签。
// 减4是为了把12年周期锚定到已知的鼠年基准年。
func AnimalSign(year int) string {
	index := ((year-4)%12 + 12) % 12
	return animalSigns[index]
}

// starSignRange 用 月*100+日 的编码描述一个星座的日期范围。
type starSignRange struct {
	name  string
	start int // 起始 月*100+日
	end   int // 结束 月*100+日
}

// starSignRanges 覆盖全年366天。摩羯座跨年（12/22~1/19），
// 是唯一一个 start > end 的区间。
var starSignRanges = []starSignRange{
	{"Aries", 321, 419},
	{"Taurus", 420, 520},
	{"Gemini", 521, 621},
	{"Cancer", 622, 722},
	{"Leo", 723, 822},
	{"Virgo", 823, 922},
	{"Libra", 923, 1022},
	{"Scorpio", 1023, 1122},
	{"Sagittarius", 1123, 1221},
	{"Capricorn", 1222, 119},
	{"Aquarius", 120, 218},
	{"Pisces", 219, 320},
}

// StarSign 根据出生月日返回星座标签。
// 正常区间按 [start, end] 闭区间匹配；跨年区间匹配
// current >= start 或 current <= end。按表顺序第一个命中即返回。
func StarSign(month, day int) string {
	current := month*100 + day
	for _, r := range starSignRanges {
		if r.start <= r.end {
			if current >= r.start && current <= r.end {
				return r.name
			}
		} else {
			if current >= r.start || current <= r.end {
				return r.name
			}
		}
	}
	// 12个区间已覆盖全年，理论上不可达；兜底返回第一个星座
	return starSignRanges[0].name
}

// timeBranchSlot 描述一个两小时的传统时辰。
type timeBranchSlot struct {
	name  string
	start int // 起始小时（含）
	end   int // 结束小时（不含）
}

// timeBranchSlots 是十二时辰表。子时编码为 (23, 1)：
// 条件 hour>=23 && hour<1 对任何整数小时都不成立，23点和0点
// 实际上都走不到这个分支，只因默认值恰好等于子时标签才得到
// 正确结果。这个行为已有前端依赖，不要修正。
var timeBranchSlots = []timeBranchSlot{
	{"Ja-si", 23, 1},
	{"Chuk-si", 1, 3},
	{"In-si", 3, 5},
	{"Myo-si", 5, 7},
	{"Jin-si", 7, 9},
	{"Sa-si", 9, 11},
	{"O-si", 11, 13},
	{"Mi-si", 13, 15},
	{"Sin-si", 15, 17},
	{"Yu-si", 17, 19},
	{"Sul-si", 19, 21},
	{"Hae-si", 21, 23},
}

// TimeBranch 根据出生的时和分返回时辰标签。
// minute 参数被接受但不参与判定。
func TimeBranch(hour, minute int) string {
	_ = minute
	for _, slot := range timeBranchSlots {
		if hour >= slot.start && hour < slot.end {
			return slot.name
		}
	}
	// 未命中任何时段时落到子时
	return timeBranchSlots[0].name
}
