package saju

import "testing"

func TestAnimalSignCycle(t *testing.T) {
	for year := 1900; year < 2030; year++ {
		if AnimalSign(year) != AnimalSign(year+12) {
			t.Fatalf("AnimalSign(%d) != AnimalSign(%d)", year, year+12)
		}
	}
}

func TestAnimalSignKnownYears(t *testing.T) {
	cases := []struct {
		year int
		want string
	}{
		{1990, "horse"},
		{1996, "rat"},
		{2000, "dragon"},
		{2023, "rabbit"},
		{4, "rat"},
	}
	for _, c := range cases {
		if got := AnimalSign(c.year); got != c.want {
			t.Errorf("AnimalSign(%d) = %q, want %q", c.year, got, c.want)
		}
	}
}

func TestStarSignBoundaries(t *testing.T) {
	cases := []struct {
		month, day int
		want       string
	}{
		{3, 21, "Aries"},
		{4, 19, "Aries"},
		{4, 20, "Taurus"},
		{12, 21, "Sagittarius"},
		{12, 22, "Capricorn"},
		{12, 31, "Capricorn"},
		{1, 1, "Capricorn"},
		{1, 19, "Capricorn"},
		{1, 20, "Aquarius"},
		{2, 19, "Pisces"},
	}
	for _, c := range cases {
		if got := StarSign(c.month, c.day); got != c.want {
			t.Errorf("StarSign(%d, %d) = %q, want %q", c.month, c.day, got, c.want)
		}
	}
}

func TestTimeBranchSlots(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{1, "Chuk-si"},
		{2, "Chuk-si"},
		{3, "In-si"},
		{12, "O-si"},
		{22, "Hae-si"},
	}
	for _, c := range cases {
		if got := TimeBranch(c.hour, 30); got != c.want {
			t.Errorf("TimeBranch(%d, 30) = %q, want %q", c.hour, got, c.want)
		}
	}
}

// 子时 (23,1) 的匹配条件永假，23点和0点靠默认分支得到子时标签。
func TestTimeBranchMidnightFallthrough(t *testing.T) {
	for _, minute := range []int{0, 15, 59} {
		if got := TimeBranch(23, minute); got != "Ja-si" {
			t.Errorf("TimeBranch(23, %d) = %q, want Ja-si", minute, got)
		}
		if got := TimeBranch(0, minute); got != "Ja-si" {
			t.Errorf("TimeBranch(0, %d) = %q, want Ja-si", minute, got)
		}
	}
}

func TestTimeBranchMinuteIgnored(t *testing.T) {
	if TimeBranch(13, 0) != TimeBranch(13, 59) {
		t.Error("minute should not affect the slot")
	}
}
