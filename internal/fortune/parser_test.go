package fortune

import "testing"

func TestParseBalanceFencedMalformedJSON(t *testing.T) {
	result := parseBalance("```json\n{not valid}\n```")
	if result.Work != defaultBalanceWork || result.Love != defaultBalanceLove || result.Rest != defaultBalanceRest {
		t.Errorf("expected default triple, got %d/%d/%d", result.Work, result.Love, result.Rest)
	}
	if result.Summary == "" {
		t.Error("summary must not be empty")
	}
}

func TestParseBalanceValidJSON(t *testing.T) {
	result := parseBalance("```json\n{\"work\": 50, \"love\": 20, \"rest\": 30, \"summary\": \"lean into work today\"}\n```")
	if result.Work != 50 || result.Love != 20 || result.Rest != 30 {
		t.Errorf("unexpected triple %d/%d/%d", result.Work, result.Love, result.Rest)
	}
	if result.Summary != "lean into work today" {
		t.Errorf("unexpected summary %q", result.Summary)
	}
}

// 三个百分比有缺失时整组回退，summary仍然取解析值。
func TestParseBalancePartialPercentages(t *testing.T) {
	result := parseBalance(`{"work": 60, "summary": "mostly work"}`)
	if result.Work != defaultBalanceWork || result.Love != defaultBalanceLove || result.Rest != defaultBalanceRest {
		t.Errorf("partial triple should fall back wholesale, got %d/%d/%d", result.Work, result.Love, result.Rest)
	}
	if result.Summary != "mostly work" {
		t.Errorf("unexpected summary %q", result.Summary)
	}
}

func TestParseSubconsciousJSONBackfill(t *testing.T) {
	result := parseSubconscious(`{"keyword": "tide", "interpretation": "", "advice": "rest early"}`)
	if result.Keyword != "tide" {
		t.Errorf("keyword = %q", result.Keyword)
	}
	if result.Interpretation != defaultInterpretation {
		t.Errorf("empty interpretation should be backfilled, got %q", result.Interpretation)
	}
	if result.Advice != "rest early" {
		t.Errorf("advice = %q", result.Advice)
	}
}

func TestParseSubconsciousLineFallback(t *testing.T) {
	raw := "Here is the reading.\nkeyword: river\nadvice: take a walk"
	result := parseSubconscious(raw)
	if result.Keyword != "river" {
		t.Errorf("keyword = %q", result.Keyword)
	}
	if result.Advice != "take a walk" {
		t.Errorf("advice = %q", result.Advice)
	}
	if result.Interpretation != defaultInterpretation {
		t.Errorf("missing label should resolve to default, got %q", result.Interpretation)
	}
}

func TestParseForecastLines(t *testing.T) {
	raw := "Fortune: A calm and productive day awaits you.\nAdvice: Answer the message you have been postponing."
	result := parseForecast(raw)
	if result.Fortune != "A calm and productive day awaits you." {
		t.Errorf("fortune = %q", result.Fortune)
	}
	if result.Advice != "Answer the message you have been postponing." {
		t.Errorf("advice = %q", result.Advice)
	}
}

func TestParseForecastDefaults(t *testing.T) {
	result := parseForecast("the model rambled with no labels at all")
	if result.Fortune != defaultFortuneText || result.Advice != defaultAdviceText {
		t.Errorf("expected defaults, got %q / %q", result.Fortune, result.Advice)
	}
}

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
		{"prefix {\"a\":1} suffix", `{"a":1}`},
	}
	for _, c := range cases {
		if got := stripCodeFences(c.in); got != c.want {
			t.Errorf("stripCodeFences(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
