package resolver

import "testing"

// TestJapaneseFormsMatchEnglish verifies that every surface form of a city
// resolves to the same canonical name as the English name itself.
func TestJapaneseFormsMatchEnglish(t *testing.T) {
	cases := map[string][]string{
		"Tokyo":  {"tokyo", "東京", "とうきょう", "東京都"},
		"Osaka":  {"osaka", "大阪", "おおさか", "大阪市"},
		"Kyoto":  {"kyoto", "京都", "きょうと"},
		"Sendai": {"sendai", "仙台", "せんだい"},
	}

	for want, inputs := range cases {
		for _, input := range inputs {
			got, ok := Resolve(input)
			if !ok {
				t.Errorf("Resolve(%q): no match, want %q", input, want)
				continue
			}
			if got != want {
				t.Errorf("Resolve(%q) = %q, want %q", input, got, want)
			}
		}
	}
}

// TestFirstMatchWins documents the greedy first-match policy: when an input
// contains several catalog cities, the one listed first in the catalog wins,
// reproducibly. This pins observable behavior, it is not a correctness claim.
func TestFirstMatchWins(t *testing.T) {
	// "tokyo" is indexed before "osaka" in the English catalog.
	got, ok := Resolve("flying from osaka to tokyo next week")
	if !ok || got != "Tokyo" {
		t.Fatalf("Resolve = %q, %v; want Tokyo, true", got, ok)
	}

	// Repeat to show the tie-break is deterministic across runs.
	for i := 0; i < 10; i++ {
		again, _ := Resolve("flying from osaka to tokyo next week")
		if again != got {
			t.Fatalf("Resolve not deterministic: %q then %q", got, again)
		}
	}
}

func TestSubstringMatchInsideSentence(t *testing.T) {
	got, ok := Resolve("東京の天気はどうですか？")
	if !ok || got != "Tokyo" {
		t.Fatalf("Resolve = %q, %v; want Tokyo, true", got, ok)
	}

	got, ok = Resolve("What should I wear in Sapporo today?")
	if !ok || got != "Sapporo" {
		t.Fatalf("Resolve = %q, %v; want Sapporo, true", got, ok)
	}
}

// TestCatalogCapitalization pins the catalog's presentation: only the leading
// letter is uppercased, including for multi-word names.
func TestCatalogCapitalization(t *testing.T) {
	got, ok := Resolve("is it raining in new york?")
	if !ok || got != "New york" {
		t.Fatalf("Resolve = %q, %v; want %q, true", got, ok, "New york")
	}
}

func TestNoMatch(t *testing.T) {
	for _, input := range []string{"", "what should I eat today?", "42"} {
		if got, ok := Resolve(input); ok {
			t.Errorf("Resolve(%q) = %q, want no match", input, got)
		}
	}
}

// TestKatakanaWorldCities covers the Japanese-only surface forms for cities
// without kanji entries.
func TestKatakanaWorldCities(t *testing.T) {
	cases := map[string]string{
		"ロンドンに行きたい":     "London",
		"ニューヨークは寒い？":    "New York",
		"ホーチミンの天気":      "Ho Chi Minh City",
		"ロスの気温を教えて":     "Los Angeles",
		"サンパウロはどうですか":   "Sao Paulo",
		"ケープタウンに住んでいます": "Cape Town",
	}
	for input, want := range cases {
		got, ok := Resolve(input)
		if !ok || got != want {
			t.Errorf("Resolve(%q) = %q, %v; want %q", input, got, ok, want)
		}
	}
}
