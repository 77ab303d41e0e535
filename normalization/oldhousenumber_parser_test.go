package normalization

import (
	"strings"
	"testing"
)

func boolRef(b bool) *bool { return &b }

// TestParseOldHousenumber checks the rule precedence against annotations
// found in the source material.
func TestParseOldHousenumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want ParsedOldHousenumber
	}{
		{
			name: "empty input",
			text: "",
			want: ParsedOldHousenumber{},
		},
		{
			name: "blank input",
			text: "   ",
			want: ParsedOldHousenumber{},
		},
		{
			name: "simple number",
			text: "1257",
			want: ParsedOldHousenumber{Numbers: []string{"1257"}, IsPartOf: boolRef(false)},
		},
		{
			name: "number with letter suffix",
			text: "1257 A",
			want: ParsedOldHousenumber{Numbers: []string{"1257 A"}, IsPartOf: boolRef(false)},
		},
		{
			name: "comma separated numbers",
			text: "1052, 1053, 1054",
			want: ParsedOldHousenumber{Numbers: []string{"1052", "1053", "1054"}, IsPartOf: boolRef(false)},
		},
		{
			name: "slash separated numbers",
			text: "1097 / 1096",
			want: ParsedOldHousenumber{Numbers: []string{"1097", "1096"}, IsPartOf: boolRef(false)},
		},
		{
			name: "plus separated numbers",
			text: "827 + 827 A",
			want: ParsedOldHousenumber{Numbers: []string{"827", "827 A"}, IsPartOf: boolRef(false)},
		},
		{
			name: "u. separated numbers",
			text: "1250 u. 1251",
			want: ParsedOldHousenumber{Numbers: []string{"1250", "1251"}, IsPartOf: boolRef(false)},
		},
		{
			name: "bann postfix",
			text: "48 A (Bann)",
			want: ParsedOldHousenumber{Numbers: []string{"48 A"}, IsPartOf: boolRef(false), IsBann: true},
		},
		{
			name: "bann prefix keeps number extraction",
			text: "Bann 7",
			want: ParsedOldHousenumber{Numbers: []string{"7"}, IsPartOf: boolRef(false), IsBann: true},
		},
		{
			name: "range is not interpolated",
			text: "45-47",
			want: ParsedOldHousenumber{Numbers: []string{"45", "47"}, IsPartOf: boolRef(false)},
		},
		{
			name: "legacy von phrasing",
			text: "von 23",
			want: ParsedOldHousenumber{Numbers: []string{"23"}, IsPartOf: boolRef(false)},
		},
		{
			name: "teil von A und B takes second parcel",
			text: "Teil von 12 und 14",
			want: ParsedOldHousenumber{
				Numbers:    []string{"14"},
				Supplement: "zusätzlich Teil von 12 (zu verifizieren)",
				IsPartOf:   boolRef(false),
			},
		},
		{
			name: "teil von A und B with letter suffix is ambiguous",
			text: "Teil von 12 A und 14",
			want: ParsedOldHousenumber{
				Numbers:    []string{"14"},
				Supplement: "zusätzlich Teil von 12 A",
				IsPartOf:   boolRef(false),
			},
		},
		{
			name: "teil von A und B with qualifier is ambiguous",
			text: "Teil von 12 und 14, Hinterhaus",
			want: ParsedOldHousenumber{
				Numbers:    []string{"14"},
				Supplement: "zusätzlich Teil von 12, Hinterhaus",
				IsPartOf:   boolRef(false),
			},
		},
		{
			name: "theil von with neighbouring parcel",
			text: "Theil von 744 A neben 745",
			want: ParsedOldHousenumber{
				Numbers:            []string{"744 A"},
				Supplement:         "neben",
				NeighbouringNumber: []string{"745"},
				IsPartOf:           boolRef(true),
			},
		},
		{
			name: "theil von number list",
			text: "Theil von 126, 124",
			want: ParsedOldHousenumber{Numbers: []string{"126", "124"}, IsPartOf: boolRef(true)},
		},
		{
			name: "theil von numbers with postfix",
			text: "Theil von 552, 551, Vorderhaus",
			want: ParsedOldHousenumber{
				Numbers:    []string{"552", "551"},
				Supplement: "Vorderhaus",
				IsPartOf:   boolRef(true),
			},
		},
		{
			name: "theil von letter postfix attaches to number",
			text: "Theil von 1045 A und B",
			want: ParsedOldHousenumber{
				Numbers:    []string{"1045 A"},
				Supplement: "und B",
				IsPartOf:   boolRef(true),
			},
		},
		{
			name: "theil von with free text postfix",
			text: "Theil von 1084, zweites Haus von 1085",
			want: ParsedOldHousenumber{
				Numbers:    []string{"1084"},
				Supplement: "zweites Haus von 1085",
				IsPartOf:   boolRef(true),
			},
		},
		{
			name: "number with arbitrary postfix",
			text: "441 A u. Th. v. 440 neben 441 A",
			want: ParsedOldHousenumber{
				Numbers:            []string{"441 A"},
				Supplement:         "u. Th. v. 440 neben 441 A",
				NeighbouringNumber: []string{"441 A"},
				IsPartOf:           boolRef(false),
			},
		},
		{
			name: "number with comma postfix",
			text: "1257, Hinterhaus",
			want: ParsedOldHousenumber{
				Numbers:    []string{"1257"},
				Supplement: ", Hinterhaus",
				IsPartOf:   boolRef(false),
			},
		},
		{
			name: "free text without number",
			text: "Kein Haus",
			want: ParsedOldHousenumber{Supplement: "Kein Haus"},
		},
		{
			name: "teil von without number degrades to supplement",
			text: "Teil von Haus",
			want: ParsedOldHousenumber{Supplement: "Teil von Haus"},
		},
		{
			name: "whitespace is normalized before matching",
			text: "  Teil   von 12  und  14 ",
			want: ParsedOldHousenumber{
				Numbers:    []string{"14"},
				Supplement: "zusätzlich Teil von 12 (zu verifizieren)",
				IsPartOf:   boolRef(false),
			},
		},
		{
			name: "bann inside word flags without stripping it",
			text: "Riehenbann 3",
			want: ParsedOldHousenumber{Supplement: "Riehenbann 3", IsBann: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseOldHousenumber(tt.text)
			assertParsedEqual(t, tt.want, got)
		})
	}
}

// TestParseOldHousenumberNeverPanics feeds degenerate inputs; the worst
// allowed outcome is degraded output.
func TestParseOldHousenumberNeverPanics(t *testing.T) {
	inputs := []string{
		"Teil von", "Th. v.", "und", "neben", "-", "12-", "-12",
		"Teil von und", "((((", "12 und", "von", "u.", " , , ",
		strings.Repeat("9", 500), strings.Repeat("Teil von 1 ", 100),
	}
	for _, input := range inputs {
		got := ParseOldHousenumber(input)
		// Same input, same output.
		again := ParseOldHousenumber(input)
		assertParsedEqual(t, got, again)
	}
}

func assertParsedEqual(t *testing.T, want, got ParsedOldHousenumber) {
	t.Helper()
	if !equalStrings(want.Numbers, got.Numbers) {
		t.Errorf("Numbers = %v, want %v", got.Numbers, want.Numbers)
	}
	if got.Supplement != want.Supplement {
		t.Errorf("Supplement = %q, want %q", got.Supplement, want.Supplement)
	}
	if !equalStrings(want.NeighbouringNumber, got.NeighbouringNumber) {
		t.Errorf("NeighbouringNumber = %v, want %v", got.NeighbouringNumber, want.NeighbouringNumber)
	}
	if !equalBoolPtr(want.IsPartOf, got.IsPartOf) {
		t.Errorf("IsPartOf = %v, want %v", formatBoolPtr(got.IsPartOf), formatBoolPtr(want.IsPartOf))
	}
	if got.IsBann != want.IsBann {
		t.Errorf("IsBann = %v, want %v", got.IsBann, want.IsBann)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalBoolPtr(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func formatBoolPtr(b *bool) string {
	if b == nil {
		return "<nil>"
	}
	if *b {
		return "true"
	}
	return "false"
}
