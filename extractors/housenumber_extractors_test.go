package extractors

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
)

// TestExtractHousenumberFromTitle checks extraction against dossier title
// shapes found in the archive.
func TestExtractHousenumberFromTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "simple address",
			title: "St. Johanns-Vorstadt 2",
			want:  "2",
		},
		{
			name:  "address without whitespace",
			title: "Malzgasse10",
			want:  "10",
		},
		{
			name:  "letter suffix is trimmed",
			title: "Rheingasse 23a",
			want:  "23",
		},
		{
			name:  "first number of a multi-number title",
			title: "St. Johanns-Vorstadt 8, 10",
			want:  "8",
		},
		{
			name:  "number amid free text",
			title: "Haus Nr. 12, Ecke Rheingasse",
			want:  "12",
		},
		{
			name:  "heading with colon is no address",
			title: "Kanonengasse: Übersicht",
			want:  "",
		},
		{
			name:  "title without number",
			title: "Übersichtsplan",
			want:  "",
		},
		{
			name:  "empty title",
			title: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractHousenumberFromTitle(tt.title)
			if got != tt.want {
				t.Errorf("ExtractHousenumberFromTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

// TestExtractHousenumberFromTitleProperty checks on synthetic titles that
// the result is always either empty or a digit-only substring of the
// title.
func TestExtractHousenumberFromTitleProperty(t *testing.T) {
	faker := gofakeit.New(7)

	for i := 0; i < 200; i++ {
		title := faker.Street()
		if i%2 == 0 {
			title = faker.Sentence(4)
		}

		got := ExtractHousenumberFromTitle(title)
		if got == "" {
			continue
		}
		if !strings.Contains(title, got) {
			t.Errorf("result %q is not a substring of title %q", got, title)
		}
		for _, r := range got {
			if r < '0' || r > '9' {
				t.Errorf("result %q for title %q contains non-digit %q", got, title, r)
			}
		}
	}
}
