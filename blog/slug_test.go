package blog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSlug(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "turkish diacritics folded",
			title: "Altın Yatırımı: 2024 Rehberi!",
			want:  "altin-yatirimi-2024-rehberi",
		},
		{
			name:  "plain ascii",
			title: "Gold Prices Today",
			want:  "gold-prices-today",
		},
		{
			name:  "punctuation runs collapse to one hyphen",
			title: "Gümüş -- ve / Platin",
			want:  "gumus-ve-platin",
		},
		{
			name:  "no leading or trailing hyphen",
			title: "  ...Çeyrek Altın...  ",
			want:  "ceyrek-altin",
		},
		{
			name:  "uppercase dotted I",
			title: "İstanbul Sarrafları",
			want:  "istanbul-sarraflari",
		},
		{
			name:  "digits kept",
			title: "22 Ayar vs 24 Ayar",
			want:  "22-ayar-vs-24-ayar",
		},
		{
			name:  "empty title",
			title: "",
			want:  "",
		},
		{
			name:  "only punctuation",
			title: "!?!",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveSlug(tt.title))
		})
	}
}
