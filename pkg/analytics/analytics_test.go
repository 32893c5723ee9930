package analytics

import (
	"reflect"
	"testing"
)

func TestWordFrequency(t *testing.T) {
	a := &Analytics{}
	got := a.WordFrequency("Water is essential. WATER regulates temperature; water, 2024, (temperature)")

	want := map[string]int{
		"water":       3,
		"essential":   1,
		"regulates":   1,
		"temperature": 2,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WordFrequency() = %v, want %v", got, want)
	}
}

func TestIsStopword(t *testing.T) {
	for _, w := range []string{"the", "The", "CHAPTER", "and"} {
		if !IsStopword(w) {
			t.Errorf("IsStopword(%q) = false, want true", w)
		}
	}
	for _, w := range []string{"nutrition", "vitamin"} {
		if IsStopword(w) {
			t.Errorf("IsStopword(%q) = true, want false", w)
		}
	}
}

func TestLanguageDetector(t *testing.T) {
	d := NewLanguageDetector()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "english",
			text: "Nutrition is the science of how the body uses the food we eat to grow and stay healthy.",
			want: "en",
		},
		{
			name: "german",
			text: "Die Ernährung beschreibt, wie der Körper die Lebensmittel verwendet, die wir jeden Tag essen.",
			want: "de",
		},
		{name: "empty", text: "   ", want: UnknownLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Detect(tt.text); got != tt.want {
				t.Errorf("Detect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSentenceCounter(t *testing.T) {
	counter, err := NewSentenceCounter()
	if err != nil {
		t.Fatalf("NewSentenceCounter() error = %v", err)
	}

	tests := []struct {
		text string
		want int
	}{
		{text: "", want: 0},
		{text: "   ", want: 0},
		{text: "Water is essential.", want: 1},
		{text: "Water is essential. Fat is a nutrient. Eat well.", want: 3},
	}

	for _, tt := range tests {
		if got := counter.Count(tt.text); got != tt.want {
			t.Errorf("Count(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
