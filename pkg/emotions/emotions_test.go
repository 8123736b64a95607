package emotions

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func fullAdvice() map[string]string {
	return map[string]string{
		"Angry":    "Take a slow breath.",
		"Disgust":  "Step away for a moment.",
		"Fear":     "You are safe right now.",
		"Happy":    "Keep it up!",
		"Neutral":  "A calm mind is a good start.",
		"Sad":      "Talk to someone you trust.",
		"Surprise": "Take a second to process.",
	}
}

func TestLabelsOrder(t *testing.T) {
	want := []string{"Angry", "Disgust", "Fear", "Happy", "Neutral", "Sad", "Surprise"}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("expected %d labels, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("label %d: got %s, want %s", i, got[i], want[i])
		}
	}
	if Count != 7 {
		t.Errorf("Count = %d, want 7", Count)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   Label
		wantOK bool
	}{
		{"Happy", Happy, true},
		{"happy", Happy, true},
		{" SURPRISE ", Surprise, true},
		{"Contempt", "", false},
		{"", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := Parse(tc.in)
			if ok != tc.wantOK || got != tc.want {
				t.Errorf("Parse(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestAtAndIndex(t *testing.T) {
	for i, l := range Labels {
		got, ok := At(i)
		if !ok || got != l {
			t.Errorf("At(%d) = %q, %v", i, got, ok)
		}
		if l.Index() != i {
			t.Errorf("%s.Index() = %d, want %d", l, l.Index(), i)
		}
		if !l.Valid() {
			t.Errorf("%s should be valid", l)
		}
	}

	if _, ok := At(-1); ok {
		t.Error("At(-1) should fail")
	}
	if _, ok := At(Count); ok {
		t.Error("At(Count) should fail")
	}
	if Label("Bored").Valid() {
		t.Error("unknown label should not be valid")
	}
}

func TestAdviceLookupAllLabels(t *testing.T) {
	book := NewAdviceBook(fullAdvice())

	for _, l := range Labels {
		got := book.Lookup(l)
		if got == DefaultAdvice || got == "" {
			t.Errorf("Lookup(%s) returned placeholder text %q", l, got)
		}
	}
	if len(book.Missing()) != 0 {
		t.Errorf("expected no missing labels, got %v", book.Missing())
	}
}

func TestAdviceLookupUnknownLabel(t *testing.T) {
	book := NewAdviceBook(fullAdvice())

	if got := book.Lookup(Label("Bored")); got != DefaultAdvice {
		t.Errorf("Lookup(Bored) = %q, want default", got)
	}
}

func TestAdviceDuplicateKeys(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]string
		want string
		dups []string
	}{
		{
			name: "exact name wins",
			raw:  map[string]string{"happy": "lower", "Happy": "exact", "HAPPY": "upper"},
			want: "exact",
			dups: []string{"HAPPY", "happy"},
		},
		{
			name: "first sorted key wins",
			raw:  map[string]string{"happy": "lower", "HAPPY": "upper"},
			want: "upper",
			dups: []string{"happy"},
		},
		{
			name: "no duplicates",
			raw:  map[string]string{"happy": "only"},
			want: "only",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Map order is random; build several times to catch flakiness.
			for i := 0; i < 20; i++ {
				book := NewAdviceBook(tc.raw)
				if got := book.Lookup(Happy); got != tc.want {
					t.Fatalf("Lookup(Happy) = %q, want %q", got, tc.want)
				}
				got := book.Duplicates()
				if len(got) != len(tc.dups) {
					t.Fatalf("Duplicates() = %v, want %v", got, tc.dups)
				}
				for j := range got {
					if got[j] != tc.dups[j] {
						t.Fatalf("Duplicates() = %v, want %v", got, tc.dups)
					}
				}
			}
		})
	}
}

func TestAdvicePartialMapping(t *testing.T) {
	raw := fullAdvice()
	delete(raw, "Disgust")
	delete(raw, "Surprise")
	book := NewAdviceBook(raw)

	for _, l := range Labels {
		got := book.Lookup(l)
		switch l {
		case Disgust, Surprise:
			if got != DefaultAdvice {
				t.Errorf("Lookup(%s) = %q, want default", l, got)
			}
		default:
			if got != raw[string(l)] {
				t.Errorf("Lookup(%s) = %q, want %q", l, got, raw[string(l)])
			}
		}
	}

	missing := book.Missing()
	if len(missing) != 2 || missing[0] != Disgust || missing[1] != Surprise {
		t.Errorf("Missing() = %v, want [Disgust Surprise]", missing)
	}
	if book.Len() != 5 {
		t.Errorf("Len() = %d, want 5", book.Len())
	}
}

func TestAdviceUnknownKeys(t *testing.T) {
	raw := fullAdvice()
	raw["Contempt"] = "Hmm."
	book := NewAdviceBook(raw)

	unknown := book.Unknown()
	if len(unknown) != 1 || unknown[0] != "Contempt" {
		t.Errorf("Unknown() = %v", unknown)
	}
}

func TestNilAdviceBook(t *testing.T) {
	var book *AdviceBook
	if got := book.Lookup(Happy); got != DefaultAdvice {
		t.Errorf("nil book Lookup = %q", got)
	}
	if book.Len() != 0 {
		t.Error("nil book should be empty")
	}
}

func TestLoadAdviceJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	data := `{"Happy": "Smile on.", "Sad": "It will pass."}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	book, err := LoadAdvice(path)
	if err != nil {
		t.Fatalf("LoadAdvice failed: %v", err)
	}
	if book.Lookup(Happy) != "Smile on." {
		t.Errorf("Happy = %q", book.Lookup(Happy))
	}
	if book.Lookup(Fear) != DefaultAdvice {
		t.Errorf("Fear = %q, want default", book.Lookup(Fear))
	}
}

func TestLoadAdviceYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "advice.yaml")
	data := "Angry: Count to ten.\nNeutral: Carry on.\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	book, err := LoadAdvice(path)
	if err != nil {
		t.Fatalf("LoadAdvice failed: %v", err)
	}
	if book.Lookup(Angry) != "Count to ten." {
		t.Errorf("Angry = %q", book.Lookup(Angry))
	}
	if book.Len() != 2 {
		t.Errorf("Len() = %d, want 2", book.Len())
	}
}

func TestLoadAdviceErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadAdvice(filepath.Join(dir, "nope.json"))
		if !errors.Is(err, ErrAdviceNotFound) {
			t.Errorf("expected ErrAdviceNotFound, got %v", err)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		os.WriteFile(path, []byte("{not json"), 0644)
		_, err := LoadAdvice(path)
		if !errors.Is(err, ErrInvalidAdvice) {
			t.Errorf("expected ErrInvalidAdvice, got %v", err)
		}
	})

	t.Run("no known labels", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		os.WriteFile(path, []byte(`{"Bored": "Read a book."}`), 0644)
		_, err := LoadAdvice(path)
		if !errors.Is(err, ErrEmptyAdvice) {
			t.Errorf("expected ErrEmptyAdvice, got %v", err)
		}
	})
}

func TestRepositoryAdviceFile(t *testing.T) {
	path := filepath.Join("..", "..", "data", "advice.json")
	if _, err := os.Stat(path); err != nil {
		t.Skip("data/advice.json not found, skipping")
	}

	book, err := LoadAdvice(path)
	if err != nil {
		t.Fatalf("LoadAdvice(%s) failed: %v", path, err)
	}
	if missing := book.Missing(); len(missing) != 0 {
		t.Errorf("shipped advice file is missing %v", missing)
	}
}
