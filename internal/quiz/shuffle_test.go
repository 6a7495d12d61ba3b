package quiz

import (
	"fmt"
	"testing"
)

func sampleQuestion() Question {
	return Question{
		ID:           7,
		Text:         "Which layer retries?",
		Options:      []string{"alpha", "beta", "gamma", "delta"},
		CorrectIndex: 2,
		Likely:       0.4,
		Explanation:  "gamma is right",
	}
}

func TestShuffleOptionsPreservesPairs(t *testing.T) {
	q := sampleQuestion()
	for trial := 0; trial < 50; trial++ {
		sq := ShuffleOptions(q)
		if len(sq.Options) != len(q.Options) {
			t.Fatalf("got %d options, want %d", len(sq.Options), len(q.Options))
		}
		seen := map[int]string{}
		for _, opt := range sq.Options {
			if _, dup := seen[opt.ID]; dup {
				t.Fatalf("duplicate option id %d", opt.ID)
			}
			seen[opt.ID] = opt.Text
		}
		for i, text := range q.Options {
			if seen[i] != text {
				t.Fatalf("option id %d carries %q, want %q", i, seen[i], text)
			}
		}
	}
}

func TestShuffleOptionsCorrectID(t *testing.T) {
	q := sampleQuestion()
	for trial := 0; trial < 50; trial++ {
		sq := ShuffleOptions(q)
		if sq.CorrectOptionID != q.CorrectIndex {
			t.Fatalf("correctOptionId = %d, want %d", sq.CorrectOptionID, q.CorrectIndex)
		}
		matches := 0
		for _, opt := range sq.Options {
			if opt.ID == sq.CorrectOptionID {
				matches++
				if opt.Text != q.Options[q.CorrectIndex] {
					t.Fatalf("correct option text %q, want %q", opt.Text, q.Options[q.CorrectIndex])
				}
			}
		}
		if matches != 1 {
			t.Fatalf("%d options match correctOptionId, want exactly 1", matches)
		}
	}
}

func TestShuffleOptionsApproximatelyUniform(t *testing.T) {
	q := Question{ID: 1, Text: "t", Options: []string{"a", "b", "c"}, CorrectIndex: 0, Likely: 0.5}
	const trials = 9000 // expected 1500 per permutation of 3 options
	counts := map[string]int{}
	for i := 0; i < trials; i++ {
		sq := ShuffleOptions(q)
		key := fmt.Sprintf("%d%d%d", sq.Options[0].ID, sq.Options[1].ID, sq.Options[2].ID)
		counts[key]++
	}
	if len(counts) != 6 {
		t.Fatalf("observed %d permutations, want 6", len(counts))
	}
	for key, n := range counts {
		// ~11 standard deviations of slack; a biased shuffle lands well outside
		if n < 1100 || n > 1900 {
			t.Fatalf("permutation %s seen %d times, expected near 1500", key, n)
		}
	}
}

func TestSortByLikelyOrdersDescending(t *testing.T) {
	in := []Question{
		{ID: 1, Likely: 0.2},
		{ID: 2, Likely: 0.9},
		{ID: 3, Likely: 0.5},
		{ID: 4, Likely: 0.9},
		{ID: 5, Likely: 0.1},
	}
	out := SortByLikely(in)
	if len(out) != len(in) {
		t.Fatalf("got %d questions, want %d", len(out), len(in))
	}
	for i := 1; i < len(out); i++ {
		if out[i].Likely > out[i-1].Likely {
			t.Fatalf("likely increases at %d: %v after %v", i, out[i].Likely, out[i-1].Likely)
		}
	}
	seen := map[int]bool{}
	for _, q := range out {
		seen[q.ID] = true
	}
	for _, q := range in {
		if !seen[q.ID] {
			t.Fatalf("question %d lost in sort", q.ID)
		}
	}
	// input untouched
	if in[0].ID != 1 || in[4].ID != 5 {
		t.Fatal("input slice was mutated")
	}
}

func TestSortByLikelyRandomizesTies(t *testing.T) {
	in := []Question{
		{ID: 1, Likely: 0.5},
		{ID: 2, Likely: 0.5},
		{ID: 3, Likely: 0.5},
		{ID: 4, Likely: 0.5},
	}
	first := orderKey(SortByLikely(in))
	for i := 0; i < 100; i++ {
		if orderKey(SortByLikely(in)) != first {
			return
		}
	}
	t.Fatalf("100 sorts of all-tied questions produced the same order %s", first)
}

func orderKey(qs []Question) string {
	key := ""
	for _, q := range qs {
		key += fmt.Sprintf("%d,", q.ID)
	}
	return key
}

func TestBuildSessionShufflesEveryQuestion(t *testing.T) {
	raw := []Question{
		{ID: 1, Text: "a", Options: []string{"x", "y"}, CorrectIndex: 1, Likely: 0.9},
		{ID: 2, Text: "b", Options: []string{"x", "y", "z"}, CorrectIndex: 0, Likely: 0.3},
	}
	out := BuildSession(raw)
	if len(out) != 2 {
		t.Fatalf("got %d session questions, want 2", len(out))
	}
	if out[0].ID != 1 || out[1].ID != 2 {
		t.Fatalf("wrong sequence: %d, %d (want easier question 1 first)", out[0].ID, out[1].ID)
	}
	for _, sq := range out {
		if len(sq.Options) == 0 {
			t.Fatalf("question %d has no options", sq.ID)
		}
	}
}
