package quiz

import (
	"math/rand"
	"sort"
)

// SortByLikely returns the questions ordered easiest-first (likely
// descending). Ties are broken randomly on every call, so two runs over the
// same bank may interleave equal-likely questions differently. The input
// slice is not touched.
func SortByLikely(qs []Question) []Question {
	out := make([]Question, len(qs))
	copy(out, qs)
	// Shuffle first, then stable-sort: equal-likely questions keep their
	// shuffled relative order, which randomizes ties without an
	// inconsistent comparator.
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Likely > out[j].Likely
	})
	return out
}

// ShuffleOptions derives a SessionQuestion: each option text is tagged with
// its original index as a stable id, the list is permuted with Fisher-Yates,
// and the correct answer is recorded by id rather than position.
func ShuffleOptions(q Question) SessionQuestion {
	opts := make([]Option, len(q.Options))
	for i, text := range q.Options {
		opts[i] = Option{ID: i, Text: text}
	}
	for i := len(opts) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		opts[i], opts[j] = opts[j], opts[i]
	}
	return SessionQuestion{
		ID:              q.ID,
		Text:            q.Text,
		Options:         opts,
		CorrectOptionID: q.CorrectIndex,
		Likely:          q.Likely,
		Explanation:     q.Explanation,
		SkillName:       q.SkillName,
		SkillDefinition: q.SkillDefinition,
	}
}

// BuildSession fixes a session's question sequence and per-question option
// order: difficulty sort first, then an independent option shuffle per
// question.
func BuildSession(raw []Question) []SessionQuestion {
	sorted := SortByLikely(raw)
	out := make([]SessionQuestion, len(sorted))
	for i, q := range sorted {
		out[i] = ShuffleOptions(q)
	}
	return out
}
