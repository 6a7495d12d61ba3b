package quiz

// ComputeStats reduces a list of answers to summary counts and the average
// difficulty (1 - likely) of the questions answered correctly. Pure and
// order-independent.
func ComputeStats(answers []Answer) Stats {
	s := Stats{Answered: len(answers)}
	sum := 0.0
	for _, a := range answers {
		if a.IsCorrect {
			s.Correct++
			sum += 1 - a.Likely
		}
	}
	if s.Correct > 0 {
		avg := sum / float64(s.Correct)
		s.AvgDifficultyCorrect = &avg
	}
	return s
}
