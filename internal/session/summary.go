package session

import "github.com/abhisek/mathdrill/internal/store"

// BuildSummary computes the deck statistics from the recorded results.
// Averages are taken over the full deck size.
func BuildSummary(results []Result, deckSize int) store.DeckSummary {
	sum := store.DeckSummary{TotalQuestions: deckSize}
	for _, r := range results {
		if r.Correct {
			sum.CorrectAnswers++
		}
		sum.TotalTimeSeconds += r.Elapsed
	}
	sum.IncorrectAnswers = deckSize - sum.CorrectAnswers
	if deckSize > 0 {
		sum.AverageTimeSeconds = sum.TotalTimeSeconds / float64(deckSize)
		sum.AccuracyPercentage = 100 * float64(sum.CorrectAnswers) / float64(deckSize)
	}
	return sum
}
