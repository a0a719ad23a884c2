package spacedrep

import "time"

// ReviewState is the persisted schedule of one item as seen by the dashboard.
type ReviewState struct {
	State
	NextReviewDate time.Time  `json:"next_review_date"`
	LastReviewDate *time.Time `json:"last_review_date,omitempty"`
}

// IsDue returns true if the item is due for review (at or past the review date).
func (rs *ReviewState) IsDue(now time.Time) bool {
	return !now.Before(rs.NextReviewDate)
}

// IsLapsed returns true once the item is overdue by more than half of its
// interval. Items on the retry track (interval 0) never lapse.
func (rs *ReviewState) IsLapsed(now time.Time) bool {
	if !rs.IsDue(now) || rs.Interval == 0 {
		return false
	}
	graceHours := float64(rs.Interval) * 0.5 * 24.0
	threshold := rs.NextReviewDate.Add(time.Duration(graceHours * float64(time.Hour)))
	return now.After(threshold)
}

// ReviewStatus describes an item's review status for display.
type ReviewStatus string

const (
	ReviewNotDue  ReviewStatus = "not_due"
	ReviewDue     ReviewStatus = "due"
	ReviewOverdue ReviewStatus = "overdue"
	ReviewRetry   ReviewStatus = "retry"
)

// Status returns the review status for UI display.
func (rs *ReviewState) Status(now time.Time) ReviewStatus {
	if rs.Repetitions == 0 && rs.LastReviewDate != nil {
		if rs.IsDue(now) {
			return ReviewDue
		}
		return ReviewRetry
	}
	if rs.IsLapsed(now) {
		return ReviewOverdue
	}
	if rs.IsDue(now) {
		return ReviewDue
	}
	return ReviewNotDue
}
