package analytics

import (
	"time"

	"github.com/mrlokans/bookstack/internal/entities"
)

// KPIs are the headline counters of a library. Ratios over an empty set
// are 0.
type KPIs struct {
	Total          int     `json:"total"`
	Read           int     `json:"read"`
	Unread         int     `json:"unread"`
	Reading        int     `json:"reading"`
	AvgRating      float64 `json:"avg_rating"`
	AvgScore       float64 `json:"avg_score"`
	ReadPercentage float64 `json:"read_percentage"`
	YearlyGoal     int     `json:"yearly_goal"`
	ReadThisYear   int     `json:"read_this_year"`
	GoalProgress   float64 `json:"goal_progress"`
}

// ComputeKPIs counts books by status and averages ratings of rated read
// books and scores of all books. Goal progress is the share of goal books
// read during the calendar year of now.
func ComputeKPIs(books []entities.Book, goal int, now time.Time) KPIs {
	k := KPIs{Total: len(books), YearlyGoal: goal}

	ratingSum, rated, scoreSum := 0, 0, 0
	for i := range books {
		b := &books[i]
		scoreSum += b.Score
		switch {
		case b.IsRead():
			k.Read++
			if b.Rating != nil && *b.Rating > 0 {
				ratingSum += *b.Rating
				rated++
			}
			if d, ok := ParseDate(b.DateRead); ok && d.Year() == now.Year() {
				k.ReadThisYear++
			}
		case b.IsUnread():
			k.Unread++
			if b.Status == entities.StatusReading {
				k.Reading++
			}
		}
	}

	k.AvgRating = ratio(ratingSum, rated)
	k.AvgScore = ratio(scoreSum, k.Total)
	k.ReadPercentage = ratio(k.Read*100, k.Total)
	k.GoalProgress = ratio(k.ReadThisYear*100, goal)
	return k
}

func ratio(num, den int) float64 {
	if den <= 0 {
		return 0
	}
	return float64(num) / float64(den)
}
