package scoring

import (
	"cmp"
	"math"
	"slices"

	"github.com/mrlokans/bookstack/internal/entities"
)

// ScoreChange is a book whose stored score differs from its computed one.
type ScoreChange struct {
	BookID   uint `json:"book_id"`
	OldScore int  `json:"old_score"`
	NewScore int  `json:"new_score"`
}

// Recompute scores every book under cfg. Read books are no longer ranked and
// get 0. Only books whose score changes are returned, in input order.
func Recompute(books []entities.Book, cfg FormulaConfig) []ScoreChange {
	var changes []ScoreChange
	for i := range books {
		next := 0
		if !books[i].IsRead() {
			next = ComputeScore(books[i], cfg)
		}
		if next != books[i].Score {
			changes = append(changes, ScoreChange{
				BookID:   books[i].ID,
				OldScore: books[i].Score,
				NewScore: next,
			})
		}
	}
	return changes
}

// Quartiles holds the average score of each quarter of the to-read list,
// Q1 being the top of the stack.
type Quartiles struct {
	Q1    float64 `json:"q1"`
	Q2    float64 `json:"q2"`
	Q3    float64 `json:"q3"`
	Q4    float64 `json:"q4"`
	Total int     `json:"total"`
}

// ToReadQuartiles splits the to-read books, ordered by their list position,
// into four quarters and averages the stored score of each, rounded to one
// decimal. Books without a position go last, ties break on id.
func ToReadQuartiles(books []entities.Book) Quartiles {
	var toRead []entities.Book
	for _, b := range books {
		if b.Status == entities.StatusToRead {
			toRead = append(toRead, b)
		}
	}
	if len(toRead) == 0 {
		return Quartiles{}
	}

	slices.SortStableFunc(toRead, func(a, b entities.Book) int {
		switch {
		case a.Order == nil && b.Order == nil:
			return cmp.Compare(a.ID, b.ID)
		case a.Order == nil:
			return 1
		case b.Order == nil:
			return -1
		}
		if c := cmp.Compare(*a.Order, *b.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	total := len(toRead)
	size := float64(total) / 4
	avg := func(from, to float64) float64 {
		start, end := int(from), int(to)
		if start >= total {
			return 0
		}
		if end <= start {
			end = start + 1
		}
		sum := 0
		for _, b := range toRead[start:end] {
			sum += b.Score
		}
		return math.Round(float64(sum)/float64(end-start)*10) / 10
	}

	return Quartiles{
		Q1:    avg(0, size),
		Q2:    avg(size, size*2),
		Q3:    avg(size*2, size*3),
		Q4:    avg(size*3, float64(total)),
		Total: total,
	}
}
