package integrity

import (
	"math"
	"sort"

	"github.com/mrlokans/bookstack/internal/entities"
)

// IssueType classifies a finding.
type IssueType string

const (
	IssueClass        IssueType = "class"
	IssueCategory     IssueType = "category"
	IssueAvailability IssueType = "availability"
	IssueDuplicate    IssueType = "duplicate"
)

// ParseIssueType accepts the four issue type names.
func ParseIssueType(s string) (IssueType, bool) {
	switch t := IssueType(s); t {
	case IssueClass, IssueCategory, IssueAvailability, IssueDuplicate:
		return t, true
	}
	return "", false
}

// Finding is one inconsistency of one book. Findings are recomputed on
// every audit and never stored.
type Finding struct {
	BookID    uint      `json:"book_id"`
	Title     string    `json:"title"`
	IssueType IssueType `json:"issue_type"`
	Reason    string    `json:"reason"`
	// Value is the offending class, category or availability.
	Value string `json:"value,omitempty"`

	// Set on duplicate findings only.
	DuplicateOf uint    `json:"duplicate_of,omitempty"`
	Similarity  float64 `json:"similarity,omitempty"`
	Distance    int     `json:"distance,omitempty"`
}

// Filter keeps findings of the given type and reason. Empty arguments match
// everything.
func Filter(findings []Finding, issueType IssueType, reason string) []Finding {
	out := make([]Finding, 0, len(findings))
	for _, f := range findings {
		if issueType != "" && f.IssueType != issueType {
			continue
		}
		if reason != "" && f.Reason != reason {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Group aggregates findings that share a reason, so that they can be fixed
// in bulk.
type Group struct {
	Reason    string    `json:"reason"`
	IssueType IssueType `json:"issue_type"`
	Count     int       `json:"count"`
	BookIDs   []uint    `json:"book_ids"`
}

// GroupByReason groups findings by reason, largest group first, then by
// reason.
func GroupByReason(findings []Finding) []Group {
	index := map[string]int{}
	var groups []Group
	for _, f := range findings {
		i, ok := index[f.Reason]
		if !ok {
			i = len(groups)
			index[f.Reason] = i
			groups = append(groups, Group{Reason: f.Reason, IssueType: f.IssueType})
		}
		groups[i].Count++
		groups[i].BookIDs = append(groups[i].BookIDs, f.BookID)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Reason < groups[j].Reason
	})
	if groups == nil {
		groups = []Group{}
	}
	return groups
}

// Summary is the headline of an audit run.
type Summary struct {
	TotalBooks       int               `json:"total_books"`
	TotalFindings    int               `json:"total_findings"`
	AffectedBooks    int               `json:"affected_books"`
	ByType           map[IssueType]int `json:"by_type"`
	HealthPercentage float64           `json:"health_percentage"`
	ProblemClasses   []string          `json:"problem_classes"`
}

// Summarize counts findings per type and the share of books without any
// finding, rounded to one decimal. ProblemClasses lists the distinct
// undefined classes, sorted.
func Summarize(books []entities.Book, findings []Finding) Summary {
	totalBooks := len(books)
	s := Summary{
		TotalBooks:    totalBooks,
		TotalFindings: len(findings),
		ByType: map[IssueType]int{
			IssueClass:        0,
			IssueCategory:     0,
			IssueAvailability: 0,
			IssueDuplicate:    0,
		},
		ProblemClasses: []string{},
	}

	affected := map[uint]struct{}{}
	classes := map[string]struct{}{}
	for _, f := range findings {
		s.ByType[f.IssueType]++
		affected[f.BookID] = struct{}{}
		if f.IssueType == IssueClass {
			if _, seen := classes[f.Value]; !seen {
				classes[f.Value] = struct{}{}
				s.ProblemClasses = append(s.ProblemClasses, f.Value)
			}
		}
	}
	s.AffectedBooks = len(affected)
	sort.Strings(s.ProblemClasses)

	if totalBooks > 0 {
		healthy := float64(totalBooks-s.AffectedBooks) / float64(totalBooks) * 100
		s.HealthPercentage = math.Round(healthy*10) / 10
	}
	return s
}
