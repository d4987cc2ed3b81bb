package entities

import (
	"time"
)

type Status string

const (
	StatusToRead  Status = "A Ler"
	StatusReading Status = "Lendo"
	StatusRead    Status = "Lido"
)

type BookType string

const (
	TypeTechnical    BookType = "Técnico"
	TypeNonTechnical BookType = "Não Técnico"
)

type Priority string

const (
	PriorityLow        Priority = "1 - Baixa"
	PriorityMedium     Priority = "2 - Média"
	PriorityMediumHigh Priority = "3 - Média-Alta"
	PriorityHigh       Priority = "4 - Alta"
	PriorityDone       Priority = "Concluído" // assigned when a book is marked read
)

// Book is a single entry of a user's personal library.
// Optional fields are pointers so that "absent" and "zero" stay distinguishable.
type Book struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	UserID        uint     `gorm:"index" json:"user_id"`
	Title         string   `gorm:"index;size:512" json:"title"`
	OriginalTitle string   `gorm:"size:512" json:"original_title,omitempty"`
	Author        string   `gorm:"index;size:256" json:"author"`
	Year          *int     `json:"year,omitempty"`
	Type          BookType `gorm:"size:32" json:"type"`
	Priority      Priority `gorm:"size:32" json:"priority"`
	Status        Status   `gorm:"index;size:16" json:"status"`
	Availability  string   `gorm:"size:64" json:"availability"`
	BookClass     string   `gorm:"size:128" json:"book_class"`
	Category      string   `gorm:"size:128" json:"category"`
	Order         *int     `gorm:"column:sort_order" json:"order,omitempty"`
	Rating        *int     `json:"rating,omitempty"`
	GoogleRating  *float64 `json:"google_rating,omitempty"`
	DateRead      string   `gorm:"size:32" json:"date_read,omitempty"` // ISO date, may be empty or malformed
	Score         int      `json:"score"`
	Motivation    string   `gorm:"type:text" json:"motivation,omitempty"`
	CoverURL      string   `gorm:"size:2048" json:"cover_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// IsRead reports whether the book has been finished.
func (b Book) IsRead() bool {
	return b.Status == StatusRead
}

// IsUnread reports whether the book is still on the to-read or reading list.
func (b Book) IsUnread() bool {
	return b.Status == StatusToRead || b.Status == StatusReading
}
