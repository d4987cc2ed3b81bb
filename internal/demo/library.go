// Package demo provides a sample library for trying the dashboard without
// importing real data, and the read-only guard used when it is served
// publicly.
package demo

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookstack/internal/database/books"
	"github.com/mrlokans/bookstack/internal/entities"
)

func intPtr(v int) *int { return &v }

func ratingPtr(v float64) *float64 { return &v }

// Books returns the sample library owned by userID. A few entries carry
// deliberate metadata problems so that the integrity report has content.
func Books(userID uint) []entities.Book {
	list := []entities.Book{
		// Reading list, in priority order
		{Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", Year: intPtr(2017),
			Type: entities.TypeTechnical, Priority: entities.PriorityHigh, Status: entities.StatusToRead,
			BookClass: "Engenharia & Arquitetura", Category: "Engenharia de Dados", Availability: "Físico",
			Order: intPtr(1), GoogleRating: ratingPtr(4.7)},
		{Title: "Hands-On Machine Learning", Author: "Aurélien Géron", Year: intPtr(2022),
			Type: entities.TypeTechnical, Priority: entities.PriorityHigh, Status: entities.StatusToRead,
			BookClass: "Tecnologia & IA", Category: "Machine Learning", Availability: "Virtual",
			Order: intPtr(2), GoogleRating: ratingPtr(4.6)},
		{Title: "Inteligência Emocional", Author: "Daniel Goleman", Year: intPtr(1995),
			Type: entities.TypeNonTechnical, Priority: entities.PriorityMediumHigh, Status: entities.StatusToRead,
			BookClass: "Desenvolvimento Pessoal", Category: "Inteligência Emocional", Availability: "Físico",
			Order: intPtr(3)},
		{Title: "Pai Rico, Pai Pobre", Author: "Robert Kiyosaki", Year: intPtr(1997),
			Type: entities.TypeNonTechnical, Priority: entities.PriorityMedium, Status: entities.StatusToRead,
			BookClass: "Negócios & Finanças", Category: "Finanças Pessoais", Availability: "Desejado",
			Order: intPtr(4)},
		{Title: "Uma Breve História do Tempo", Author: "Stephen Hawking", Year: intPtr(1988),
			Type: entities.TypeNonTechnical, Priority: entities.PriorityMedium, Status: entities.StatusToRead,
			BookClass: "Conhecimento & Ciências", Category: "Cosmologia", Availability: "Emprestado",
			Order: intPtr(5)},
		{Title: "Fundamentals of Software Architecture", Author: "Mark Richards", Year: intPtr(2020),
			Type: entities.TypeTechnical, Priority: entities.PriorityLow, Status: entities.StatusToRead,
			BookClass: "Engenharia & Arquitetura", Category: "Arquitetura de Software", Availability: "Kindle",
			Order: intPtr(6)},
		{Title: "O Cortiço", Author: "Aluísio Azevedo", Year: intPtr(1890),
			Type: entities.TypeNonTechnical, Priority: entities.PriorityLow, Status: entities.StatusToRead,
			BookClass: "Literatura & Cultura", Category: "Literatura Brasileira", Availability: "N/A"},

		// In progress
		{Title: "Storytelling com Dados", Author: "Cole Nussbaumer Knaflic", Year: intPtr(2015),
			Type: entities.TypeTechnical, Priority: entities.PriorityMediumHigh, Status: entities.StatusReading,
			BookClass: "Tecnologia & IA", Category: "Análise de Dados", Availability: "Físico"},
		{Title: "Essencialismo", Author: "Greg McKeown", Year: intPtr(2014),
			Type: entities.TypeNonTechnical, Priority: entities.PriorityMedium, Status: entities.StatusReading,
			BookClass: "Desenvolvimento Pessoal", Category: "Produtividade", Availability: "Virtual"},

		// Finished
		{Title: "Sapiens", Author: "Yuval Noah Harari", Year: intPtr(2011),
			Type: entities.TypeNonTechnical, Priority: entities.PriorityDone, Status: entities.StatusRead,
			BookClass: "Conhecimento & Ciências", Category: "Conhecimento Geral", Availability: "Físico",
			DateRead: "2023-01-22", Rating: intPtr(5)},
		{Title: "Homo Deus", Author: "Yuval Noah Harari", Year: intPtr(2015),
			Type: entities.TypeNonTechnical, Priority: entities.PriorityDone, Status: entities.StatusRead,
			BookClass: "Conhecimento & Ciências", Category: "Conhecimento Geral", Availability: "Físico",
			DateRead: "2023-04-03", Rating: intPtr(4)},
		{Title: "Clean Code", Author: "Robert C. Martin", Year: intPtr(2008),
			Type: entities.TypeTechnical, Priority: entities.PriorityDone, Status: entities.StatusRead,
			BookClass: "Tecnologia & IA", Category: "Programação", Availability: "Físico",
			DateRead: "2023-04-28", Rating: intPtr(4)},
		{Title: "Clean code", Author: "Robert C. Martin", Year: intPtr(2008),
			Type: entities.TypeTechnical, Priority: entities.PriorityDone, Status: entities.StatusRead,
			BookClass: "Tecnologia & IA", Category: "Programação", Availability: "Virtual",
			DateRead: "2023-05-30"},
		{Title: "Dom Casmurro", Author: "Machado de Assis", Year: intPtr(1899),
			Type: entities.TypeNonTechnical, Priority: entities.PriorityDone, Status: entities.StatusRead,
			BookClass: "Literatura & Cultura", Category: "Literatura Brasileira", Availability: "Físico",
			DateRead: "2023-09-14", Rating: intPtr(5)},
		{Title: "Memórias Póstumas de Brás Cubas", Author: "Machado de Assis", Year: intPtr(1881),
			Type: entities.TypeNonTechnical, Priority: entities.PriorityDone, Status: entities.StatusRead,
			BookClass: "Literatura & Cultura", Category: "Literatura Brasileira", Availability: "Virtual",
			DateRead: "2024-02-02", Rating: intPtr(5)},
		{Title: "The Pragmatic Programmer", Author: "Andrew Hunt", Year: intPtr(2019),
			Type: entities.TypeTechnical, Priority: entities.PriorityDone, Status: entities.StatusRead,
			BookClass: "Tecnologia & IA", Category: "Programação", Availability: "Físico",
			DateRead: "2024-03-18", Rating: intPtr(4)},
		{Title: "Como Fazer Amigos e Influenciar Pessoas", Author: "Dale Carnegie", Year: intPtr(1936),
			Type: entities.TypeNonTechnical, Priority: entities.PriorityDone, Status: entities.StatusRead,
			BookClass: "Desenvolvimento Pessoal", Category: "Comunicação", Availability: "Emprestado",
			DateRead: "2024-06-09", Rating: intPtr(3)},
		{Title: "Estatística Prática para Cientistas de Dados", Author: "Peter Bruce", Year: intPtr(2019),
			Type: entities.TypeTechnical, Priority: entities.PriorityDone, Status: entities.StatusRead,
			BookClass: "Conhecimento & Ciências", Category: "Estatística", Availability: "Virtual",
			DateRead: "2024-08-25", Rating: intPtr(4)},
		{Title: "A Psicologia Financeira", Author: "Morgan Housel", Year: intPtr(2020),
			Type: entities.TypeNonTechnical, Priority: entities.PriorityDone, Status: entities.StatusRead,
			BookClass: "Negócios & Finanças", Category: "Finanças Pessoais", Availability: "Físico",
			DateRead: "2024-11-30", Rating: intPtr(5)},
		{Title: "Building LLM Applications", Author: "Valentina Alto", Year: intPtr(2024),
			Type: entities.TypeTechnical, Priority: entities.PriorityDone, Status: entities.StatusRead,
			BookClass: "Tecnologia & IA", Category: "LLMs", Availability: "Virtual",
			DateRead: "2025-01-12", Rating: intPtr(4)},
		{Title: "Cosmos", Author: "Carl Sagan", Year: intPtr(1980),
			Type: entities.TypeNonTechnical, Priority: entities.PriorityDone, Status: entities.StatusRead,
			BookClass: "Ciências", Category: "Cosmologia", Availability: "Físico",
			DateRead: "2025-03-07", Rating: intPtr(5)},
	}
	for i := range list {
		list[i].UserID = userID
	}
	return list
}

// Seed inserts the sample library for userID, replacing any books the user
// already has. Scores are left at zero; callers rescore afterwards.
func Seed(db *gorm.DB, userID uint) (int, error) {
	list := Books(userID)
	err := db.Transaction(func(tx *gorm.DB) error {
		repo := books.NewRepository(tx)
		if _, err := repo.DeleteForUser(userID); err != nil {
			return err
		}
		return repo.Create(list)
	})
	if err != nil {
		return 0, fmt.Errorf("seed demo library: %w", err)
	}
	return len(list), nil
}
