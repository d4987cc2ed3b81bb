package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstack/internal/entities"
	"github.com/mrlokans/bookstack/internal/scoring"
)

// BookLibrary is what the books endpoints need from the library service.
type BookLibrary interface {
	Books(userID uint) ([]entities.Book, error)
	ToReadStats(userID uint) (scoring.Quartiles, error)
	PreviewScore(userID uint, book entities.Book, formula *scoring.FormulaConfig) (scoring.Breakdown, error)
}

type BooksController struct {
	library BookLibrary
}

func NewBooksController(library BookLibrary) *BooksController {
	return &BooksController{
		library: library,
	}
}

// GetAllBooks handles GET /api/books. ?status= narrows the list.
func (controller *BooksController) GetAllBooks(c *gin.Context) {
	books, err := controller.library.Books(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	if status := c.Query("status"); status != "" {
		filtered := books[:0]
		for _, b := range books {
			if string(b.Status) == status {
				filtered = append(filtered, b)
			}
		}
		books = filtered
	}

	c.IndentedJSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

// GetToReadStats handles GET /api/books/stats/toread.
func (controller *BooksController) GetToReadStats(c *gin.Context) {
	stats, err := controller.library.ToReadStats(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "to-read stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// PreviewScoreRequest is the body of POST /api/books/preview-score.
// Formula is optional and overrides the stored one.
type PreviewScoreRequest struct {
	Book    entities.Book          `json:"book"`
	Formula *scoring.FormulaConfig `json:"formula"`
}

// PreviewScore handles POST /api/books/preview-score.
func (controller *BooksController) PreviewScore(c *gin.Context) {
	var req PreviewScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request: "+err.Error())
		return
	}

	breakdown, err := controller.library.PreviewScore(GetUserID(c), req.Book, req.Formula)
	if err != nil {
		respondServiceError(c, err, "preview score")
		return
	}
	c.JSON(http.StatusOK, breakdown)
}
