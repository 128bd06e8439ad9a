package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/ga-dictionary/api-server-go/models"
	apierrors "github.com/ga-dictionary/api-server-go/pkg/errors"
)

// WordService handles read access to dictionary entries. Entries are only
// ever written through an accepted contribution.
type WordService struct {
	db *gorm.DB
}

// NewWordService creates a new word service
func NewWordService(db *gorm.DB) *WordService {
	return &WordService{db: db}
}

// GetWord retrieves an entry by ID
func (s *WordService) GetWord(ctx context.Context, wordID string) (*models.WordResponse, error) {
	var word models.Word
	if err := s.db.WithContext(ctx).First(&word, "word_id = ?", wordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFoundError("word")
		}
		return nil, apierrors.DatabaseError("fetch word", err)
	}
	return models.NewWordResponse(&word), nil
}

// GetWords lists entries with optional case-insensitive search over headword
// and meaning, paginated
func (s *WordService) GetWords(ctx context.Context, search string, page, pageSize int) (*models.WordListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = models.DefaultPageSize
	}
	if pageSize > models.MaxPageSize {
		pageSize = models.MaxPageSize
	}

	query := s.db.WithContext(ctx).Model(&models.Word{})
	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(word) LIKE ? OR LOWER(meaning) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apierrors.DatabaseError("count words", err)
	}

	var words []models.Word
	err := query.Order("word ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&words).Error
	if err != nil {
		return nil, apierrors.DatabaseError("fetch words", err)
	}

	responses := make([]models.WordResponse, 0, len(words))
	for i := range words {
		responses = append(responses, *models.NewWordResponse(&words[i]))
	}

	return &models.WordListResponse{
		Words:    responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
