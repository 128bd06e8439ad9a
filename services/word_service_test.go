package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ga-dictionary/api-server-go/models"
	apierrors "github.com/ga-dictionary/api-server-go/pkg/errors"
)

func TestGetWord(t *testing.T) {
	db := setupTestDB(t)
	service := NewWordService(db)

	word := createTestWord(t, db, "ataa", "ataa", "father")

	response, err := service.GetWord(context.Background(), word.WordID)
	require.NoError(t, err)
	assert.Equal(t, "ataa", response.Word)
	assert.Equal(t, models.CompletionStatusComplete, response.CompletionStatus)

	_, err = service.GetWord(context.Background(), "word_missing")
	assert.True(t, apierrors.IsType(err, apierrors.ErrorTypeNotFound))
}

func TestGetWords(t *testing.T) {
	db := setupTestDB(t)
	service := NewWordService(db)

	createTestWord(t, db, "akwaaba", "akʷaaba", "welcome")
	createTestWord(t, db, "shika", "", "money")
	createTestWord(t, db, "ataa", "", "father")

	t.Run("lists all entries alphabetically", func(t *testing.T) {
		response, err := service.GetWords(context.Background(), "", 1, 20)
		require.NoError(t, err)
		assert.EqualValues(t, 3, response.Total)
		require.Len(t, response.Words, 3)
		assert.Equal(t, "akwaaba", response.Words[0].Word)
	})

	t.Run("search matches headword and meaning", func(t *testing.T) {
		byWord, err := service.GetWords(context.Background(), "SHIKA", 1, 20)
		require.NoError(t, err)
		require.Len(t, byWord.Words, 1)
		assert.Equal(t, "shika", byWord.Words[0].Word)

		byMeaning, err := service.GetWords(context.Background(), "father", 1, 20)
		require.NoError(t, err)
		require.Len(t, byMeaning.Words, 1)
		assert.Equal(t, "ataa", byMeaning.Words[0].Word)
	})

	t.Run("paginates with a stable total", func(t *testing.T) {
		first, err := service.GetWords(context.Background(), "", 1, 2)
		require.NoError(t, err)
		assert.EqualValues(t, 3, first.Total)
		assert.Len(t, first.Words, 2)

		second, err := service.GetWords(context.Background(), "", 2, 2)
		require.NoError(t, err)
		assert.Len(t, second.Words, 1)
	})

	t.Run("clamps out-of-range paging parameters", func(t *testing.T) {
		response, err := service.GetWords(context.Background(), "", -3, models.MaxPageSize+50)
		require.NoError(t, err)
		assert.Equal(t, 1, response.Page)
		assert.Equal(t, models.MaxPageSize, response.PageSize)
	})
}

// A failing store surfaces as a database error, not a panic or a silent nil
func TestGetWordDatabaseError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "words"`).WillReturnError(fmt.Errorf("connection reset"))

	service := NewWordService(db)
	_, err = service.GetWord(context.Background(), "word_x")
	assert.True(t, apierrors.IsType(err, apierrors.ErrorTypeDatabase))
	assert.NoError(t, mock.ExpectationsWereMet())
}
