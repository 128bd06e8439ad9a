package services

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ga-dictionary/api-server-go/models"
	"github.com/ga-dictionary/api-server-go/pkg/database"
)

// setupTestDB opens an in-memory SQLite database with the full schema,
// including the partial unique index on open flags. A single connection is
// forced so the pool cannot silently hand out a second, empty memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// createTestUser inserts a user with the given role and returns its principal
func createTestUser(t *testing.T, db *gorm.DB, role models.Role) *models.Principal {
	t.Helper()

	user := models.User{
		UserID:    "usr_" + uuid.New().String(),
		IdpUserID: "idp_" + uuid.New().String(),
		Email:     "test@example.com",
		Name:      "Test User",
		Role:      role,
	}
	require.NoError(t, db.Create(&user).Error)
	return models.NewPrincipal(&user)
}

// createTestWord inserts a dictionary entry. Empty phoneme means no phoneme.
func createTestWord(t *testing.T, db *gorm.DB, text, phoneme, meaning string) *models.Word {
	t.Helper()

	word := models.Word{
		WordID:  "word_" + uuid.New().String(),
		Word:    text,
		Meaning: meaning,
	}
	if phoneme != "" {
		word.Phoneme = models.StringPtr(phoneme)
	}
	word.CompletionStatus = word.ComputeCompletionStatus()
	require.NoError(t, db.Create(&word).Error)
	return &word
}

// mockRoundTripper returns a canned response or error for every request
type mockRoundTripper struct {
	Response *http.Response
	Err      error
}

func (m *mockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}
