package models

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WordPayload carries the word fields a contribution proposes or snapshots.
// Nil fields are untouched by the contribution.
type WordPayload struct {
	Word         *string `json:"word,omitempty"`
	Phoneme      *string `json:"phoneme,omitempty"`
	Meaning      *string `json:"meaning,omitempty"`
	PartOfSpeech *string `json:"partOfSpeech,omitempty"`
	ExampleUsage *string `json:"exampleUsage,omitempty"`
}

// Scan implements the sql.Scanner interface for WordPayload
func (p *WordPayload) Scan(value interface{}) error {
	if value == nil {
		*p = WordPayload{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into WordPayload", value)
	}

	return json.Unmarshal(bytes, p)
}

// Value implements the driver.Valuer interface for WordPayload
func (p WordPayload) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// GormDataType gorm common data type
func (WordPayload) GormDataType() string {
	return "jsonb"
}

// GormValue implements the GormValuerInterface
func (p WordPayload) GormValue(ctx context.Context, db *gorm.DB) clause.Expr {
	data, err := json.Marshal(p)
	if err != nil {
		// A WordPayload is plain strings; marshaling cannot fail without
		// programmer error, and silently storing nothing would lose data.
		panic(fmt.Sprintf("failed to marshal WordPayload to JSON: %v", err))
	}

	// SQLite stores JSON as TEXT, PostgreSQL needs the jsonb cast
	sqlExpr := "?::jsonb"
	if db.Dialector.Name() == "sqlite" {
		sqlExpr = "?"
	}

	return clause.Expr{
		SQL:  sqlExpr,
		Vars: []interface{}{string(data)},
	}
}

// StringValue returns the pointed-to string or empty when nil
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}
