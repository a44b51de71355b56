package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AuditRecord is one persisted analysis report. History is retrieval
// only; no aggregation happens over stored audits.
type AuditRecord struct {
	ID         string    `json:"id" db:"id"`
	Input      string    `json:"input" db:"input"`
	FinalURL   string    `json:"final_url" db:"final_url"`
	Platform   string    `json:"platform" db:"platform"`
	TotalScore *int      `json:"total_score,omitempty" db:"total_score"`
	Report     JSONB     `json:"report" db:"report"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// JSONB maps arbitrary JSON documents to a PostgreSQL jsonb column.
type JSONB json.RawMessage

func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return []byte(j), nil
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
		return nil
	case string:
		*j = JSONB(v)
		return nil
	}
	return fmt.Errorf("unsupported jsonb source type %T", value)
}

func (j JSONB) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return []byte(j), nil
}

func (j *JSONB) UnmarshalJSON(data []byte) error {
	*j = append((*j)[0:0], data...)
	return nil
}
