package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/gorm"
)

// findProjectRoot looks for go.mod file to determine project root
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// constructDBURL creates the database URL from environment variables
func constructDBURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)
}

// enumDefinitions maps each Postgres enum type used by the models to
// its allowed values
var enumDefinitions = []struct {
	name   string
	values []string
}{
	{"comment_platform", []string{"instagram", "youtube", "facebook", "tiktok"}},
	{"comment_status", []string{"pending", "replied", "ignored", "escalated"}},
	{"reply_tone", []string{"hype", "funny", "formal", "polite", "angry", "savage", "roasting"}},
	{"reply_status", []string{"pending", "sent", "failed"}},
	{"reply_origin", []string{"ai", "human"}},
}

// ensureEnumTypes creates any missing Postgres enum types
func ensureEnumTypes(db *gorm.DB) error {
	for _, def := range enumDefinitions {
		var exists bool
		err := db.Raw(`
			SELECT EXISTS (
				SELECT 1 FROM pg_type
				WHERE typname = ?
			);
		`, def.name).Scan(&exists).Error
		if err != nil {
			return err
		}

		if exists {
			continue
		}

		quoted := make([]string, len(def.values))
		for i, v := range def.values {
			quoted[i] = "'" + v + "'"
		}

		stmt := fmt.Sprintf("CREATE TYPE %s AS ENUM (%s);", def.name, strings.Join(quoted, ", "))
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create enum %s: %w", def.name, err)
		}
	}

	return nil
}
