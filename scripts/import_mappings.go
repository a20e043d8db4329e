// Bulk-import official question mappings.
//
// Reads a JSON array of mapping rows and upserts them into the
// official_question_mappings table. Intended for loading a new official test's
// answer key after the canonical questions have been authored.
//
// Usage: go run scripts/import_mappings.go mappings.json
package main

import (
	"encoding/json"
	"log"
	"os"
	"sat_tutor_backend/internal/config"
	"sat_tutor_backend/internal/model"
	"sat_tutor_backend/pkg/database"
	"sat_tutor_backend/pkg/logger"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm/clause"
)

type mappingRow struct {
	OfficialTestID      string `json:"officialTestId"`
	Section             string `json:"section"`
	QuestionNumber      int    `json:"questionNumber"`
	CanonicalQuestionID string `json:"canonicalQuestionId"`
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: go run scripts/import_mappings.go <mappings.json>")
	}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("failed to parse config file: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	payload, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("failed to read mappings file: %v", err)
	}

	var rows []mappingRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		log.Fatalf("failed to parse mappings file: %v", err)
	}

	imported := 0
	for _, row := range rows {
		if row.OfficialTestID == "" || row.Section == "" || row.QuestionNumber < 1 || row.CanonicalQuestionID == "" {
			log.Printf("skipping invalid row: %+v", row)
			continue
		}

		var count int64
		db.Model(&model.CanonicalQuestion{}).Where("id = ?", row.CanonicalQuestionID).Count(&count)
		if count == 0 {
			log.Printf("skipping %s/%s/%d: canonical question %s does not exist",
				row.OfficialTestID, row.Section, row.QuestionNumber, row.CanonicalQuestionID)
			continue
		}

		mapping := model.OfficialQuestionMapping{
			OfficialTestID:      row.OfficialTestID,
			Section:             row.Section,
			QuestionNumber:      row.QuestionNumber,
			CanonicalQuestionID: row.CanonicalQuestionID,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "official_test_id"}, {Name: "section"}, {Name: "question_number"}},
			DoUpdates: clause.AssignmentColumns([]string{"canonical_question_id"}),
		}).Create(&mapping).Error
		if err != nil {
			log.Printf("failed to import %s/%s/%d: %v", row.OfficialTestID, row.Section, row.QuestionNumber, err)
			continue
		}
		imported++
	}

	log.Printf("imported %d of %d mappings", imported, len(rows))
}
