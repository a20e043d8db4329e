package database

import (
	"fmt"
	"log"
	"sat_tutor_backend/internal/config"
	"sat_tutor_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")

		seedDefaults(db)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.OfficialTest{},
		&model.CanonicalQuestion{},
		&model.QuestionOption{},
		&model.OfficialQuestionMapping{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.AnswerResult{},
		&model.UserSkillMastery{},
		&model.VideoLesson{},
	)
}

// seedDefaults inserts a minimal content set when the relevant tables are empty so
// the mistake form and remediation flow work on a fresh install.
func seedDefaults(db *gorm.DB) {
	var testCount int64
	db.Model(&model.OfficialTest{}).Count(&testCount)
	if testCount == 0 {
		defaultTests := []model.OfficialTest{
			{ID: "sat-practice-1", Name: "SAT Practice Test 1", Description: "College Board official practice test 1", Enabled: true},
			{ID: "sat-practice-2", Name: "SAT Practice Test 2", Description: "College Board official practice test 2", Enabled: true},
			{ID: "psat-practice-1", Name: "PSAT/NMSQT Practice Test 1", Description: "College Board official PSAT practice test 1", Enabled: true},
		}
		for _, t := range defaultTests {
			db.Create(&t)
		}
	}

	var qCount int64
	db.Model(&model.CanonicalQuestion{}).Count(&qCount)
	if qCount == 0 {
		seedQuestionBank(db)
	}
}

type seedQuestion struct {
	text       string
	conceptTag string
	videoURL   string
	pdfURL     string
	options    [4]string
	correct    int // index into options
	mapping    *model.OfficialQuestionMapping
}

func seedQuestionBank(db *gorm.DB) {
	questions := []seedQuestion{
		{
			text:       "If x^2 - 5x + 6 = 0, what is the sum of all solutions?",
			conceptTag: "quadratics",
			videoURL:   "https://videos.sat-tutor.io/quadratics-intro.mp4",
			pdfURL:     "https://files.sat-tutor.io/quadratics-worksheet.pdf",
			options:    [4]string{"2", "3", "5", "6"},
			correct:    2,
			mapping:    &model.OfficialQuestionMapping{OfficialTestID: "sat-practice-1", Section: "Math", QuestionNumber: 5},
		},
		{
			text:       "Which value of x satisfies (x - 3)^2 = 16?",
			conceptTag: "quadratics",
			videoURL:   "https://videos.sat-tutor.io/quadratics-intro.mp4",
			options:    [4]string{"-7", "-1", "5", "7"},
			correct:    3,
			mapping:    &model.OfficialQuestionMapping{OfficialTestID: "sat-practice-1", Section: "Math", QuestionNumber: 12},
		},
		{
			text:       "If f(x) = x^2 + 2x, for how many real values of x does f(x) = -1?",
			conceptTag: "quadratics",
			options:    [4]string{"0", "1", "2", "4"},
			correct:    1,
		},
		{
			text:       "The product of the roots of x^2 + 4x - 21 = 0 is:",
			conceptTag: "quadratics",
			options:    [4]string{"-21", "-4", "4", "21"},
			correct:    0,
		},
		{
			text:       "A line passes through (0, 3) and (2, 7). What is its slope?",
			conceptTag: "linear-equations",
			videoURL:   "https://videos.sat-tutor.io/linear-equations.mp4",
			options:    [4]string{"1", "2", "3", "4"},
			correct:    1,
			mapping:    &model.OfficialQuestionMapping{OfficialTestID: "sat-practice-1", Section: "Math", QuestionNumber: 3},
		},
		{
			text:       "Which choice best maintains the tone established in the passage?",
			conceptTag: "rhetorical-synthesis",
			options:    [4]string{"NO CHANGE", "totally bogus", "decidedly unsound", "kind of off"},
			correct:    2,
			mapping:    &model.OfficialQuestionMapping{OfficialTestID: "sat-practice-1", Section: "Reading and Writing", QuestionNumber: 18},
		},
	}

	labels := [4]string{"A", "B", "C", "D"}
	for _, sq := range questions {
		q := model.CanonicalQuestion{
			Text:       sq.text,
			ConceptTag: sq.conceptTag,
			VideoURL:   sq.videoURL,
			PDFURL:     sq.pdfURL,
		}
		q.ID = model.GenerateUUID()
		for i, text := range sq.options {
			opt := model.QuestionOption{
				QuestionID: q.ID,
				Label:      labels[i],
				Text:       text,
				Order:      i + 1,
			}
			opt.ID = model.GenerateUUID()
			if i == sq.correct {
				q.CorrectOptionID = opt.ID
			}
			q.Options = append(q.Options, opt)
		}
		db.Create(&q)

		if sq.mapping != nil {
			sq.mapping.CanonicalQuestionID = q.ID
			db.Create(sq.mapping)
		}
	}
}
