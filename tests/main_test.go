package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"examportal/backend/config"
	"examportal/backend/models"
	"examportal/backend/routes"
	"examportal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	app      *fiber.App
	db       *gorm.DB
	cfg      *config.Config
	testUser models.User
	jwtToken string

	// seeded catalog rows shared by the suite
	seedCategory models.ExamCategory
	seedSubject  models.Subject
	seedExam     models.UpcomingExam
)

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	teardown()
	os.Exit(code)
}

func setup() {
	cfg = &config.Config{
		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     envOr("DB_USER", "postgres"),
		DBPassword: envOr("DB_PASSWORD", "postgres"),
		DBName:     envOr("TEST_DB_NAME", "examportal_test"),
		JWTSecret:  "testsecret",
		ServerPort: "8080",
	}

	var err error
	db, err = utils.InitDB(cfg)
	if err != nil {
		panic(err)
	}
	if err := utils.Migrate(db); err != nil {
		panic(err)
	}

	app = fiber.New()
	routes.SetupRoutes(app, db, cfg)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	testUser = models.User{
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: string(hash),
	}
	db.Create(&testUser)

	jwtToken, err = utils.GenerateJWTToken(testUser.ID, cfg)
	if err != nil {
		panic(err)
	}

	seedCatalog()
}

func seedCatalog() {
	seedCategory = models.ExamCategory{Name: "Banking Exams", Description: "All banking exams"}
	db.Create(&seedCategory)

	seedSubject = models.Subject{ExamCategoryID: seedCategory.ID, Name: "Quantitative Aptitude"}
	db.Create(&seedSubject)

	examDate := time.Now().AddDate(0, 3, 0)
	seedExam = models.UpcomingExam{
		ExamCategoryID:   seedCategory.ID,
		Title:            "Bank PO Prelims",
		ApplicationStart: time.Now().AddDate(0, 0, -10),
		ApplicationEnd:   time.Now().AddDate(0, 1, 0),
		ExamDate:         &examDate,
		IsActive:         true,
	}
	db.Create(&seedExam)
}

func teardown() {
	db.Migrator().DropTable(
		&models.User{},
		&models.UserActivity{},
		&models.ExamCategory{},
		&models.Subject{},
		&models.Note{},
		&models.UpcomingExam{},
		&models.Announcement{},
		&models.AdmitCard{},
		&models.ExamResult{},
		&models.AnswerKey{},
		&models.Contact{},
		&models.SubjectProgress{},
		&models.NoteCompletion{},
		&models.StudySession{},
		&models.ExamTarget{},
	)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// doRequest runs a JSON request against the wired app and decodes the body
// into a generic map.
func doRequest(t *testing.T, method, path string, body interface{}, token string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, path, err)
	}

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return resp, result
}

// newUserToken registers a fresh user directly in the store and returns its
// id and token. Used where tests need isolation from the shared test user.
func newUserToken(t *testing.T, username string) (uint, string) {
	t.Helper()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	token, err := utils.GenerateJWTToken(user.ID, cfg)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return user.ID, token
}
