package controller

import (
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"pageant/auth"
	"pageant/config"
	"pageant/repository"

	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}

	err = pool.Client.Ping()
	if err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	resource, err := pool.Run("postgres", "17.2-alpine", []string{"POSTGRES_USER=postgres", "POSTGRES_PASSWORD=postgres", "DATABASE_NAME=postgres"})
	if err != nil {
		log.Fatalf("Could not start resource: %s", err)
	}
	resource.Expire(600) // Tell docker to hard kill the container in 10 minutes

	// the controllers connect through the environment-driven singleton
	os.Setenv("DATABASE_HOST", "localhost")
	os.Setenv("DATABASE_PORT", resource.GetPort("5432/tcp"))
	os.Setenv("POSTGRES_USER", "postgres")
	os.Setenv("POSTGRES_PASSWORD", "postgres")
	os.Setenv("DATABASE_NAME", "postgres")

	// probe with a throwaway connection so the shared singleton only
	// ever sees a ready database
	dsn := fmt.Sprintf(
		"host=localhost port=%s user=postgres password=postgres dbname=postgres sslmode=disable",
		resource.GetPort("5432/tcp"))
	if err := pool.Retry(func() error {
		probe, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return err
		}
		sqlDB, err := probe.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()
		return sqlDB.Ping()
	}); err != nil {
		log.Fatalf("Could not connect to database: %s", err)
	}
	if err := repository.AutoMigrate(); err != nil {
		log.Fatalf("Could not migrate database: %s", err)
	}

	defer func() {
		if err := pool.Purge(resource); err != nil {
			log.Fatalf("Could not purge resource: %s", err)
		}
	}()
	m.Run()
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetRoutes(r, persistence.NewInMemoryStore(time.Minute))
	return r
}

func TestGetEventRedactsJudgeAccessCodes(t *testing.T) {
	db := config.DatabaseConnection()
	event := &repository.Event{
		Name:         fmt.Sprintf("Pageant %d", time.Now().UnixNano()),
		Date:         time.Now(),
		Status:       repository.EventStatusActive,
		CurrentPhase: repository.PhasePreliminary,
	}
	assert.NoError(t, db.Create(event).Error)
	judge := &repository.Judge{EventId: event.Id, Number: 1, Name: "Panel Judge", AccessCode: "judge-access-7742"}
	assert.NoError(t, db.Create(judge).Error)

	token, err := auth.CreateJudgeToken(judge)
	assert.NoError(t, err)

	r := newTestEngine()
	req := httptest.NewRequest("GET", fmt.Sprintf("/events/%d", event.Id), nil)
	req.AddCookie(&http.Cookie{Name: "auth", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "Panel Judge")
	assert.NotContains(t, w.Body.String(), "judge-access-7742")
}
