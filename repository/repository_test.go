package repository

import (
	"fmt"
	"log"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var db *gorm.DB

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}

	// uses pool to try to connect to Docker
	err = pool.Client.Ping()
	if err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	// pulls an image, creates a container based on it and runs it
	resource, err := pool.Run("postgres", "17.2-alpine", []string{"POSTGRES_USER=postgres", "POSTGRES_PASSWORD=postgres", "DATABASE_NAME=postgres"})
	if err != nil {
		log.Fatalf("Could not start resource: %s", err)
	}
	resource.Expire(600) // Tell docker to hard kill the container in 10 minutes
	sqlInfo := fmt.Sprintf(
		"host=localhost port=%s user=postgres password=postgres dbname=postgres sslmode=disable search_path=pageant",
		resource.GetPort("5432/tcp"))

	// exponential backoff-retry, because the application in the container might not be ready to accept connections yet
	if err := pool.Retry(func() error {
		var err error
		db, err = gorm.Open(postgres.Open(sqlInfo), &gorm.Config{
			NamingStrategy: schema.NamingStrategy{
				TablePrefix:   "pageant.",
				SingularTable: false,
			},
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return err
		}
		db.Exec(`CREATE SCHEMA IF NOT EXISTS pageant`)
		return db.AutoMigrate(
			&Event{},
			&Judge{},
			&Contestant{},
			&Criterion{},
			&Score{},
			&ManualFinalistSelection{},
		)
	}); err != nil {
		log.Fatalf("Could not connect to database: %s", err)
	}

	// as of go1.15 testing.M returns the exit code of m.Run(), so it is safe to use defer here
	defer func() {
		if err := pool.Purge(resource); err != nil {
			log.Fatalf("Could not purge resource: %s", err)
		}
	}()
	m.Run()
}

func createTestEvent(t *testing.T) *Event {
	event := &Event{
		Name:                fmt.Sprintf("Test Pageant %d", time.Now().UnixNano()),
		Date:                time.Now(),
		Status:              EventStatusActive,
		CurrentPhase:        PhasePreliminary,
		HasTwoPhases:        true,
		FinalistsCount:      3,
		TieBreakingStrategy: TieBreakIncludeTies,
	}
	assert.NoError(t, db.Create(event).Error)
	return event
}

func TestReplaceJudgeScoresIsAtomic(t *testing.T) {
	event := createTestEvent(t)
	judge := &Judge{EventId: event.Id, Number: 1, Name: "Judge", AccessCode: "code-1"}
	assert.NoError(t, db.Create(judge).Error)
	contestant := &Contestant{EventId: event.Id, Number: 1, Name: "Contestant"}
	assert.NoError(t, db.Create(contestant).Error)
	criterion := &Criterion{EventId: event.Id, Name: "Poise", Weight: 10, Phase: PhasePreliminary}
	assert.NoError(t, db.Create(criterion).Error)

	repo := &ScoreRepository{DB: db}
	err := repo.ReplaceJudgeScores(judge.Id, event.Id, PhasePreliminary, []*Score{
		{ContestantId: contestant.Id, CriterionId: criterion.Id, Value: 7},
	})
	assert.NoError(t, err)

	scores, err := repo.GetScoresForJudge(judge.Id, event.Id, PhasePreliminary)
	assert.NoError(t, err)
	assert.Len(t, scores, 1)
	assert.Equal(t, 7.0, scores[0].Value)
	assert.Equal(t, judge.Id, scores[0].JudgeId)
	assert.Equal(t, event.Id, scores[0].EventId)

	// a second submission replaces the sheet wholesale
	err = repo.ReplaceJudgeScores(judge.Id, event.Id, PhasePreliminary, []*Score{
		{ContestantId: contestant.Id, CriterionId: criterion.Id, Value: 9},
	})
	assert.NoError(t, err)

	scores, err = repo.GetScoresForJudge(judge.Id, event.Id, PhasePreliminary)
	assert.NoError(t, err)
	assert.Len(t, scores, 1)
	assert.Equal(t, 9.0, scores[0].Value)
}

func TestReplaceJudgeScoresKeepsOtherPhases(t *testing.T) {
	event := createTestEvent(t)
	judge := &Judge{EventId: event.Id, Number: 1, Name: "Judge", AccessCode: "code-2"}
	assert.NoError(t, db.Create(judge).Error)
	contestant := &Contestant{EventId: event.Id, Number: 1, Name: "Contestant"}
	assert.NoError(t, db.Create(contestant).Error)
	criterion := &Criterion{EventId: event.Id, Name: "Poise", Weight: 10, Phase: PhasePreliminary}
	assert.NoError(t, db.Create(criterion).Error)

	repo := &ScoreRepository{DB: db}
	assert.NoError(t, repo.ReplaceJudgeScores(judge.Id, event.Id, PhasePreliminary, []*Score{
		{ContestantId: contestant.Id, CriterionId: criterion.Id, Value: 5},
	}))
	assert.NoError(t, repo.ReplaceJudgeScores(judge.Id, event.Id, PhaseFinal, []*Score{
		{ContestantId: contestant.Id, CriterionId: criterion.Id, Value: 8},
	}))

	preliminary, err := repo.GetScoresForJudge(judge.Id, event.Id, PhasePreliminary)
	assert.NoError(t, err)
	assert.Len(t, preliminary, 1)
	assert.Equal(t, 5.0, preliminary[0].Value)
}

func TestReplaceSelections(t *testing.T) {
	event := createTestEvent(t)
	first := &Contestant{EventId: event.Id, Number: 1, Name: "First"}
	second := &Contestant{EventId: event.Id, Number: 2, Name: "Second"}
	assert.NoError(t, db.Create(first).Error)
	assert.NoError(t, db.Create(second).Error)

	repo := &ManualFinalistRepository{DB: db}
	assert.NoError(t, repo.ReplaceSelections(event.Id, []int{first.Id, second.Id}))
	assert.NoError(t, repo.ReplaceSelections(event.Id, []int{second.Id}))

	selections, err := repo.GetSelectionsForEvent(event.Id)
	assert.NoError(t, err)
	assert.Len(t, selections, 1)
	assert.Equal(t, second.Id, selections[0].ContestantId)
}

func TestSetLockPerPhase(t *testing.T) {
	event := createTestEvent(t)
	judge := &Judge{EventId: event.Id, Number: 1, Name: "Judge", AccessCode: "code-3"}
	assert.NoError(t, db.Create(judge).Error)

	repo := &JudgeRepository{DB: db}
	locked, err := repo.SetLock(judge.Id, PhasePreliminary, true)
	assert.NoError(t, err)
	assert.True(t, locked.LockedPreliminary)
	assert.False(t, locked.LockedFinal)
	assert.True(t, locked.LockedFor(PhasePreliminary))
	assert.False(t, locked.LockedFor(PhaseFinal))

	unlocked, err := repo.SetLock(judge.Id, PhasePreliminary, false)
	assert.NoError(t, err)
	assert.False(t, unlocked.LockedPreliminary)
}

func TestDeleteJudgeRemovesScores(t *testing.T) {
	event := createTestEvent(t)
	removed := &Judge{EventId: event.Id, Number: 1, Name: "Removed", AccessCode: "code-4"}
	kept := &Judge{EventId: event.Id, Number: 2, Name: "Kept", AccessCode: "code-5"}
	assert.NoError(t, db.Create(removed).Error)
	assert.NoError(t, db.Create(kept).Error)
	contestant := &Contestant{EventId: event.Id, Number: 1, Name: "Contestant"}
	assert.NoError(t, db.Create(contestant).Error)
	criterion := &Criterion{EventId: event.Id, Name: "Poise", Weight: 10, Phase: PhasePreliminary}
	assert.NoError(t, db.Create(criterion).Error)

	scoreRepo := &ScoreRepository{DB: db}
	assert.NoError(t, scoreRepo.ReplaceJudgeScores(removed.Id, event.Id, PhasePreliminary, []*Score{
		{ContestantId: contestant.Id, CriterionId: criterion.Id, Value: 6},
	}))
	assert.NoError(t, scoreRepo.ReplaceJudgeScores(kept.Id, event.Id, PhasePreliminary, []*Score{
		{ContestantId: contestant.Id, CriterionId: criterion.Id, Value: 8},
	}))

	judgeRepo := &JudgeRepository{DB: db}
	assert.NoError(t, judgeRepo.Delete(removed.Id))

	scores, err := scoreRepo.GetScoresForEvent(event.Id, nil)
	assert.NoError(t, err)
	assert.Len(t, scores, 1)
	assert.Equal(t, kept.Id, scores[0].JudgeId)
}

func TestGetCriteriaForEventPhaseFilter(t *testing.T) {
	event := createTestEvent(t)
	assert.NoError(t, db.Create(&Criterion{EventId: event.Id, Name: "Interview", Phase: PhasePreliminary}).Error)
	assert.NoError(t, db.Create(&Criterion{EventId: event.Id, Name: "Q&A", Phase: PhaseFinal}).Error)

	repo := &CriterionRepository{DB: db}
	all, err := repo.GetCriteriaForEvent(event.Id, nil)
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	phase := PhaseFinal
	final, err := repo.GetCriteriaForEvent(event.Id, &phase)
	assert.NoError(t, err)
	assert.Len(t, final, 1)
	assert.Equal(t, "Q&A", final[0].Name)
}
