package repository

import (
	"fmt"
	"time"

	"pageant/config"

	"gorm.io/gorm"
)

type Phase string

const (
	PhasePreliminary Phase = "PRELIMINARY"
	PhaseFinal       Phase = "FINAL"
)

type EventStatus string

const (
	EventStatusActive   EventStatus = "ACTIVE"
	EventStatusArchived EventStatus = "ARCHIVED"
)

type TieBreakingStrategy string

const (
	TieBreakIncludeTies      TieBreakingStrategy = "INCLUDE_TIES"
	TieBreakTotalScore       TieBreakingStrategy = "TOTAL_SCORE"
	TieBreakContestantNumber TieBreakingStrategy = "CONTESTANT_NUMBER"
	TieBreakManualSelection  TieBreakingStrategy = "MANUAL_SELECTION"
)

type Event struct {
	Id                  int                 `gorm:"primaryKey"`
	Name                string              `gorm:"not null"`
	Date                time.Time           `gorm:"null"`
	InstitutionName     string              `gorm:"null"`
	InstitutionAddress  string              `gorm:"null"`
	Venue               string              `gorm:"null"`
	Status              EventStatus         `gorm:"not null;default:ACTIVE"`
	SeparateGenders     bool                `gorm:"not null;default:false"`
	HasTwoPhases        bool                `gorm:"not null;default:false"`
	FinalistsCount      int                 `gorm:"not null;default:0"`
	TieBreakingStrategy TieBreakingStrategy `gorm:"not null;default:INCLUDE_TIES"`
	CurrentPhase        Phase               `gorm:"not null;default:PRELIMINARY"`
	Judges              []*Judge            `gorm:"foreignKey:EventId;constraint:OnDelete:CASCADE"`
	Contestants         []*Contestant       `gorm:"foreignKey:EventId;constraint:OnDelete:CASCADE"`
	Criteria            []*Criterion        `gorm:"foreignKey:EventId;constraint:OnDelete:CASCADE"`
}

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository() *EventRepository {
	return &EventRepository{DB: config.DatabaseConnection()}
}

func (r *EventRepository) GetActiveEvent(preloads ...string) (*Event, error) {
	var event *Event
	query := r.DB
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	result := query.Where("status = ?", EventStatusActive).Order("date DESC").First(&event)
	if result.Error != nil {
		return nil, fmt.Errorf("no active event found: %w", result.Error)
	}
	return event, nil
}

func (r *EventRepository) GetEventById(eventId int, preloads ...string) (*Event, error) {
	var event *Event
	query := r.DB
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	result := query.First(&event, eventId)
	if result.Error != nil {
		return nil, result.Error
	}
	return event, nil
}

func (r *EventRepository) Save(event *Event) (*Event, error) {
	result := r.DB.Save(event)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to save event: %w", result.Error)
	}
	return event, nil
}

func (r *EventRepository) UpdatePhase(eventId int, phase Phase) error {
	result := r.DB.Model(&Event{}).Where("id = ?", eventId).Update("current_phase", phase)
	if result.Error != nil {
		return fmt.Errorf("failed to update event phase: %w", result.Error)
	}
	return nil
}

func (r *EventRepository) Delete(eventId int) error {
	return r.DB.Delete(&Event{}, eventId).Error
}

func (r *EventRepository) FindAll(preloads ...string) ([]*Event, error) {
	var events []*Event
	query := r.DB
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	result := query.Order("date DESC").Find(&events)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find events: %w", result.Error)
	}
	return events, nil
}
