package model

import "time"

const (
	EventUpcoming  = "UPCOMING"
	EventOngoing   = "ONGOING"
	EventEnded     = "ENDED"
	EventCancelled = "CANCELLED"
)

type Event struct {
	DTO
	Name        string    `gorm:"not null" validate:"required" json:"name"`
	Slug        string    `gorm:"uniqueIndex;size:191" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Venue       string    `gorm:"not null" json:"venue"`
	Province    string    `json:"province"`
	StartTime   time.Time `gorm:"not null" json:"startTime"`
	EndTime     time.Time `gorm:"not null" json:"endTime"`
	Status      string    `gorm:"default:'UPCOMING'" json:"status"` // UPCOMING, ONGOING, ENDED, CANCELLED
	PosterUrl   *string   `json:"posterUrl"`
	Artist      string    `json:"artist"`
	OrganizerId uint      `json:"organizerId"`
	Organizer   *Account  `gorm:"foreignKey:OrganizerId" json:"-"`

	TicketTypes []TicketType `gorm:"foreignKey:EventId" json:"ticketTypes,omitempty"`
}

type Events []Event

type CreateEventInput struct {
	Name        string    `validate:"required" json:"name"`
	Description string    `json:"description"`
	Venue       string    `validate:"required" json:"venue"`
	Province    string    `json:"province"`
	StartTime   time.Time `validate:"required" json:"startTime"`
	EndTime     time.Time `validate:"required,gtfield=StartTime" json:"endTime"`
	PosterUrl   *string   `json:"posterUrl"`
	Artist      string    `json:"artist"`
}

type EditEventInput struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Venue       *string    `json:"venue,omitempty"`
	Province    *string    `json:"province,omitempty"`
	StartTime   *time.Time `json:"startTime,omitempty"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	PosterUrl   *string    `json:"posterUrl,omitempty"`
	Artist      *string    `json:"artist,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

type FilterEventInput struct {
	Pagination
	SearchKey string  `json:"searchKey"`
	Status    *string `json:"status" validate:"omitempty,oneof=UPCOMING ONGOING ENDED CANCELLED"`
	Province  *string `json:"province"`
}
