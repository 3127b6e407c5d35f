package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модели

// CreateSessionRequest запрос на создание сессии бронирования
type CreateSessionRequest struct {
	SalonID int64 `json:"salonId"`
}

// Response модели

// CreateSessionResponse ответ с токеном новой сессии
type CreateSessionResponse struct {
	Token     string    `json:"token"`
	SalonID   int64     `json:"salonId"`
	State     string    `json:"state"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionResponse состояние сессии вместе со снимком салона
type SessionResponse struct {
	Token        string                `json:"token"`
	State        string                `json:"state"`
	ExpiresAt    time.Time             `json:"expiresAt"`
	Salon        SalonSnapshot         `json:"salon"`
	SelectedSlot *SelectedSlotResponse `json:"selectedSlot,omitempty"`
}

// SalonSnapshot данные салона, нужные клиенту для выбора услуг
type SalonSnapshot struct {
	ID         int64              `json:"id"`
	Name       string             `json:"name"`
	Timezone   string             `json:"timezone"`
	Settings   SettingsResponse   `json:"settings"`
	Categories []CategoryResponse `json:"categories"`
	Services   []ServiceResponse  `json:"services"`
	Staff      []StaffResponse    `json:"staff"`
}

type SettingsResponse struct {
	WorkStartHour           int `json:"workStartHour"`
	WorkEndHour             int `json:"workEndHour"`
	SlotIntervalMinutes     int `json:"slotIntervalMinutes"`
	MinBookingNoticeMinutes int `json:"minBookingNoticeMinutes"`
}

type CategoryResponse struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	SequentialRequired bool   `json:"sequentialRequired"`
}

type ServiceResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	Price           string `json:"price"` // десятичная строка, "350.00"
	CategoryID      *int64 `json:"categoryId,omitempty"`
}

type StaffResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SelectedSlotResponse слот, удерживаемый сессией
type SelectedSlotResponse struct {
	Date            string  `json:"date"`      // "2025-10-15"
	StartTime       string  `json:"startTime"` // "10:00"
	ServiceID       int64   `json:"serviceId"`
	StaffIDs        []int64 `json:"staffIds"`
	PeopleCount     int     `json:"peopleCount"`
	DurationMinutes int     `json:"durationMinutes"`
}

// FromDomainSlot конвертирует выбранный слот; nil остаётся nil
func FromDomainSlot(slot *domain.SelectedSlot) *SelectedSlotResponse {
	if slot == nil {
		return nil
	}
	return &SelectedSlotResponse{
		Date:            types.FormatDate(slot.Date),
		StartTime:       slot.StartTime.String(),
		ServiceID:       slot.ServiceID,
		StaffIDs:        slot.StaffIDs,
		PeopleCount:     slot.PeopleCount,
		DurationMinutes: slot.DurationMinutes,
	}
}

// FromDomainSalon собирает снимок салона, неактивные услуги отбрасываются
func FromDomainSalon(salon *domain.Salon, services []*domain.Service, categories []*domain.Category, staff []*domain.Staff) SalonSnapshot {
	snapshot := SalonSnapshot{
		ID:       salon.ID,
		Name:     salon.Name,
		Timezone: salon.Location().String(),
		Settings: SettingsResponse{
			WorkStartHour:           salon.Settings.WorkStartHour,
			WorkEndHour:             salon.Settings.WorkEndHour,
			SlotIntervalMinutes:     salon.Settings.SlotIntervalMinutes,
			MinBookingNoticeMinutes: salon.Settings.MinBookingNoticeMinutes,
		},
		Categories: make([]CategoryResponse, 0, len(categories)),
		Services:   make([]ServiceResponse, 0, len(services)),
		Staff:      make([]StaffResponse, 0, len(staff)),
	}

	for _, c := range categories {
		snapshot.Categories = append(snapshot.Categories, CategoryResponse{
			ID:                 c.ID,
			Name:               c.Name,
			SequentialRequired: c.SequentialRequired,
		})
	}

	for _, s := range services {
		if !s.IsActive {
			continue
		}
		snapshot.Services = append(snapshot.Services, ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price.StringFixed(2),
			CategoryID:      s.CategoryID,
		})
	}

	for _, st := range staff {
		if !st.IsActive {
			continue
		}
		snapshot.Staff = append(snapshot.Staff, StaffResponse{ID: st.ID, Name: st.Name})
	}

	return snapshot
}
