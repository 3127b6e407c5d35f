package get_chain_slots

import (
	getChainSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_chain_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// ChainSlotsRequest HTTP request model
type ChainSlotsRequest struct {
	Date   string         `json:"date"` // "2025-10-15"
	Groups []GroupRequest `json:"groups"`
}

// GroupRequest услуги одного участника визита в порядке выполнения
type GroupRequest struct {
	PersonID   string  `json:"personId,omitempty"`
	ServiceIDs []int64 `json:"serviceIds"`
}

// ChainSlotsResponse HTTP response model
type ChainSlotsResponse struct {
	Date   string           `json:"date"`
	People []PersonResponse `json:"people"`
}

type PersonResponse struct {
	PersonID string          `json:"personId"`
	Slots    []ChainResponse `json:"slots"`
}

type ChainResponse struct {
	StartTime string            `json:"startTime"`
	EndTime   string            `json:"endTime"`
	StaffID   int64             `json:"staffId"`
	Services  []ServiceResponse `json:"services"`
}

type ServiceResponse struct {
	ServiceID int64  `json:"serviceId"`
	StaffID   int64  `json:"staffId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ChainSlotsRequest) ToUseCaseRequest(token string) *getChainSlots.Request {
	groups := make([]getChainSlots.Group, len(r.Groups))
	for i, g := range r.Groups {
		groups[i] = getChainSlots.Group{PersonID: g.PersonID, ServiceIDs: g.ServiceIDs}
	}

	return &getChainSlots.Request{Token: token, Date: types.DateOrZero(r.Date), Groups: groups}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getChainSlots.Response) *ChainSlotsResponse {
	people := make([]PersonResponse, len(resp.People))
	for i, p := range resp.People {
		slots := make([]ChainResponse, len(p.Slots))
		for j, s := range p.Slots {
			services := make([]ServiceResponse, len(s.Services))
			for k, sv := range s.Services {
				services[k] = ServiceResponse{
					ServiceID: sv.ServiceID,
					StaffID:   sv.StaffID,
					StartTime: sv.StartTime.String(),
					EndTime:   sv.EndTime.String(),
				}
			}
			slots[j] = ChainResponse{
				StartTime: s.StartTime.String(),
				EndTime:   s.EndTime.String(),
				StaffID:   s.StaffID,
				Services:  services,
			}
		}
		people[i] = PersonResponse{PersonID: p.PersonID, Slots: slots}
	}

	return &ChainSlotsResponse{Date: types.FormatDate(resp.Date), People: people}
}
