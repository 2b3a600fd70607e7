package models

import (
	"time"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
)

// CountryRequest создание и обновление страны
type CountryRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// StateRequest создание и обновление штата
type StateRequest struct {
	CountryID int64  `json:"countryId"`
	Name      string `json:"name"`
}

// DistrictRequest создание и обновление района
type DistrictRequest struct {
	StateID int64  `json:"stateId"`
	Name    string `json:"name"`
}

// LocalityRequest создание и обновление населенного пункта
type LocalityRequest struct {
	DistrictID int64   `json:"districtId"`
	Name       string  `json:"name"`
	Pincode    *string `json:"pincode,omitempty"`
}

type Country struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type State struct {
	ID        int64     `json:"id"`
	CountryID int64     `json:"countryId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type District struct {
	ID        int64     `json:"id"`
	StateID   int64     `json:"stateId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Locality struct {
	ID         int64     `json:"id"`
	DistrictID int64     `json:"districtId"`
	Name       string    `json:"name"`
	Pincode    *string   `json:"pincode,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func FromCountry(c *domain.Country) Country {
	return Country{ID: c.ID, Name: c.Name, Code: c.Code, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func FromState(s *domain.State) State {
	return State{ID: s.ID, CountryID: s.CountryID, Name: s.Name, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
}

func FromDistrict(d *domain.District) District {
	return District{ID: d.ID, StateID: d.StateID, Name: d.Name, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}

func FromLocality(l *domain.Locality) Locality {
	return Locality{
		ID:         l.ID,
		DistrictID: l.DistrictID,
		Name:       l.Name,
		Pincode:    l.Pincode,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

// ConvertList применяет convert к каждому элементу
func ConvertList[D any, R any](items []D, convert func(D) R) []R {
	result := make([]R, 0, len(items))
	for _, item := range items {
		result = append(result, convert(item))
	}
	return result
}
