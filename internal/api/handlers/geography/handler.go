package geography

import (
	"context"
	"net/http"

	"github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/geography/models"
)

// Handler справочник географии: страны, штаты, районы, населенные пункты
// Чтение публичное, изменение - только администратору
type Handler struct {
	service GeographyService
	logger  Logger
	crud    handlers.CRUD
}

func NewHandler(service GeographyService, logger Logger) *Handler {
	h := &Handler{
		service: service,
		logger:  logger,
	}
	h.crud = handlers.CRUD{Logger: logger, OnError: h.respondError}
	return h
}

// Countries

func (h *Handler) CreateCountry(w http.ResponseWriter, r *http.Request) {
	handlers.Create(h.crud, w, r, "POST /countries", h.service.CreateCountry)
}

func (h *Handler) GetCountry(w http.ResponseWriter, r *http.Request) {
	handlers.Get(h.crud, w, r, "GET /countries/{id}", h.service.GetCountry)
}

func (h *Handler) ListCountries(w http.ResponseWriter, r *http.Request) {
	handlers.List(h.crud, w, r, "GET /countries", "", func(ctx context.Context, _ *int64) ([]models.Country, error) {
		return h.service.ListCountries(ctx)
	})
}

func (h *Handler) UpdateCountry(w http.ResponseWriter, r *http.Request) {
	handlers.Update(h.crud, w, r, "PUT /countries/{id}", h.service.UpdateCountry)
}

func (h *Handler) DeleteCountry(w http.ResponseWriter, r *http.Request) {
	handlers.Delete(h.crud, w, r, "DELETE /countries/{id}", h.service.DeleteCountry)
}

// States

func (h *Handler) CreateState(w http.ResponseWriter, r *http.Request) {
	handlers.Create(h.crud, w, r, "POST /states", h.service.CreateState)
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	handlers.Get(h.crud, w, r, "GET /states/{id}", h.service.GetState)
}

// ListStates GET /states?countryId=
func (h *Handler) ListStates(w http.ResponseWriter, r *http.Request) {
	handlers.List(h.crud, w, r, "GET /states", "countryId", h.service.ListStates)
}

func (h *Handler) UpdateState(w http.ResponseWriter, r *http.Request) {
	handlers.Update(h.crud, w, r, "PUT /states/{id}", h.service.UpdateState)
}

func (h *Handler) DeleteState(w http.ResponseWriter, r *http.Request) {
	handlers.Delete(h.crud, w, r, "DELETE /states/{id}", h.service.DeleteState)
}

// Districts

func (h *Handler) CreateDistrict(w http.ResponseWriter, r *http.Request) {
	handlers.Create(h.crud, w, r, "POST /districts", h.service.CreateDistrict)
}

func (h *Handler) GetDistrict(w http.ResponseWriter, r *http.Request) {
	handlers.Get(h.crud, w, r, "GET /districts/{id}", h.service.GetDistrict)
}

// ListDistricts GET /districts?stateId=
func (h *Handler) ListDistricts(w http.ResponseWriter, r *http.Request) {
	handlers.List(h.crud, w, r, "GET /districts", "stateId", h.service.ListDistricts)
}

func (h *Handler) UpdateDistrict(w http.ResponseWriter, r *http.Request) {
	handlers.Update(h.crud, w, r, "PUT /districts/{id}", h.service.UpdateDistrict)
}

func (h *Handler) DeleteDistrict(w http.ResponseWriter, r *http.Request) {
	handlers.Delete(h.crud, w, r, "DELETE /districts/{id}", h.service.DeleteDistrict)
}

// Localities

func (h *Handler) CreateLocality(w http.ResponseWriter, r *http.Request) {
	handlers.Create(h.crud, w, r, "POST /localities", h.service.CreateLocality)
}

func (h *Handler) GetLocality(w http.ResponseWriter, r *http.Request) {
	handlers.Get(h.crud, w, r, "GET /localities/{id}", h.service.GetLocality)
}

// ListLocalities GET /localities?districtId=
func (h *Handler) ListLocalities(w http.ResponseWriter, r *http.Request) {
	handlers.List(h.crud, w, r, "GET /localities", "districtId", h.service.ListLocalities)
}

func (h *Handler) UpdateLocality(w http.ResponseWriter, r *http.Request) {
	handlers.Update(h.crud, w, r, "PUT /localities/{id}", h.service.UpdateLocality)
}

func (h *Handler) DeleteLocality(w http.ResponseWriter, r *http.Request) {
	handlers.Delete(h.crud, w, r, "DELETE /localities/{id}", h.service.DeleteLocality)
}
