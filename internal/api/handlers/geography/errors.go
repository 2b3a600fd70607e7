package geography

import (
	"errors"
	"net/http"

	"github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers"
	geoService "github.com/Spheriverse04/ServeMee-sub000/internal/service/geography"
)

const (
	msgNotFound      = "not found"
	msgAlreadyExists = "record with this name already exists"
	msgParentMissing = "referenced parent record does not exist"
	msgHasChildren   = "record is still referenced by other records"
)

// respondError: нарушение ссылки при удалении означает наличие дочерних записей (409),
// при создании и обновлении - отсутствующего родителя (400)
func (h *Handler) respondError(w http.ResponseWriter, route string, err error, deleting bool) {
	switch {
	case errors.Is(err, geoService.ErrNotFound):
		handlers.RespondNotFound(w, msgNotFound)
	case errors.Is(err, geoService.ErrAlreadyExists):
		handlers.RespondConflict(w, msgAlreadyExists)
	case errors.Is(err, geoService.ErrInvalidReference) && deleting:
		handlers.RespondConflict(w, msgHasChildren)
	case errors.Is(err, geoService.ErrInvalidReference):
		handlers.RespondBadRequest(w, msgParentMissing)
	case errors.Is(err, geoService.ErrInvalidInput):
		handlers.RespondBadRequest(w, err.Error())
	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
