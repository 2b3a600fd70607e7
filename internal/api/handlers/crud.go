package handlers

import (
	"context"
	"net/http"
)

const (
	msgInvalidID          = "invalid id"
	msgInvalidRequestBody = "invalid request body"
)

// CRUD общие ручки для справочников с путем /{id}
// OnError вызывается с deleting=true для ошибок удаления
type CRUD struct {
	Logger interface {
		Info(format string, v ...interface{})
		Warn(format string, v ...interface{})
	}
	OnError func(w http.ResponseWriter, route string, err error, deleting bool)
}

func Create[Req, Resp any](c CRUD, w http.ResponseWriter, r *http.Request, route string,
	fn func(ctx context.Context, req *Req) (*Resp, error)) {
	var req Req
	if err := DecodeJSON(r, &req); err != nil {
		c.Logger.Warn("%s - Invalid request body: %v", route, err)
		RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := fn(r.Context(), &req)
	if err != nil {
		c.OnError(w, route, err, false)
		return
	}
	RespondJSON(w, http.StatusCreated, resp)
}

func Get[Resp any](c CRUD, w http.ResponseWriter, r *http.Request, route string,
	fn func(ctx context.Context, id int64) (*Resp, error)) {
	id, err := PathID(r, "id")
	if err != nil {
		RespondBadRequest(w, msgInvalidID)
		return
	}

	resp, err := fn(r.Context(), id)
	if err != nil {
		c.OnError(w, route, err, false)
		return
	}
	RespondJSON(w, http.StatusOK, resp)
}

// List читает необязательный фильтр по родителю из параметра parentParam
func List[Resp any](c CRUD, w http.ResponseWriter, r *http.Request, route, parentParam string,
	fn func(ctx context.Context, parentID *int64) ([]Resp, error)) {
	var parentID *int64
	if parentParam != "" {
		var err error
		if parentID, err = QueryInt64(r, parentParam); err != nil {
			RespondBadRequest(w, err.Error())
			return
		}
	}

	resp, err := fn(r.Context(), parentID)
	if err != nil {
		c.OnError(w, route, err, false)
		return
	}
	RespondJSON(w, http.StatusOK, resp)
}

func Update[Req, Resp any](c CRUD, w http.ResponseWriter, r *http.Request, route string,
	fn func(ctx context.Context, id int64, req *Req) (*Resp, error)) {
	id, err := PathID(r, "id")
	if err != nil {
		RespondBadRequest(w, msgInvalidID)
		return
	}

	var req Req
	if err := DecodeJSON(r, &req); err != nil {
		c.Logger.Warn("%s - Invalid request body: %v", route, err)
		RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := fn(r.Context(), id, &req)
	if err != nil {
		c.OnError(w, route, err, false)
		return
	}
	RespondJSON(w, http.StatusOK, resp)
}

func Delete(c CRUD, w http.ResponseWriter, r *http.Request, route string,
	fn func(ctx context.Context, id int64) error) {
	id, err := PathID(r, "id")
	if err != nil {
		RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := fn(r.Context(), id); err != nil {
		c.OnError(w, route, err, true)
		return
	}

	c.Logger.Info("%s - Deleted id=%d", route, id)
	RespondJSON(w, http.StatusNoContent, nil)
}
