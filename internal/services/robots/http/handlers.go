// Package http provides http transport for robots
package http

import (
	stdhttp "net/http"

	"robots/internal/modkit/httpkit"
	perr "robots/internal/platform/errors"
	"robots/internal/platform/net/http/bind"
	"robots/internal/services/robots/domain"
	svc "robots/internal/services/robots/service"
)

// Options tunes the robots handlers
type Options struct {
	// BodyMaxBytes caps JSON bodies; zero keeps the bind default
	BodyMaxBytes int64
}

// Register mounts robots endpoints on the given router
func Register(r httpkit.Router, s svc.Service, opts Options) {
	h := &handlers{svc: s, json: bind.JSONOptions{MaxBytes: opts.BodyMaxBytes}}

	httpkit.Get(r, "/", h.list)
	httpkit.Post(r, "/", h.create)
	httpkit.Get(r, "/{id}", h.get)
	httpkit.Put(r, "/{id}", h.update)
	httpkit.Patch(r, "/{id}", h.updatePurpose)
	httpkit.Delete(r, "/{id}", h.delete)
}

type handlers struct {
	svc  svc.Service
	json bind.JSONOptions
}

// listQuery is the allow-listed filter accepted by GET /robots
type listQuery struct {
	ID      *string `query:"id" validate:"omitempty,positive_int"`
	Name    *string `query:"name"`
	Purpose *string `query:"purpose"`
}

// swagger:route GET /robots Robots robotsList
// @Summary List robots, optionally filtered by equality on id, name or purpose
// @Tags Robots
// @Produce json
// @Param id query int false "Robot id"
// @Param name query string false "Robot name"
// @Param purpose query string false "Robot purpose"
// @Success 200 {object} domain.Envelope "ok"
// @Failure 422 {object} net.Failure "Invalid parameters"
// @Router /robots [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	q, err := bind.ParseQuery[listQuery](r)
	if err != nil {
		return nil, invalid(err)
	}
	f := domain.Filter{Name: q.Name, Purpose: q.Purpose}
	if q.ID != nil {
		id, ok := bind.PositiveInt(*q.ID)
		if !ok {
			return nil, perr.WithField(domain.ErrInvalidParameters, "id")
		}
		f.ID = &id
	}
	return h.svc.GetAll(r.Context(), f)
}

// swagger:route GET /robots/{id} Robots robotsGet
// @Summary Get one robot
// @Tags Robots
// @Produce json
// @Param id path int true "Robot id"
// @Success 200 {object} domain.Envelope "ok"
// @Failure 404 {object} net.Failure "Robot not found"
// @Router /robots/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	return h.svc.GetOne(r.Context(), id)
}

// swagger:route POST /robots Robots robotsCreate
// @Summary Create a robot
// @Tags Robots
// @Accept json
// @Produce json
// @Param payload body object true "{name, purpose}"
// @Success 201 {object} domain.Envelope "created"
// @Failure 422 {object} net.Failure "Invalid parameters"
// @Router /robots [post]
func (h *handlers) create(r *stdhttp.Request) (any, error) {
	in, err := h.checked(r)
	if err != nil {
		return nil, err
	}
	env, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(env), nil
}

// swagger:route PUT /robots/{id} Robots robotsUpdate
// @Summary Replace name and purpose
// @Tags Robots
// @Accept json
// @Produce plain
// @Param id path int true "Robot id"
// @Param payload body object true "{name, purpose}"
// @Success 200 {string} string "Robot updated successfully."
// @Failure 404 {object} net.Failure "Robot not found"
// @Failure 422 {object} net.Failure "Invalid parameters"
// @Router /robots/{id} [put]
func (h *handlers) update(r *stdhttp.Request) (any, error) {
	in, err := h.checked(r)
	if err != nil {
		return nil, err
	}
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	if _, err := h.svc.Update(r.Context(), in, id); err != nil {
		return nil, err
	}
	return domain.UpdatedMessage, nil
}

// swagger:route PATCH /robots/{id} Robots robotsUpdatePurpose
// @Summary Change only the purpose
// @Tags Robots
// @Accept json
// @Produce plain
// @Param id path int true "Robot id"
// @Param payload body object true "{purpose}"
// @Success 200 {string} string "Robot updated successfully."
// @Failure 404 {object} net.Failure "Robot not found"
// @Failure 422 {object} net.Failure "Invalid parameters"
// @Router /robots/{id} [patch]
func (h *handlers) updatePurpose(r *stdhttp.Request) (any, error) {
	body, err := bind.ParseObject(r, h.json)
	if err != nil {
		return nil, err
	}
	purpose, err := domain.PurposeOf(body)
	if err != nil {
		return nil, err
	}
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	if _, err := h.svc.UpdatePurpose(r.Context(), id, purpose); err != nil {
		return nil, err
	}
	return domain.UpdatedMessage, nil
}

// swagger:route DELETE /robots/{id} Robots robotsDelete
// @Summary Delete a robot
// @Tags Robots
// @Param id path int true "Robot id"
// @Success 204 "deleted"
// @Failure 404 {object} net.Failure "Robot not found"
// @Router /robots/{id} [delete]
func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	if _, err := h.svc.Delete(r.Context(), id); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// checked decodes the body and runs it through the required field contract
func (h *handlers) checked(r *stdhttp.Request) (domain.ValidatedPayload, error) {
	body, err := bind.ParseObject(r, h.json)
	if err != nil {
		return domain.ValidatedPayload{}, err
	}
	return domain.Check(body)
}

// pathID reads {id}; anything but a positive integer cannot name a row
func pathID(r *stdhttp.Request) (int64, error) {
	id, ok := bind.PositiveInt(httpkit.Param(r, "id"))
	if !ok {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

// invalid folds query binding failures into the invalid parameters failure, keeping the field
func invalid(err error) error {
	if e, ok := perr.As(err); ok && e.Code() == perr.ErrorCodeInvalidParameters {
		return perr.WithField(domain.ErrInvalidParameters, e.Field())
	}
	return err
}
