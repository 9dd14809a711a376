// Package http hosts the router seam, the server, and the response formatter
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "robots/internal/platform/errors"
	"robots/internal/platform/logger"
	pnet "robots/internal/platform/net"
)

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Text writes s as text/plain with the given status
func Text(w stdhttp.ResponseWriter, status int, s string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(s))
}

// Fail renders err as the failure body with the status mapped from its code
// server side failures are logged with their cause since the body never carries it
func Fail(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	f := pnet.FailureFrom(err)
	log := logger.C(r.Context())
	evt := log.Debug()
	if f.Status >= stdhttp.StatusInternalServerError {
		evt = log.Error()
	}
	evt.Err(err).
		Int("status", f.Status).
		Str("code", perr.CodeOf(err).String()).
		Msg("request failed")
	JSON(w, f.Status, f)
}

// Response is a functional response object for return-style handlers
type Response struct {
	Status int
	Body   any
	// optional headers if a handler wants to add any
	Header stdhttp.Header
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}

	// an error body owns the status
	if err, ok := resp.Body.(error); ok && err != nil {
		Fail(w, r, err)
		return
	}

	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	switch b := resp.Body.(type) {
	case nil:
		w.WriteHeader(status)
	case string:
		Text(w, status, b)
	default:
		JSON(w, status, b)
	}
}

// OK returns a 200 response
func OK(body any) Response { return Response{Status: stdhttp.StatusOK, Body: body} }

// Created returns a 201 response
func Created(body any) Response { return Response{Status: stdhttp.StatusCreated, Body: body} }

// NoContent returns a 204 response with no body
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error returns a response that maps the error to status and failure body
func Error(err error) Response { return Response{Body: err} }
