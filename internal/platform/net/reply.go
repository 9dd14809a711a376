package net

import (
	"net/http"
	"strings"

	perr "robots/internal/platform/errors"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Failure is the error body every endpoint renders
//
//	{"status":404,"code":"NOT_FOUND","error":{"title":"Not Found","detail":"Robot not found"}}
type Failure struct {
	Status int           `json:"status"`
	Code   string        `json:"code"`
	Error  FailureDetail `json:"error"`
}

// FailureDetail carries the status phrase and the failure message
type FailureDetail struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

var upper = cases.Upper(language.Und)

// nameReplacer turns a status phrase into an identifier-like code
var nameReplacer = strings.NewReplacer(" ", "_", "-", "_", "'", "")

// StatusName returns the SCREAMING_SNAKE name of an HTTP status, e.g. 422 -> UNPROCESSABLE_ENTITY
func StatusName(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "UNKNOWN"
	}
	return nameReplacer.Replace(upper.String(text))
}

// FailureFrom renders err as a Failure
// our errors expose their message; foreign errors only expose the status phrase
func FailureFrom(err error) Failure {
	status := perr.HTTPStatus(err)
	title := http.StatusText(status)
	detail, ok := perr.MessageOf(err)
	if !ok {
		detail = title
	}
	return Failure{
		Status: status,
		Code:   StatusName(status),
		Error:  FailureDetail{Title: title, Detail: detail},
	}
}
