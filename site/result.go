package site

import (
	"net/http"

	"github.com/coreh/linkshare/auth"
)

type Status int

const (
	StatusOK Status = iota
	StatusUnauthorized
	StatusNotFound
	StatusRedirect
)

// HTTPCode maps a status onto the response code sent to the client.
func (s Status) HTTPCode() int {
	switch s {
	case StatusUnauthorized:
		return http.StatusUnauthorized
	case StatusNotFound:
		return http.StatusNotFound
	case StatusRedirect:
		return http.StatusSeeOther
	default:
		return http.StatusOK
	}
}

func (s Status) String() string {
	switch s {
	case StatusUnauthorized:
		return "unauthorized"
	case StatusNotFound:
		return "not_found"
	case StatusRedirect:
		return "redirect"
	default:
		return "ok"
	}
}

// Result is the outcome of a request. Authorized is the client's unlocked set
// after the request; Location is set for redirects.
type Result struct {
	Status     Status
	Body       string
	Authorized auth.PathSet
	Location   string
}
