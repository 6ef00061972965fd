package httpserver

import (
	"net/http"
	"time"
)

// Timeouts bounds each phase of a connection.
type Timeouts struct {
	ReadHeader time.Duration
	Read       time.Duration
	Write      time.Duration
	Idle       time.Duration
}

// DefaultTimeouts suit small JSON request and response bodies.
var DefaultTimeouts = Timeouts{
	ReadHeader: 5 * time.Second,
	Read:       15 * time.Second,
	Write:      15 * time.Second,
	Idle:       60 * time.Second,
}

// New builds the gateway's HTTP server with DefaultTimeouts.
func New(addr string, handler http.Handler) *http.Server {
	return NewWithTimeouts(addr, handler, DefaultTimeouts)
}

func NewWithTimeouts(addr string, handler http.Handler, t Timeouts) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: t.ReadHeader,
		ReadTimeout:       t.Read,
		WriteTimeout:      t.Write,
		IdleTimeout:       t.Idle,
	}
}
