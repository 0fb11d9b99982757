package responder

import (
	"encoding/json"
	"io"
	"net/http"
)

/*
STATIC PATH RESPONDER

Three outcomes, keyed on the exact request path:

	/             -> {"index":"<welcome>"}
	/health.json  -> {"status":"UP"}
	anything else -> 404 (literal body)

Method is never inspected. The path is compared in its escaped form as it
arrived on the wire, so /health%2Ejson is not /health.json. Query string is
ignored.

The fallback answers status 200 with a "404" body, matching the sidecars
already deployed. NotFoundStatus opts into a real 404.
*/

const (
	IndexPath  = "/"
	HealthPath = "/health.json"

	ContentType = "application/json; charset=utf-8"
)

// notFoundBody is written for every path that is neither IndexPath nor HealthPath.
const notFoundBody = "404"

// Options configures a Responder.
type Options struct {
	Welcome string

	// NotFoundStatus is the status code for unmatched paths.
	// Zero means http.StatusOK.
	NotFoundStatus int
}

// Responder answers requests with precomputed bodies.
// It holds no mutable state and is safe for concurrent use.
type Responder struct {
	index          []byte
	health         []byte
	notFoundStatus int
}

type indexBody struct {
	Index string `json:"index"`
}

type healthBody struct {
	Status string `json:"status"`
}

// New builds a Responder. Bodies are encoded once here.
func New(opts Options) (*Responder, error) {
	index, err := json.Marshal(indexBody{Index: opts.Welcome})
	if err != nil {
		return nil, err
	}

	health, err := json.Marshal(healthBody{Status: "UP"})
	if err != nil {
		return nil, err
	}

	status := opts.NotFoundStatus
	if status == 0 {
		status = http.StatusOK
	}

	return &Responder{
		index:          index,
		health:         health,
		notFoundStatus: status,
	}, nil
}

func (s *Responder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", ContentType)

	switch r.URL.EscapedPath() {
	case IndexPath:
		w.WriteHeader(http.StatusOK)
		w.Write(s.index)
	case HealthPath:
		w.WriteHeader(http.StatusOK)
		w.Write(s.health)
	default:
		w.WriteHeader(s.notFoundStatus)
		io.WriteString(w, notFoundBody)
	}
}
