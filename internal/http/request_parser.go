// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing request path ids and JSON
// bodies.

package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

var (
	// ErrMalformedBody reports a body that is not a JSON object.
	ErrMalformedBody = errors.New("malformed request body")
	// ErrBodyTooLarge reports a body over maxBodyBytes.
	ErrBodyTooLarge = errors.New("request body too large")
)

// ParseID reads the {id} path value. Anything other than a positive integer
// cannot name a record and is reported as not ok.
func ParseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// DecodeBody decodes a JSON object into dst. An empty body decodes as an
// empty object, leaving every field absent.
func DecodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	err := dec.Decode(dst)

	var tooLarge *http.MaxBytesError
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	case errors.As(err, &tooLarge):
		return ErrBodyTooLarge
	default:
		return ErrMalformedBody
	}
}
