package client

import (
	"net/http"
	"net/url"
)

// Request describes a single outbound call. A descriptor is built per
// invocation and owned by that call; the pipeline materializes a fresh
// http.Request from it on every dispatch, including the reauthentication
// retry, so the descriptor itself is never mutated after construction.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any
	Headers http.Header
}

// Get builds a GET request descriptor.
func Get(path string, query url.Values) *Request {
	return &Request{Method: http.MethodGet, Path: path, Query: query}
}

// Post builds a POST request descriptor with a JSON body.
func Post(path string, body any) *Request {
	return &Request{Method: http.MethodPost, Path: path, Body: body}
}

// Put builds a PUT request descriptor with a JSON body.
func Put(path string, body any) *Request {
	return &Request{Method: http.MethodPut, Path: path, Body: body}
}

// Patch builds a PATCH request descriptor with a JSON body.
func Patch(path string, body any) *Request {
	return &Request{Method: http.MethodPatch, Path: path, Body: body}
}

// Delete builds a DELETE request descriptor.
func Delete(path string) *Request {
	return &Request{Method: http.MethodDelete, Path: path}
}
