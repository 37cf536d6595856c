// Package http implements the HTTP transport layer of the auth server.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, logging and tracing concerns are all
// handled at this layer before requests reach the service layer.
package http
