// Package middleware groups the HTTP middleware used by the join API
// server: request-ID injection (requestid) and API-key authentication
// (auth). Each middleware lives in its own subpackage and returns a
// standard fiber.Handler.
package middleware
