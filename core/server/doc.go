// Package server holds the HTTP server configuration for the join API.
// The server itself is assembled in the serve command from Fiber, the
// middleware stack, and the registered features.
package server
