// Package api holds the HTTP handlers for registration, login and the
// authenticated task endpoints. Handlers decode and validate requests, call
// the services and map their errors to status codes and safe messages.
package api
