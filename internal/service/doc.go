// Package service holds the application use cases that sit between the HTTP
// handlers and the store interfaces.
//
// TaskService enforces per-user ownership of tasks: every operation takes the
// acting user's ID and never reads or writes another user's rows. Store errors
// are translated into service-level errors (ErrTaskNotFound, ServiceError) so
// handlers can map them without knowing about the database.
//
// Authentication lives in the auth subpackage.
package service
