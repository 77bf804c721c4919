// Package store defines the persistence interfaces for users and tasks and
// the sentinel errors every implementation reports. Task access is always
// scoped to the owning user.
package store
