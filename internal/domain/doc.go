// Package domain contains the task tracker's entities, users and their tasks,
// along with the validation rules that hold regardless of storage or transport.
package domain
