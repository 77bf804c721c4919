// Package config loads server, database and authentication settings from
// defaults, an optional YAML file, a .env file and TASKMANAGER_ environment
// variables, then validates them before anything else starts.
package config
