// Package service defines the backend-agnostic interface for task submission.
package service

import "encoding/json"

// TaskRequest is the JSON body POSTed to /add_task.
// All fields are required and non-empty at submission time.
type TaskRequest struct {
	UserID   string `json:"user_id"`
	APIToken string `json:"api_token"`
	Task     string `json:"task"`
}

// TaskResult is a successful submission.
type TaskResult struct {
	// Text is the created task's text as echoed by the server.
	Text string

	// Type is the created task's type (todo, habit, daily, reward) when known.
	Type string

	// Status is the HTTP status code of the response.
	Status int

	// Raw is the response body as received.
	Raw json.RawMessage
}

// StatusResult is a successful health check.
type StatusResult struct {
	Up     bool
	Status int
}
