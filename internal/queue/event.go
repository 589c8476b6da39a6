// Package queue defines the events exchanged over RabbitMQ and the
// background consumer that reacts to them.
package queue

import "time"

// Queue names.  Each event type has its own durable queue.
const (
	PipelineCompletedQueue = "pipeline.completed"
	TicketsBookedQueue     = "tickets.booked"
)

// PipelineCompletedEvent is published after a pipeline run has written
// every processed table.  Dashboards reload DataDir when they see it.
type PipelineCompletedEvent struct {
	RunID      string    `json:"run_id"`
	DataDir    string    `json:"data_dir"`
	Movies     int       `json:"movies"`
	Skipped    int       `json:"skipped"`
	Sales      int       `json:"sales"`
	FinishedAt time.Time `json:"finished_at"`
}

// TicketsBookedEvent is published when a booking commits.
type TicketsBookedEvent struct {
	TicketID  uint64    `json:"ticket_id"`
	Title     string    `json:"title"`
	Quantity  int       `json:"quantity"`
	Remaining int       `json:"remaining"`
	BookedBy  string    `json:"booked_by"`
	BookedAt  time.Time `json:"booked_at"`
}
