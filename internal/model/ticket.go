package model

import "time"

// Ticket is a row of the booking table: a movie title and the number of
// tickets still on sale.  Titles are unique; they match MovieRecord.Title
// only by convention.
//
// Fields:
//  ID               – primary key identifier.
//  Title            – unique movie title.
//  TicketsAvailable – seats left to book (never negative).
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Ticket struct {
	ID               uint64    `json:"id"`                // movie_tickets.id
	Title            string    `json:"title"`             // movie_tickets.title
	TicketsAvailable int       `json:"tickets_available"` // movie_tickets.tickets_available
	CreatedAt        time.Time `json:"created_at"`        // movie_tickets.created_at
	UpdatedAt        time.Time `json:"updated_at"`        // movie_tickets.updated_at
}
