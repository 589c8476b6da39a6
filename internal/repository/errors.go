// Package repository holds the MySQL-backed stores.  Sentinel errors let
// handlers map failures to status codes without inspecting driver errors.
package repository

import "errors"

// ErrTicketExists is returned when a title is already in the inventory.
// Handlers translate it into 409.
var ErrTicketExists = errors.New("ticket title already exists")

// ErrTicketNotFound is returned when no inventory row matches the title.
var ErrTicketNotFound = errors.New("ticket title not found")

// ErrNotEnoughTickets is returned when a booking asks for more tickets
// than remain.  Nothing is changed.
var ErrNotEnoughTickets = errors.New("not enough tickets available")
