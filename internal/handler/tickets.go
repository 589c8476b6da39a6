package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-analytics/internal/logger"
	"github.com/iliyamo/movie-analytics/internal/middleware"
	"github.com/iliyamo/movie-analytics/internal/model"
	"github.com/iliyamo/movie-analytics/internal/queue"
	"github.com/iliyamo/movie-analytics/internal/repository"
)

// TicketStore is the ticket inventory the handler works against.
// *repository.TicketRepo satisfies it.
type TicketStore interface {
	Create(ctx context.Context, title string, tickets int) (*model.Ticket, error)
	GetByTitle(ctx context.Context, title string) (*model.Ticket, error)
	List(ctx context.Context) ([]model.Ticket, error)
	AddTickets(ctx context.Context, title string, n int) (*model.Ticket, error)
	Book(ctx context.Context, title string, n int) (*model.Ticket, error)
}

// BookingPublisher announces committed bookings.
type BookingPublisher interface {
	PublishTicketsBooked(ctx context.Context, ev queue.TicketsBookedEvent) error
}

// TicketHandler exposes the ticket inventory.  Events is optional; a
// failed publish never fails the booking.
type TicketHandler struct {
	Store  TicketStore
	Events BookingPublisher
	Log    *logger.Logger
}

func NewTicketHandler(store TicketStore, events BookingPublisher, log *logger.Logger) *TicketHandler {
	if store == nil {
		panic("nil ticket store passed to NewTicketHandler")
	}
	return &TicketHandler{Store: store, Events: events, Log: log}
}

type createTicketReq struct {
	Title   string `json:"title" validate:"required,max=255"`
	Tickets int    `json:"tickets" validate:"min=0"`
}

type quantityReq struct {
	Quantity int `json:"quantity" validate:"required,min=1,max=1000"`
}

func dbCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// ticketError maps repository sentinels to HTTP responses.
func (h *TicketHandler) ticketError(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrTicketExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "title already listed"})
	case errors.Is(err, repository.ErrTicketNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "title not found"})
	case errors.Is(err, repository.ErrNotEnoughTickets):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "not enough tickets"})
	}
	h.Log.Error("ticket "+op+" failed", "error", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

func titleParam(c echo.Context) string {
	return strings.TrimSpace(c.Param("title"))
}

func (h *TicketHandler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	items, err := h.Store.List(ctx)
	if err != nil {
		return h.ticketError(c, "list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

func (h *TicketHandler) Get(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	t, err := h.Store.GetByTitle(ctx, titleParam(c))
	if err != nil {
		return h.ticketError(c, "get", err)
	}
	return c.JSON(http.StatusOK, t)
}

// Create lists a new title with an initial ticket count.
func (h *TicketHandler) Create(c echo.Context) error {
	var req createTicketReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err)})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	t, err := h.Store.Create(ctx, req.Title, req.Tickets)
	if err != nil {
		return h.ticketError(c, "create", err)
	}
	return c.JSON(http.StatusCreated, t)
}

// AddTickets puts more tickets on sale for an existing title.
func (h *TicketHandler) AddTickets(c echo.Context) error {
	var req quantityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err)})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	t, err := h.Store.AddTickets(ctx, titleParam(c), req.Quantity)
	if err != nil {
		return h.ticketError(c, "add", err)
	}
	return c.JSON(http.StatusOK, t)
}

// Book takes tickets off sale and announces the booking.
func (h *TicketHandler) Book(c echo.Context) error {
	var req quantityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err)})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	t, err := h.Store.Book(ctx, titleParam(c), req.Quantity)
	if err != nil {
		return h.ticketError(c, "book", err)
	}

	if h.Events != nil {
		ev := queue.TicketsBookedEvent{
			TicketID:  t.ID,
			Title:     t.Title,
			Quantity:  req.Quantity,
			Remaining: t.TicketsAvailable,
			BookedBy:  middleware.CurrentUserID(c),
			BookedAt:  time.Now().UTC(),
		}
		if err := h.Events.PublishTicketsBooked(context.WithoutCancel(ctx), ev); err != nil {
			h.Log.Warn("publish tickets.booked failed", "title", t.Title, "error", err)
		}
	}
	return c.JSON(http.StatusOK, t)
}
