package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/rohit98064/Tele-Bot/internal/domain"
	"github.com/rohit98064/Tele-Bot/internal/service"
	"github.com/rohit98064/Tele-Bot/internal/telegram"
)

// Transport is the outbound chat surface the handlers drive. All side
// effects of message handling go through it.
type Transport interface {
	SendMessage(ctx context.Context, chatID int64, text string) (int, error)
	EditMessage(ctx context.Context, chatID int64, messageID int, text string) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
}

// Catalog resolves a YouTube URL into metadata and offerable variants.
type Catalog interface {
	Resolve(ctx context.Context, url string) (*domain.Video, error)
}

// Deliverer runs one fetch-and-send operation to a chat.
type Deliverer interface {
	Deliver(ctx context.Context, req domain.DeliveryRequest, chatID int64) error
}

// Handler holds all dependencies needed by command and text handlers.
type Handler struct {
	bot      *bot.Bot
	sessions *service.SessionStore
	catalog  Catalog
	delivery Deliverer
	tx       Transport
	reporter *telegram.Reporter
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot      *bot.Bot
	Sessions *service.SessionStore
	Catalog  Catalog
	Delivery Deliverer
	Tx       Transport
	Reporter *telegram.Reporter
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:      deps.Bot,
		sessions: deps.Sessions,
		catalog:  deps.Catalog,
		delivery: deps.Delivery,
		tx:       deps.Tx,
		reporter: deps.Reporter,
	}
}
