package http

import "github.com/gofiber/fiber/v2"

const ErrInvalidJsonPayload = "invalid JSON payload"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Redirect
	RedirectHandler Handler

	// Blocklists
	GetBlocklistsHandler    Handler
	UpdateBlocklistsHandler Handler

	// Suggestions
	ListSuggestionsHandler Handler

	// Routes
	CreateRouteHandler Handler
	ListRoutesHandler  Handler
	GetRouteHandler    Handler
	UpdateRouteHandler Handler
	DeleteRouteHandler Handler

	// Decoy
	GenerateDecoyHandler Handler
}
