// Package api exposes the Telegram webhook and the operator endpoints over fiber.
package api

import (
	"anon-chat/auth"
	"anon-chat/contract"
	"anon-chat/infrastructure/telegram"
	"anon-chat/lobby"
	"anon-chat/observability"
	"anon-chat/projection"
	"context"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SecretHeader carries the secret token registered with setWebhook.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

const AdminRole = "admin"

type UpdateHandler interface {
	Handle(ctx context.Context, u telegram.Update) error
}

type LobbyStats interface {
	Stats() lobby.Stats
}

type OutcomeStats interface {
	Totals() projection.OutcomeTotals
}

type Options struct {
	WebhookPath   string
	WebhookSecret string
}

// Server wires the fiber routes. dedup and signer may be nil.
type Server struct {
	log        *slog.Logger
	opts       Options
	handler    UpdateHandler
	dedup      contract.Deduplicator
	signer     *auth.Signer
	lobby      LobbyStats
	outcomes   OutcomeStats
	monitoring *observability.MonitoringManager
}

func NewServer(
	log *slog.Logger,
	opts Options,
	handler UpdateHandler,
	dedup contract.Deduplicator,
	signer *auth.Signer,
	lobby LobbyStats,
	outcomes OutcomeStats,
	monitoring *observability.MonitoringManager,
) *Server {
	return &Server{
		log:        log,
		opts:       opts,
		handler:    handler,
		dedup:      dedup,
		signer:     signer,
		lobby:      lobby,
		outcomes:   outcomes,
		monitoring: monitoring,
	}
}

// App builds the fiber application.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		CaseSensitive:         true,
		StrictRouting:         true,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Bot ishlayapti! ✅")
	})
	app.Post("/"+strings.TrimPrefix(s.opts.WebhookPath, "/"), s.webhook)

	admin := app.Group("/admin", s.requireOperator)
	admin.Get("/stats", s.stats)
	return app
}

// webhook always answers 200 once the update is read, so Telegram never
// redelivers an update that failed for reasons of our own.
func (s *Server) webhook(c *fiber.Ctx) error {
	if s.opts.WebhookSecret != "" && c.Get(SecretHeader) != s.opts.WebhookSecret {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid secret token")
	}

	var update telegram.Update
	if err := c.BodyParser(&update); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed update")
	}
	s.monitoring.IncrUpdatesReceived()

	ctx := c.UserContext()
	if s.dedup != nil {
		first, err := s.dedup.FirstSeen(ctx, update.UpdateID)
		switch {
		case err != nil:
			s.log.Warn("Dedup unavailable, processing update", "update_id", update.UpdateID, "error", err)
		case !first:
			s.monitoring.IncrUpdatesDuplicate()
			return c.SendString("!")
		}
	}

	if err := s.handler.Handle(ctx, update); err != nil {
		s.log.Error("Update handling failed", "update_id", update.UpdateID, "error", err)
	}
	return c.SendString("!")
}

func (s *Server) requireOperator(c *fiber.Ctx) error {
	if s.signer == nil {
		return fiber.NewError(fiber.StatusNotFound, "admin API disabled")
	}
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
	}
	claims, err := s.signer.ValidateToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		s.log.Debug("Admin token rejected", "error", err)
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}
	if !claims.HasRole(AdminRole) {
		return fiber.NewError(fiber.StatusForbidden, "admin role required")
	}
	c.Locals("operator", claims.Operator)
	return c.Next()
}

type StatsResponse struct {
	Lobby    lobby.Stats                   `json:"lobby"`
	Outcomes projection.OutcomeTotals      `json:"outcomes"`
	Process  observability.MonitoringStats `json:"process"`
}

func (s *Server) stats(c *fiber.Ctx) error {
	return c.JSON(StatsResponse{
		Lobby:    s.lobby.Stats(),
		Outcomes: s.outcomes.Totals(),
		Process:  s.monitoring.GetLatest(),
	})
}
