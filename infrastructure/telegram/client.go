package telegram

import (
	"anon-chat/contract"
	"anon-chat/domain"
	"anon-chat/domain/event"
	"anon-chat/errors"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

var _ contract.Dispatcher = (*Client)(nil)

const defaultCallTimeout = 10 * time.Second

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// FailureCounter is told about every failed API call.
type FailureCounter interface {
	IncrDeliveryFailures()
}

// Client talks to the Bot API and delivers core actions.
type Client struct {
	log      *slog.Logger
	baseURL  string
	renderer Renderer
	failures FailureCounter
}

// NewClient builds a client for apiURL, usually https://api.telegram.org.
func NewClient(log *slog.Logger, apiURL, token string, renderer Renderer, failures FailureCounter) *Client {
	return &Client{
		log:      log,
		baseURL:  fmt.Sprintf("%s/bot%s", strings.TrimRight(apiURL, "/"), token),
		renderer: renderer,
		failures: failures,
	}
}

// Deliver sends every action addressed to to, in order, and stops at the first failure.
func (c *Client) Deliver(ctx context.Context, to domain.ParticipantID, actions []event.Action) error {
	requests, err := c.renderer.Render(to, actions)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrDeliveryFailed, err)
	}
	for _, r := range requests {
		if err := c.Call(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// Call posts one request. Any transport or API failure wraps ErrDeliveryFailed.
func (c *Client) Call(ctx context.Context, r Request) error {
	if err := ctx.Err(); err != nil {
		return c.fail(r.Method, err.Error())
	}
	timeout := defaultCallTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}

	var resp apiResponse
	agent := fiber.Post(c.baseURL + "/" + r.Method).JSON(r.Params).Timeout(timeout)
	code, _, errs := agent.Struct(&resp)
	if len(errs) > 0 {
		return c.fail(r.Method, errs[0].Error())
	}
	if code != fiber.StatusOK || !resp.OK {
		return c.fail(r.Method, fmt.Sprintf("status %d: %s", code, resp.Description))
	}
	return nil
}

// AnswerCallback stops the loading indicator of an inline button.
func (c *Client) AnswerCallback(ctx context.Context, callbackID string) error {
	return c.Call(ctx, Request{Method: "answerCallbackQuery", Params: map[string]any{"callback_query_id": callbackID}})
}

// SetWebhook registers url with Telegram. secret is echoed back on every update.
func (c *Client) SetWebhook(ctx context.Context, url, secret string) error {
	params := map[string]any{"url": url, "allowed_updates": []string{"message", "callback_query"}}
	if secret != "" {
		params["secret_token"] = secret
	}
	return c.Call(ctx, Request{Method: "setWebhook", Params: params})
}

func (c *Client) fail(method, reason string) error {
	if c.failures != nil {
		c.failures.IncrDeliveryFailures()
	}
	c.log.Debug("Bot API call failed", "method", method, "reason", reason)
	return fmt.Errorf("%w: %s: %s", errors.ErrDeliveryFailed, method, reason)
}
