package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mayankagarwal1234/Weather-chat-assistance/internal/assistant"
	"github.com/mayankagarwal1234/Weather-chat-assistance/internal/chat"
	"github.com/mayankagarwal1234/Weather-chat-assistance/internal/store"
)

var validate = validator.New()

// Deps bundles what the HTTP layer needs.
type Deps struct {
	Sessions     *store.SessionStore
	Orchestrator *chat.Orchestrator
	Assistant    chat.Assistant

	DefaultCity     string
	DefaultLanguage string
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	// The assistant proxy keeps its own error body shape ({error, details})
	// so it stays a drop-in for clients of the original endpoint.
	app.Post("/api/assistant", assistantProxyHandler(deps.Assistant))

	v1 := app.Group("/api/v1")

	v1.Post("/sessions", func(c *fiber.Ctx) error {
		var req createSessionRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
			}
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		city := req.City
		if city == "" {
			city = deps.DefaultCity
		}
		language := req.Language
		if language == "" {
			language = deps.DefaultLanguage
		}

		sess := chat.NewSession(uuid.NewString(), city, language)
		deps.Sessions.Put(sess)

		return c.Status(fiber.StatusCreated).JSON(sessionView(sess))
	})

	v1.Get("/sessions/:id", func(c *fiber.Ctx) error {
		sess, err := lookupSession(c, deps.Sessions)
		if err != nil {
			return err
		}
		return c.JSON(sessionView(sess))
	})

	v1.Patch("/sessions/:id", func(c *fiber.Ctx) error {
		sess, err := lookupSession(c, deps.Sessions)
		if err != nil {
			return err
		}

		var req updateSessionRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if req.City != "" {
			sess.SetCity(req.City)
		}
		if req.Language != "" {
			sess.SetLanguage(req.Language)
		}
		return c.JSON(sessionView(sess))
	})

	v1.Delete("/sessions/:id/messages", func(c *fiber.Ctx) error {
		sess, err := lookupSession(c, deps.Sessions)
		if err != nil {
			return err
		}
		sess.Clear()
		return c.JSON(sessionView(sess))
	})

	v1.Post("/sessions/:id/messages", func(c *fiber.Ctx) error {
		sess, err := lookupSession(c, deps.Sessions)
		if err != nil {
			return err
		}

		var req submitTurnRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result, err := deps.Orchestrator.HandleTurn(c.UserContext(), sess, chat.TurnInput{
			Content: req.Content,
			Source:  req.Source,
		})
		if err != nil {
			var vErr *chat.ValidationError
			if errors.As(err, &vErr) {
				return fiber.NewError(fiber.StatusBadRequest, vErr.Reason)
			}
			if errors.Is(err, chat.ErrTurnInFlight) {
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to process turn")
		}

		return c.JSON(fiber.Map{
			"messages": result.Appended,
			"failed":   result.Failed,
			"city":     result.City,
		})
	})
}

// assistantProxyHandler implements the provider-hiding proxy endpoint: it
// attaches the hidden key and grounding tool, and mirrors upstream failures.
func assistantProxyHandler(as chat.Assistant) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req assistantProxyRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		reply, err := as.Generate(c.UserContext(), assistant.Request{
			PromptText:        req.PromptText,
			SystemInstruction: req.SystemInstruction,
			Language:          req.Language,
		})
		if err != nil {
			return writeAssistantError(c, err)
		}

		return c.JSON(reply)
	}
}

// writeAssistantError maps assistant failures onto the proxy's JSON error
// contract. The endpoint never lets a fault escape without a JSON body.
func writeAssistantError(c *fiber.Ctx, err error) error {
	if errors.Is(err, assistant.ErrAPIKeyMissing) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server-side Gemini API key not configured.",
		})
	}

	var upstream *assistant.UpstreamError
	if errors.As(err, &upstream) {
		return c.Status(upstream.Status).JSON(fiber.Map{
			"error":   upstream.Message,
			"details": upstream.Details,
		})
	}

	if errors.Is(err, assistant.ErrUnparsableReply) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not parse response from Gemini API.",
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error during Gemini call.",
	})
}

func lookupSession(c *fiber.Ctx, sessions *store.SessionStore) (*chat.Session, error) {
	sess, err := sessions.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "no session with that id")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load session")
	}
	return sess, nil
}

func sessionView(sess *chat.Session) fiber.Map {
	return fiber.Map{
		"id":       sess.ID,
		"city":     sess.City(),
		"language": sess.Language(),
		"messages": sess.Messages(),
	}
}

// createSessionRequest starts a conversation; both fields are optional.
type createSessionRequest struct {
	City     string `json:"city"`
	Language string `json:"language" validate:"omitempty,oneof=en-US ja-JP"`
}

// updateSessionRequest edits the city field or the language selector.
type updateSessionRequest struct {
	City     string `json:"city"`
	Language string `json:"language" validate:"omitempty,oneof=en-US ja-JP"`
}

// submitTurnRequest is one user turn, typed or transcribed.
type submitTurnRequest struct {
	Content string `json:"content" validate:"required"`
	Source  string `json:"source" validate:"omitempty,oneof=text voice"`
}

// assistantProxyRequest mirrors the original proxy body.
type assistantProxyRequest struct {
	PromptText        string `json:"promptText" validate:"required"`
	SystemInstruction string `json:"systemInstruction"`
	Language          string `json:"language"`
}
