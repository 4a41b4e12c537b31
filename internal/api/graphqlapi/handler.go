package graphqlapi

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/dennis-koster/dlf-graphql-example/pkg/util/errorutil"
)

// Handler serves the executor over fiber.
type Handler struct {
	executor *Executor
}

// NewHandler constructs handler.
func NewHandler(executor *Executor) *Handler {
	return &Handler{executor: executor}
}

// Post handles POST /graphql with a JSON request body.
func (h *Handler) Post(c *fiber.Ctx) error {
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid graphql request body", nil)
	}
	return h.serve(c, req)
}

// Get handles GET /graphql?query=...&variables=...
func (h *Handler) Get(c *fiber.Ctx) error {
	req := Request{
		Query:         c.Query("query"),
		OperationName: c.Query("operationName"),
	}
	if raw := c.Query("variables"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
			return errorutil.NewValidationError("variables must be a JSON object", nil)
		}
	}
	return h.serve(c, req)
}

func (h *Handler) serve(c *fiber.Ctx, req Request) error {
	if req.Query == "" {
		return errorutil.NewValidationError("query is required", nil)
	}
	return c.JSON(h.executor.Execute(c.UserContext(), req))
}
