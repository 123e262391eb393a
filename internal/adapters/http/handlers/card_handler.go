package handlers

import (
	"bankdesk/internal/adapters/http/middleware"
	"bankdesk/internal/core/services"
	"bankdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CardHandler handles card endpoints
type CardHandler struct {
	cardService *services.CardService
}

// NewCardHandler creates a new card handler
func NewCardHandler(cardService *services.CardService) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// IssueCardRequest represents a card issuance body. Credit cards take
// credit_limit, debit cards take withdrawal_limit; never both.
type IssueCardRequest struct {
	AccountID       uint    `json:"account_id"`
	CardType        string  `json:"card_type"`
	CreditLimit     *string `json:"credit_limit"`
	WithdrawalLimit *string `json:"withdrawal_limit"`
}

// Issue creates a card against an account
func (h *CardHandler) Issue(c *fiber.Ctx) error {
	var req IssueCardRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := services.IssueCardInput{
		AccountID: req.AccountID,
		CardType:  req.CardType,
	}
	if req.CreditLimit != nil {
		limit, err := decimal.NewFromString(*req.CreditLimit)
		if err != nil {
			return response.BadRequest(c, "Invalid credit limit")
		}
		input.CreditLimit = &limit
	}
	if req.WithdrawalLimit != nil {
		limit, err := decimal.NewFromString(*req.WithdrawalLimit)
		if err != nil {
			return response.BadRequest(c, "Invalid withdrawal limit")
		}
		input.WithdrawalLimit = &limit
	}

	card, err := h.cardService.Issue(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return response.Created(c, "Card issued", card)
}

// MyCards returns the authenticated customer's cards
func (h *CardHandler) MyCards(c *fiber.Ctx) error {
	customerID := middleware.UserID(c)

	cards, err := h.cardService.CustomerCards(c.Context(), customerID)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Cards retrieved", cards)
}

// BranchCards returns cards issued against the employee's branch
func (h *CardHandler) BranchCards(c *fiber.Ctx) error {
	branchID := middleware.BranchID(c)

	cards, err := h.cardService.BranchCards(c.Context(), branchID)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Cards retrieved", cards)
}

// Block blocks an active card
func (h *CardHandler) Block(c *fiber.Ctx) error {
	cardID, err := c.ParamsInt("id")
	if err != nil || cardID < 1 {
		return response.BadRequest(c, "Invalid card id")
	}

	card, err := h.cardService.Block(c.Context(), uint(cardID))
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Card blocked", card)
}
