// Package server exposes the services over a JSON HTTP API. Handlers do
// request decoding and error mapping only; all business rules live in the
// service and calculator packages.
package server

import (
	"errors"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/splitfool/splitfool/internal/auth"
	"github.com/splitfool/splitfool/internal/models"
	"github.com/splitfool/splitfool/internal/money"
	"github.com/splitfool/splitfool/internal/service"
)

// errBadRequest tags request decode/parse failures so statusFor maps them
// to 400.
var errBadRequest = errors.New("bad request")

// Handler holds the services the HTTP API fronts.
type Handler struct {
	users    *service.UserService
	bills    *service.BillService
	balances *service.BalanceService

	jwt               *auth.JWTManager
	adminPasswordHash string
}

// New creates a Handler over the given services.
func New(
	users *service.UserService,
	bills *service.BillService,
	balances *service.BalanceService,
	jwt *auth.JWTManager,
	adminPasswordHash string,
) *Handler {
	return &Handler{
		users:             users,
		bills:             bills,
		balances:          balances,
		jwt:               jwt,
		adminPasswordHash: adminPasswordHash,
	}
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// --- auth ---

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := auth.CheckPassword(h.adminPasswordHash, req.Password); err != nil {
		writeError(w, err)
		return
	}
	token, err := h.jwt.Generate("admin")
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

// --- users ---

type userResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt}
}

type userRequest struct {
	Name string `json:"name"`
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	user, err := h.users.Create(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) renameUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	user, err := h.users.Rename(r.Context(), r.PathValue("id"), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) userBalances(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if _, err := h.users.Get(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}
	debts, credits, err := h.balances.ForUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]balanceResponse{
		"debts":   toBalanceResponses(debts),
		"credits": toBalanceResponses(credits),
	})
}

// --- bills ---

type assignmentRequest struct {
	UserID   string `json:"user_id"`
	Fraction string `json:"fraction"`
}

type itemRequest struct {
	Description string              `json:"description"`
	Cost        string              `json:"cost"`
	Assignments []assignmentRequest `json:"assignments"`
}

type billRequest struct {
	PayerID     string        `json:"payer_id"`
	Description string        `json:"description"`
	Tax         string        `json:"tax"`
	Items       []itemRequest `json:"items"`
}

// toBill converts the wire representation into a domain bill draft. Amounts
// and fractions arrive as strings so nothing on the wire path goes through
// float64.
func (req *billRequest) toBill() (*models.Bill, error) {
	bill := &models.Bill{
		PayerID:     req.PayerID,
		Description: req.Description,
	}

	if req.Tax != "" {
		tax, err := money.Parse(req.Tax)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		bill.Tax = tax
	}

	for _, item := range req.Items {
		cost, err := money.Parse(item.Cost)
		if err != nil {
			return nil, fmt.Errorf("%w: item %q: %v", errBadRequest, item.Description, err)
		}
		var assignments []models.Assignment
		for _, a := range item.Assignments {
			fraction, err := decimal.NewFromString(a.Fraction)
			if err != nil {
				return nil, fmt.Errorf("%w: fraction %q: %v", errBadRequest, a.Fraction, err)
			}
			assignments = append(assignments, models.Assignment{
				UserID:   a.UserID,
				Fraction: fraction,
			})
		}
		bill.Items = append(bill.Items, models.Item{
			Description: item.Description,
			Cost:        cost,
			Assignments: assignments,
		})
	}
	return bill, nil
}

type previewResponse struct {
	Description string            `json:"description"`
	PayerID     string            `json:"payer_id"`
	Subtotal    string            `json:"subtotal"`
	Tax         string            `json:"tax"`
	Total       string            `json:"total"`
	Shares      map[string]string `json:"shares"`
}

func toPreviewResponse(p *service.BillPreview) previewResponse {
	shares := make(map[string]string, len(p.Shares))
	for userID, amount := range p.Shares {
		shares[userID] = amount.String()
	}
	return previewResponse{
		Description: p.Description,
		PayerID:     p.PayerID,
		Subtotal:    p.Subtotal.String(),
		Tax:         p.Tax.String(),
		Total:       p.Total.String(),
		Shares:      shares,
	}
}

type billResponse struct {
	ID          string            `json:"id"`
	PayerID     string            `json:"payer_id"`
	Description string            `json:"description"`
	Tax         string            `json:"tax"`
	Subtotal    string            `json:"subtotal"`
	Total       string            `json:"total"`
	CreatedAt   int64             `json:"created_at"`
	Items       []itemResponse    `json:"items"`
	Shares      map[string]string `json:"shares,omitempty"`
}

type itemResponse struct {
	ID          string               `json:"id"`
	Description string               `json:"description"`
	Cost        string               `json:"cost"`
	Assignments []assignmentResponse `json:"assignments"`
}

type assignmentResponse struct {
	UserID   string `json:"user_id"`
	Fraction string `json:"fraction"`
}

func toBillResponse(bill *models.Bill, shares map[string]money.Money) billResponse {
	resp := billResponse{
		ID:          bill.ID,
		PayerID:     bill.PayerID,
		Description: bill.Description,
		Tax:         bill.Tax.String(),
		Subtotal:    bill.Subtotal().Round().String(),
		Total:       bill.Total().Round().String(),
		CreatedAt:   bill.CreatedAt,
	}
	for _, item := range bill.Items {
		ir := itemResponse{
			ID:          item.ID,
			Description: item.Description,
			Cost:        item.Cost.String(),
		}
		for _, a := range item.Assignments {
			ir.Assignments = append(ir.Assignments, assignmentResponse{
				UserID:   a.UserID,
				Fraction: a.Fraction.String(),
			})
		}
		resp.Items = append(resp.Items, ir)
	}
	if shares != nil {
		resp.Shares = make(map[string]string, len(shares))
		for userID, amount := range shares {
			resp.Shares[userID] = amount.String()
		}
	}
	return resp
}

func (h *Handler) previewBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	bill, err := req.toBill()
	if err != nil {
		writeError(w, err)
		return
	}
	preview, err := h.bills.Preview(r.Context(), bill)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPreviewResponse(preview))
}

func (h *Handler) createBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	bill, err := req.toBill()
	if err != nil {
		writeError(w, err)
		return
	}
	created, err := h.bills.Create(r.Context(), bill)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBillResponse(created, nil))
}

func (h *Handler) listBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.bills.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]billResponse, 0, len(bills))
	for _, bill := range bills {
		resp = append(resp, toBillResponse(bill, nil))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getBill(w http.ResponseWriter, r *http.Request) {
	bill, shares, err := h.bills.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBillResponse(bill, shares))
}

// --- balances and settlements ---

type balanceResponse struct {
	DebtorID   string `json:"debtor_id"`
	CreditorID string `json:"creditor_id"`
	Amount     string `json:"amount"`
}

func toBalanceResponses(balances []models.Balance) []balanceResponse {
	resp := make([]balanceResponse, 0, len(balances))
	for _, b := range balances {
		resp = append(resp, balanceResponse{
			DebtorID:   b.DebtorID,
			CreditorID: b.CreditorID,
			Amount:     b.Amount.String(),
		})
	}
	return resp
}

func (h *Handler) listBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.balances.Outstanding(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBalanceResponses(balances))
}

type settlementRequest struct {
	Note string `json:"note"`
}

type settlementResponse struct {
	ID        string `json:"id"`
	SettledAt int64  `json:"settled_at"`
	Note      string `json:"note,omitempty"`
}

func (h *Handler) createSettlement(w http.ResponseWriter, r *http.Request) {
	var req settlementRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	settlement, err := h.balances.SettleAll(r.Context(), req.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, settlementResponse{
		ID:        settlement.ID,
		SettledAt: settlement.SettledAt,
		Note:      settlement.Note,
	})
}

func (h *Handler) listSettlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := h.balances.Settlements(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]settlementResponse, 0, len(settlements))
	for _, s := range settlements {
		resp = append(resp, settlementResponse{ID: s.ID, SettledAt: s.SettledAt, Note: s.Note})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
