package handler

import (
	"net/http"

	"transactions-api/internal/ledger"
	"transactions-api/internal/middleware"
	"transactions-api/internal/models"
	"transactions-api/internal/session"
	"transactions-api/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionHandler serves the transaction endpoints.
type TransactionHandler struct {
	Ledger  *ledger.Ledger
	Session *session.Provider
}

func NewTransactionHandler(l *ledger.Ledger, p *session.Provider) *TransactionHandler {
	return &TransactionHandler{
		Ledger:  l,
		Session: p,
	}
}

type createTransactionReq struct {
	Title string `json:"title" binding:"required"`
	// pointer so that an absent amount fails binding; a non-pointer
	// decimal would bind its zero value and slip past "required"
	Amount *decimal.Decimal `json:"amount" binding:"required"`
	Type   string           `json:"type" binding:"required,oneof=credit debit"`
}

// Create appends a transaction for the caller's session, issuing a fresh
// session cookie first if the request carried none. Validation happens
// entirely here; the ledger trusts the declared type and magnitude.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req createTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID, isNew := h.Session.ResolveOrIssue(h.Session.FromRequest(c))
	if isNew {
		h.Session.Issue(c, sessionID)
	}

	tx, err := h.Ledger.Append(c.Request.Context(), sessionID, req.Title, models.TxType(req.Type), *req.Amount)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "could not save transaction")
		return
	}

	// the reference wire shape echoes the row wrapped in an array
	c.JSON(http.StatusCreated, []models.Transaction{tx})
}

// List returns all transactions belonging to the caller's session.
func (h *TransactionHandler) List(c *gin.Context) {
	sessionID := c.GetString(middleware.SessionKey)

	txs, err := h.Ledger.ListBySession(c.Request.Context(), sessionID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "could not list transactions")
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": txs,
	})
}

// Get fetches one transaction by id. Deliberately unscoped: anyone
// holding a transaction's UUID may read it, matching the bearer trust
// model of the rest of the API.
func (h *TransactionHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		util.Error(c, http.StatusBadRequest, "id must be a valid UUID")
		return
	}

	tx, err := h.Ledger.GetByID(c.Request.Context(), id)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "could not get transaction")
		return
	}

	// tx is nil (-> null) when the id does not exist
	c.JSON(http.StatusOK, gin.H{
		"transaction": tx,
	})
}

// Summary returns the session's balance, recomputed from the rows.
func (h *TransactionHandler) Summary(c *gin.Context) {
	sessionID := c.GetString(middleware.SessionKey)

	summary, err := h.Ledger.SumBySession(c.Request.Context(), sessionID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "could not compute summary")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
	})
}
