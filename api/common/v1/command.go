// Package commonv1 holds messages shared by the ledger and txlog contracts.
package commonv1

// TransactionCommand is the write sent identically to both backends for one
// facade transaction.
type TransactionCommand struct {
	TransactionID string  `json:"transaction_id"`
	UserID        string  `json:"user_id"`
	Amount        float64 `json:"amount"`
}

func (c *TransactionCommand) GetTransactionID() string {
	if c == nil {
		return ""
	}
	return c.TransactionID
}

func (c *TransactionCommand) GetUserID() string {
	if c == nil {
		return ""
	}
	return c.UserID
}

func (c *TransactionCommand) GetAmount() float64 {
	if c == nil {
		return 0
	}
	return c.Amount
}

// UserRequest identifies one user for a read.
type UserRequest struct {
	UserID string `json:"user_id"`
}

func (r *UserRequest) GetUserID() string {
	if r == nil {
		return ""
	}
	return r.UserID
}
