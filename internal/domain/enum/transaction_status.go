package enum

// TransactionStatus classifies a ledger entry. Sales carry one of the
// payment method tags; debt repayments carry StatusPayment and a negative
// amount; StatusVoid marks entries excluded from all financial aggregates.
type TransactionStatus string

const (
	StatusCash    TransactionStatus = "Cash"
	StatusCard    TransactionStatus = "Card"
	StatusCredit  TransactionStatus = "Credit"
	StatusPayment TransactionStatus = "Payment"
	StatusVoid    TransactionStatus = "Void"
)

// SaleStatuses lists the tags a checkout may carry.
var SaleStatuses = []TransactionStatus{StatusCash, StatusCard, StatusCredit}

// IsSale reports whether the status is a valid payment method for checkout.
func (s TransactionStatus) IsSale() bool {
	for _, sale := range SaleStatuses {
		if s == sale {
			return true
		}
	}
	return false
}

// Valid reports whether the status belongs to the known set.
func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusCash, StatusCard, StatusCredit, StatusPayment, StatusVoid:
		return true
	}
	return false
}

func (s TransactionStatus) String() string {
	return string(s)
}
