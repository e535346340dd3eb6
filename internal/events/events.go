package events

// Event names. One name per signal; payloads are the typed structs below.
const (
	TransactionsChangedName = "transactions-changed"
	IncomeChangedName       = "income-changed"
	BalancesChangedName     = "account-balances-changed"
)

// Event is a broadcast notification consumed only within the running process
type Event interface {
	EventName() string
}

// TransactionsChanged fires after a fixed or discretionary expense ledger
// mutation has been persisted.
type TransactionsChanged struct {
	Section string
}

func (TransactionsChanged) EventName() string { return TransactionsChangedName }

// IncomeChanged fires after an income ledger mutation has been persisted
type IncomeChanged struct{}

func (IncomeChanged) EventName() string { return IncomeChangedName }

// BalancesChanged carries the freshly derived account balance map. Listeners
// mounted after emission must re-read current state instead of relying on
// having seen this payload.
type BalancesChanged struct {
	Balances map[string]float64
}

func (BalancesChanged) EventName() string { return BalancesChangedName }
