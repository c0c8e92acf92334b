package common

const (
	DefaultBalanceExchange = "relay_balance"

	RoutingKeyBalanceOK      = "relay.balance.ok"
	RoutingKeyBalanceArrears = "relay.balance.arrears"

	// relay owners pay for and later share their relays from the curator page
	CuratorPath = "/curator"
)
