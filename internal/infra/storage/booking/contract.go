package booking

import "github.com/T-Nieb/OPD-BookingService/pkg/txmanager"

// DBExecutor is what the repository runs queries against (*sql.DB outside a
// transaction; the transaction manager swaps in the *sql.Tx via context)
type DBExecutor = txmanager.Executor
