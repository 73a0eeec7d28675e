package resource

import (
	"context"
	"database/sql"

	"github.com/batiparc/BTP-ReservationService/pkg/dbmetrics"
)

// Reuse the dbmetrics executor interfaces so the repository runs over
// *sql.DB, the instrumented wrapper, or an open transaction alike.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner starts transactions. Satisfied by *dbmetrics.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}
