package pg

import (
	"context"
	"database/sql"
	"time"

	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	trmcontext "github.com/avito-tech/go-transaction-manager/trm/v2/context"
	trmmanager "github.com/avito-tech/go-transaction-manager/trm/v2/manager"
)

var ctxGetter = trmsql.DefaultCtxGetter

// TxManager runs a PR ingest write (state change plus event row) in one
// transaction. Repositories join it through conn.
type TxManager struct {
	tm      trm.Manager
	timeout time.Duration
}

// NewTxManager bounds every transaction by timeout; zero leaves the caller's
// deadline alone.
func NewTxManager(db *sql.DB, timeout time.Duration) *TxManager {
	mgr := trmmanager.Must(
		trmsql.NewDefaultFactory(db),
		trmmanager.WithCtxManager(trmcontext.DefaultManager),
	)

	return &TxManager{tm: mgr, timeout: timeout}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	return m.tm.Do(ctx, fn)
}

// conn returns the transaction bound to ctx, or db outside of WithinTx.
func conn(ctx context.Context, db *sql.DB) trmsql.Tr {
	return ctxGetter.DefaultTrOrDB(ctx, db)
}
