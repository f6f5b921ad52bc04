package database

import "context"

type txKey struct{}

// TxInfo is the transaction carried by a context. Owned is false when an
// inner unit of work joined a transaction started further up the stack.
type TxInfo struct {
	Tx    Transaction
	Owned bool
}

// WithTx stores transaction info in the context.
func WithTx(ctx context.Context, tx Transaction, owned bool) context.Context {
	return context.WithValue(ctx, txKey{}, TxInfo{Tx: tx, Owned: owned})
}

// TxInfoFromContext extracts the transaction info from the context.
func TxInfoFromContext(ctx context.Context) (TxInfo, bool) {
	info, ok := ctx.Value(txKey{}).(TxInfo)
	if !ok || info.Tx == nil {
		return TxInfo{}, false
	}
	return info, true
}

// InTx reports whether the context carries a transaction.
func InTx(ctx context.Context) bool {
	_, ok := TxInfoFromContext(ctx)
	return ok
}

// ExecutorFromContext returns the ambient transaction if there is one,
// otherwise the connection. Repositories must route every statement through
// it: the SQLite connection is single-threaded, so a statement issued on the
// pool while a transaction is open would wait forever.
func ExecutorFromContext(ctx context.Context, conn Connection) Executor {
	if info, ok := TxInfoFromContext(ctx); ok {
		return info.Tx
	}
	return conn
}
