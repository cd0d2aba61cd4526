package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/QuizDuel_Go/internal/logger"
)

// ErrTxClosed is returned by in-memory transactions after Commit or Rollback.
// The postgres adapter surfaces pgx.ErrTxClosed instead.
var ErrTxClosed = errors.New("tx is closed")

// Tx is a unit of work that ends in exactly one Commit or Rollback
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// SafeRollback is deferred after Begin. Rolling back a finished transaction is
// expected and stays quiet; anything else is logged.
func SafeRollback(ctx context.Context, tx Tx) {
	err := tx.Rollback(ctx)
	if err == nil || errors.Is(err, ErrTxClosed) || errors.Is(err, pgx.ErrTxClosed) {
		return
	}
	logger.FromContext(ctx).Error(LogMsgRollbackFailed, "error", err)
}

// LogMsgRollbackFailed is logged when a rollback fails for a live transaction
const LogMsgRollbackFailed = "Transaction rollback failed"
