package reconciler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/appdotbuilder/kasir-digital/internal/config"
	"github.com/appdotbuilder/kasir-digital/internal/domain"
	"github.com/appdotbuilder/kasir-digital/internal/pg"
)

// A purchase row can be left pending forever if the process dies between the
// committed debit and the recorded provider outcome. The reconciler sweeps
// such rows after a cutoff age, refunds the held amount and marks them failed.

type TransactionRepo interface {
	FindStalePending(ctx context.Context, cutoff time.Time, limit int) ([]domain.Transaction, error)
	SetOutcome(ctx context.Context, transactionID int, status string, providerReference *string) (*domain.Transaction, error)
}

type WalletRepo interface {
	Credit(ctx context.Context, walletID int, amount decimal.Decimal) (*domain.Wallet, error)
}

const sweepLimit = 1000

var inFlight sync.Map

type Service struct {
	transactionRepo TransactionRepo
	walletRepo      WalletRepo
	txManager       pg.TXManager
	workerPool      WorkerPoolI
	interval        time.Duration
	cutoff          time.Duration
}

func New(cfg *config.Config, transactionRepo TransactionRepo, walletRepo WalletRepo, txManager pg.TXManager) *Service {
	return &Service{
		transactionRepo: transactionRepo,
		walletRepo:      walletRepo,
		txManager:       txManager,
		workerPool:      NewWorkerPool(10),
		interval:        cfg.ReconcileInterval,
		cutoff:          cfg.PendingCutoff,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Reconciler started",
		zap.Duration("interval", s.interval),
		zap.Duration("cutoff", s.cutoff),
	)
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping reconciler")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Service) sweep(ctx context.Context) {
	stale, err := s.transactionRepo.FindStalePending(ctx, time.Now().Add(-s.cutoff), sweepLimit)
	if err != nil {
		zap.L().Error("Failed to fetch stale pending transactions", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, transaction := range stale {
		transaction := transaction

		if _, loaded := inFlight.LoadOrStore(transaction.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer inFlight.Delete(transaction.ID)
				return s.reconcile(ctx, transaction)
			})
			if err != nil {
				inFlight.Delete(transaction.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error reconciling transactions", zap.Error(err))
	}
}

// reconcile refunds the debit and marks the purchase failed in one database
// transaction, so a crash mid-reconcile cannot duplicate the refund.
func (s *Service) reconcile(ctx context.Context, transaction domain.Transaction) error {
	zap.L().Warn("Reconciling stuck pending transaction",
		zap.Int("transactionID", transaction.ID),
		zap.String("transactionCode", transaction.TransactionCode),
		zap.String("amount", transaction.Amount.String()),
	)

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := s.walletRepo.Credit(ctx, transaction.WalletID, transaction.Amount); err != nil {
			return fmt.Errorf("failed to refund wallet %d: %w", transaction.WalletID, err)
		}
		if _, err := s.transactionRepo.SetOutcome(ctx, transaction.ID, domain.TransactionStatusFailed, nil); err != nil {
			return fmt.Errorf("failed to mark transaction %d failed: %w", transaction.ID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	zap.L().Info("Transaction reconciled",
		zap.Int("transactionID", transaction.ID),
		zap.String("transactionCode", transaction.TransactionCode),
	)
	return nil
}
