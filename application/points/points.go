package points

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Psybah/housify-expo-sub000/cmd/config"
	"github.com/Psybah/housify-expo-sub000/constant"
	"github.com/Psybah/housify-expo-sub000/model"
	pointsrepo "github.com/Psybah/housify-expo-sub000/repository/points"
	txrepo "github.com/Psybah/housify-expo-sub000/repository/tx"
	userrepo "github.com/Psybah/housify-expo-sub000/repository/user"
	"github.com/Psybah/housify-expo-sub000/thirdparty/payment"
	"github.com/Psybah/housify-expo-sub000/thirdparty/rabbitmq"
	"github.com/Psybah/housify-expo-sub000/utils/errors"
	"github.com/Psybah/housify-expo-sub000/utils/logger"
)

// PointsApp is the ledger: every balance change flows through Record or
// RecordTx, which write the transaction row and the balance delta as one
// unit. A failed debit persists nothing.
type PointsApp interface {
	Record(ctx context.Context, req *model.RecordRequest) (*model.PointsTransaction, error)
	RecordTx(ctx context.Context, tx *sqlx.Tx, req *model.RecordRequest) (*model.PointsTransaction, error)
	Announce(t *model.PointsTransaction)
	ListForUser(ctx context.Context, userID uint64) (*model.TransactionListResponse, error)
	Purchase(ctx context.Context, userID uint64, req *model.PurchaseRequest) (*model.PointsTransaction, error)
	ListPackages(ctx context.Context) ([]model.PointsPackage, error)
}

type pointsAppImpl struct {
	config     *config.Config
	txRepo     txrepo.TxRepository
	userRepo   userrepo.UserRepository
	pointsRepo pointsrepo.PointsRepository
	payment    payment.Client
	publisher  *rabbitmq.Publisher
}

func NewPointsApp(config *config.Config, txRepo txrepo.TxRepository, userRepo userrepo.UserRepository, pointsRepo pointsrepo.PointsRepository, paymentClient payment.Client, publisher *rabbitmq.Publisher) PointsApp {
	return &pointsAppImpl{
		config:     config,
		txRepo:     txRepo,
		userRepo:   userRepo,
		pointsRepo: pointsRepo,
		payment:    paymentClient,
		publisher:  publisher,
	}
}

// balanceDelta maps the transaction type onto the signed balance change.
func balanceDelta(t constant.TransactionType, amount int64) int64 {
	if t == constant.TransactionSpent {
		return -amount
	}
	return amount
}

// RecordTx writes one ledger entry inside the caller's transaction. It
// locks the user row, applies the signed delta and inserts the
// transaction row; the caller's commit or rollback covers both writes.
func (s *pointsAppImpl) RecordTx(ctx context.Context, tx *sqlx.Tx, req *model.RecordRequest) (*model.PointsTransaction, error) {
	if req.Amount <= 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	user, err := s.userRepo.GetForUpdateTx(ctx, tx, req.UserID)
	if err != nil {
		logger.Error("[RecordTx] lock user", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	delta := balanceDelta(req.Type, req.Amount)
	if delta < 0 {
		balance := user.FreePoints
		if req.PointsType == constant.PointsPaid {
			balance = user.PaidPoints
		}
		if balance < req.Amount {
			return nil, errors.SetCustomError(constant.ErrInsufficientPoints)
		}
	}

	if err := s.userRepo.AddBalanceTx(ctx, tx, req.UserID, delta, req.PointsType); err != nil {
		if cerr, ok := err.(errors.CustomError); ok {
			return nil, cerr
		}
		logger.Error("[RecordTx] update balance", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	id, err := s.pointsRepo.InsertTransactionTx(ctx, tx, req)
	if err != nil {
		logger.Error("[RecordTx] insert transaction", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.PointsTransaction{
		ID:               id,
		UserID:           req.UserID,
		Amount:           req.Amount,
		Type:             req.Type,
		PointsType:       req.PointsType,
		Description:      req.Description,
		RelatedListingID: req.RelatedListingID,
	}, nil
}

// Record wraps RecordTx in its own transaction and announces the result.
func (s *pointsAppImpl) Record(ctx context.Context, req *model.RecordRequest) (*model.PointsTransaction, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[Record] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	transaction, err := s.RecordTx(ctx, tx, req)
	if err != nil {
		return nil, err
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[Record] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.Announce(transaction)
	return transaction, nil
}

// Announce publishes a transaction-recorded event. Best effort: the
// ledger is already committed, a lost event only costs a notification.
func (s *pointsAppImpl) Announce(t *model.PointsTransaction) {
	if s.publisher == nil || t == nil {
		return
	}
	msg := rabbitmq.PointsEventMessage{
		TransactionID:    t.ID,
		UserID:           t.UserID,
		Amount:           t.Amount,
		Type:             t.Type,
		PointsType:       t.PointsType,
		Description:      t.Description,
		RelatedListingID: t.RelatedListingID,
		CreatedAt:        t.CreatedAt,
	}
	if err := s.publisher.PublishPointsEvent(msg); err != nil {
		logger.Error("[Announce] publish points event", zap.String("error", err.Error()))
	}
}

func (s *pointsAppImpl) ListForUser(ctx context.Context, userID uint64) (*model.TransactionListResponse, error) {
	items, err := s.pointsRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Error("[ListForUser] list transactions", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.TransactionListResponse{
		Items:      items,
		TotalCount: len(items),
	}, nil
}

// Purchase charges the payment collaborator for a package and credits the
// paid pool. Payment failures surface as collaborator errors and leave
// the ledger untouched.
func (s *pointsAppImpl) Purchase(ctx context.Context, userID uint64, req *model.PurchaseRequest) (*model.PointsTransaction, error) {
	pkg, err := s.pointsRepo.GetPackage(ctx, req.PackageID)
	if err != nil {
		logger.Error("[Purchase] get package", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if pkg == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if err := s.payment.Charge(ctx, pkg.Price, pkg.ID); err != nil {
		logger.Error("[Purchase] charge payment", zap.String("error", err.Error()), zap.Uint64("package_id", pkg.ID))
		return nil, errors.SetCustomError(constant.ErrCollaborator)
	}

	return s.Record(ctx, &model.RecordRequest{
		UserID:      userID,
		Amount:      pkg.Amount + pkg.Bonus,
		Type:        constant.TransactionPurchased,
		PointsType:  constant.PointsPaid,
		Description: "Purchased package: " + pkg.Name,
	})
}

func (s *pointsAppImpl) ListPackages(ctx context.Context) ([]model.PointsPackage, error) {
	items, err := s.pointsRepo.ListPackages(ctx)
	if err != nil {
		logger.Error("[ListPackages] list packages", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}
