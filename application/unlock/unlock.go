package unlock

import (
	"context"

	"go.uber.org/zap"

	apppoints "github.com/Psybah/housify-expo-sub000/application/points"
	"github.com/Psybah/housify-expo-sub000/constant"
	"github.com/Psybah/housify-expo-sub000/model"
	listingrepo "github.com/Psybah/housify-expo-sub000/repository/listing"
	redisrepo "github.com/Psybah/housify-expo-sub000/repository/redis"
	txrepo "github.com/Psybah/housify-expo-sub000/repository/tx"
	userrepo "github.com/Psybah/housify-expo-sub000/repository/user"
	"github.com/Psybah/housify-expo-sub000/utils/errors"
	"github.com/Psybah/housify-expo-sub000/utils/logger"
)

// UnlockApp gates a listing's landlord contact payload. A (user, listing)
// pair is either locked or unlocked; the only transition is a paid Unlock,
// and owners bypass the gate entirely.
type UnlockApp interface {
	IsUnlocked(ctx context.Context, userID, listingID uint64) (bool, error)
	Unlock(ctx context.Context, userID, listingID uint64) (*model.UnlockResult, error)
	GetContactDetails(ctx context.Context, userID, listingID uint64) (*model.LandlordContact, error)
}

type unlockAppImpl struct {
	txRepo      txrepo.TxRepository
	userRepo    userrepo.UserRepository
	listingRepo listingrepo.ListingRepository
	redisRepo   redisrepo.Repository
	pointsApp   apppoints.PointsApp
}

func NewUnlockApp(txRepo txrepo.TxRepository, userRepo userrepo.UserRepository, listingRepo listingrepo.ListingRepository, redisRepo redisrepo.Repository, pointsApp apppoints.PointsApp) UnlockApp {
	return &unlockAppImpl{
		txRepo:      txRepo,
		userRepo:    userRepo,
		listingRepo: listingRepo,
		redisRepo:   redisRepo,
		pointsApp:   pointsApp,
	}
}

func (s *unlockAppImpl) IsUnlocked(ctx context.Context, userID, listingID uint64) (bool, error) {
	entity, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		logger.Error("[IsUnlocked] get listing", zap.String("error", err.Error()))
		return false, errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil {
		return false, errors.SetCustomError(constant.ErrNotFound)
	}
	if entity.SubmittedBy == userID {
		return true, nil
	}

	unlocked, err := s.listingRepo.IsUnlocked(ctx, userID, listingID)
	if err != nil {
		logger.Error("[IsUnlocked] check unlock set", zap.String("error", err.Error()))
		return false, errors.SetCustomError(constant.ErrInternal)
	}
	return unlocked, nil
}

// Unlock debits the listing's cost and inserts the unlock row as one
// transaction. Calling it twice charges once; an unaffordable unlock
// leaves balance, unlock set and ledger untouched.
func (s *unlockAppImpl) Unlock(ctx context.Context, userID, listingID uint64) (*model.UnlockResult, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[Unlock] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	entity, err := s.listingRepo.GetByIDTx(ctx, tx, listingID)
	if err != nil {
		logger.Error("[Unlock] get listing", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if entity.SubmittedBy == userID {
		return &model.UnlockResult{ListingID: listingID, AlreadyUnlocked: true}, nil
	}

	alreadyUnlocked, err := s.listingRepo.IsUnlockedTx(ctx, tx, userID, listingID)
	if err != nil {
		logger.Error("[Unlock] check unlock set", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if alreadyUnlocked {
		return &model.UnlockResult{ListingID: listingID, AlreadyUnlocked: true}, nil
	}

	currency := constant.PointsFree
	if entity.RequiresPaidPoints {
		currency = constant.PointsPaid
	}

	relatedID := listingID
	transaction, err := s.pointsApp.RecordTx(ctx, tx, &model.RecordRequest{
		UserID:           userID,
		Amount:           entity.PointsToUnlock,
		Type:             constant.TransactionSpent,
		PointsType:       currency,
		Description:      "Unlocked contact: " + entity.Title,
		RelatedListingID: &relatedID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.listingRepo.InsertUnlockTx(ctx, tx, userID, listingID); err != nil {
		logger.Error("[Unlock] insert unlock", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[Unlock] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	if err := s.redisRepo.AddToSet(ctx, redisrepo.SetUnlocked, userID, listingID); err != nil {
		logger.Warn("[Unlock] cache add", zap.String("error", err.Error()))
	}
	s.pointsApp.Announce(transaction)

	remaining, err := s.remainingBalance(ctx, userID, currency)
	if err != nil {
		// the unlock itself is committed; balance readback is cosmetic
		logger.Warn("[Unlock] read balance", zap.String("error", err.Error()))
	}

	return &model.UnlockResult{
		ListingID:        listingID,
		PointsSpent:      entity.PointsToUnlock,
		RemainingBalance: remaining,
	}, nil
}

func (s *unlockAppImpl) remainingBalance(ctx context.Context, userID uint64, currency constant.PointsCurrency) (int64, error) {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: userID})
	if err != nil || user == nil {
		return 0, err
	}
	if currency == constant.PointsPaid {
		return user.PaidPoints, nil
	}
	return user.FreePoints, nil
}

// GetContactDetails returns the full payload or a locked error, never a
// redacted contact.
func (s *unlockAppImpl) GetContactDetails(ctx context.Context, userID, listingID uint64) (*model.LandlordContact, error) {
	entity, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		logger.Error("[GetContactDetails] get listing", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if entity.SubmittedBy != userID {
		unlocked, err := s.listingRepo.IsUnlocked(ctx, userID, listingID)
		if err != nil {
			logger.Error("[GetContactDetails] check unlock set", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if !unlocked {
			return nil, errors.SetCustomError(constant.ErrContactLocked)
		}
	}

	return &model.LandlordContact{
		Name:  entity.LandlordName,
		Phone: entity.LandlordPhone,
		Email: entity.LandlordEmail,
	}, nil
}
