package listing

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	apppoints "github.com/Psybah/housify-expo-sub000/application/points"
	"github.com/Psybah/housify-expo-sub000/cmd/config"
	"github.com/Psybah/housify-expo-sub000/constant"
	"github.com/Psybah/housify-expo-sub000/model"
	listingrepo "github.com/Psybah/housify-expo-sub000/repository/listing"
	redisrepo "github.com/Psybah/housify-expo-sub000/repository/redis"
	txrepo "github.com/Psybah/housify-expo-sub000/repository/tx"
	"github.com/Psybah/housify-expo-sub000/utils/errors"
	"github.com/Psybah/housify-expo-sub000/utils/logger"
	validatorx "github.com/Psybah/housify-expo-sub000/utils/validator"
)

type ListingApp interface {
	Submit(ctx context.Context, ownerID uint64, req *model.SubmitListingRequest) (*model.ListingResponse, error)
	ListVisible(ctx context.Context, viewerID uint64) (*model.ListingListResponse, error)
	Save(ctx context.Context, userID, listingID uint64) error
	Unsave(ctx context.Context, userID, listingID uint64) error
	Delete(ctx context.Context, ownerID, listingID uint64) error
	RequestVerification(ctx context.Context, ownerID, listingID uint64) error
	MarkVerified(ctx context.Context, listingID uint64) error
}

type listingAppImpl struct {
	config      *config.Config
	txRepo      txrepo.TxRepository
	listingRepo listingrepo.ListingRepository
	redisRepo   redisrepo.Repository
	pointsApp   apppoints.PointsApp
}

func NewListingApp(config *config.Config, txRepo txrepo.TxRepository, listingRepo listingrepo.ListingRepository, redisRepo redisrepo.Repository, pointsApp apppoints.PointsApp) ListingApp {
	return &listingAppImpl{
		config:      config,
		txRepo:      txRepo,
		listingRepo: listingRepo,
		redisRepo:   redisRepo,
		pointsApp:   pointsApp,
	}
}

// Submit validates the whole form at once and creates the listing as a
// draft owned by the submitter. Drafts stay invisible to everyone else
// until verification.
func (s *listingAppImpl) Submit(ctx context.Context, ownerID uint64, req *model.SubmitListingRequest) (*model.ListingResponse, error) {
	if violations := validatorx.CollectViolations(req); violations != nil {
		return nil, errors.SetValidationError(violations)
	}

	amenities, err := json.Marshal(req.Amenities)
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	images, err := json.Marshal(req.Images)
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	entity := &model.ListingEntity{
		Title:          req.Title,
		Description:    req.Description,
		Price:          req.Price,
		Address:        req.Location.Address,
		City:           req.Location.City,
		State:          req.Location.State,
		Bedrooms:       req.Features.Bedrooms,
		Bathrooms:      req.Features.Bathrooms,
		Furnished:      req.Features.Furnished,
		SizeSqm:        req.Features.SizeSqm,
		Amenities:      string(amenities),
		Images:         string(images),
		LandlordName:   req.LandlordContact.Name,
		LandlordPhone:  req.LandlordContact.Phone,
		LandlordEmail:  req.LandlordContact.Email,
		Status:         constant.ListingStatusDraft,
		Verified:       false,
		SubmittedBy:    ownerID,
		PointsToUnlock: s.config.Points.DefaultUnlockCost,
	}

	id, err := s.listingRepo.Insert(ctx, entity)
	if err != nil {
		logger.Error("[Submit] insert listing", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	entity.ID = id

	resp := toResponse(entity)
	return &resp, nil
}

func (s *listingAppImpl) ListVisible(ctx context.Context, viewerID uint64) (*model.ListingListResponse, error) {
	entities, err := s.listingRepo.ListVisible(ctx, viewerID)
	if err != nil {
		logger.Error("[ListVisible] list listings", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	saved := s.relationSet(ctx, redisrepo.SetSaved, viewerID)
	unlocked := s.relationSet(ctx, redisrepo.SetUnlocked, viewerID)

	items := make([]model.ListingResponse, 0, len(entities))
	for i := range entities {
		item := toResponse(&entities[i])
		item.Saved = saved[item.ID]
		item.Unlocked = unlocked[item.ID] || item.SubmittedBy == viewerID
		items = append(items, item)
	}

	return &model.ListingListResponse{Items: items, TotalCount: len(items)}, nil
}

// relationSet resolves a per-user listing set, serving from the redis
// cache when warm and rehydrating it from MySQL when not. The DB result
// always wins; the cache only saves a round-trip.
func (s *listingAppImpl) relationSet(ctx context.Context, kind string, userID uint64) map[uint64]bool {
	ids, err := s.redisRepo.GetSet(ctx, kind, userID)
	if err != nil || len(ids) == 0 {
		switch kind {
		case redisrepo.SetSaved:
			ids, err = s.listingRepo.ListSaved(ctx, userID)
		default:
			ids, err = s.listingRepo.ListUnlocked(ctx, userID)
		}
		if err != nil {
			logger.Error("[relationSet] load from db", zap.String("kind", kind), zap.String("error", err.Error()))
			return map[uint64]bool{}
		}
		if cacheErr := s.redisRepo.ReplaceSet(ctx, kind, userID, ids); cacheErr != nil {
			logger.Warn("[relationSet] refresh cache", zap.String("kind", kind), zap.String("error", cacheErr.Error()))
		}
	}

	set := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// Save is an idempotent set insert. The listing must exist; saving the
// same id twice is a no-op.
func (s *listingAppImpl) Save(ctx context.Context, userID, listingID uint64) error {
	entity, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		logger.Error("[Save] get listing", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	if err := s.listingRepo.Save(ctx, userID, listingID); err != nil {
		logger.Error("[Save] insert save", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.redisRepo.AddToSet(ctx, redisrepo.SetSaved, userID, listingID); err != nil {
		logger.Warn("[Save] cache add", zap.String("error", err.Error()))
	}
	return nil
}

// Unsave removes the relation. Removing an absent save is a no-op.
func (s *listingAppImpl) Unsave(ctx context.Context, userID, listingID uint64) error {
	if err := s.listingRepo.Unsave(ctx, userID, listingID); err != nil {
		logger.Error("[Unsave] delete save", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.redisRepo.RemoveFromSet(ctx, redisrepo.SetSaved, userID, listingID); err != nil {
		logger.Warn("[Unsave] cache remove", zap.String("error", err.Error()))
	}
	return nil
}

// Delete is owner-only and draft-only. Anything past draft is frozen for
// the submitter.
func (s *listingAppImpl) Delete(ctx context.Context, ownerID, listingID uint64) error {
	entity, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		logger.Error("[Delete] get listing", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if entity.SubmittedBy != ownerID || entity.Status != constant.ListingStatusDraft {
		return errors.SetCustomError(constant.ErrForbidden)
	}

	deleted, err := s.listingRepo.DeleteDraft(ctx, ownerID, listingID)
	if err != nil {
		logger.Error("[Delete] delete listing", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if !deleted {
		// status moved between read and delete
		return errors.SetCustomError(constant.ErrForbidden)
	}
	return nil
}

// RequestVerification hands the owner's draft to the review queue. Only
// the owner can submit, and only a draft moves; a listing already under
// review or past it stays where it is.
func (s *listingAppImpl) RequestVerification(ctx context.Context, ownerID, listingID uint64) error {
	entity, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		logger.Error("[RequestVerification] get listing", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if entity.SubmittedBy != ownerID {
		return errors.SetCustomError(constant.ErrForbidden)
	}

	moved, err := s.listingRepo.MarkPending(ctx, ownerID, listingID)
	if err != nil {
		logger.Error("[RequestVerification] mark pending", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if !moved {
		return errors.SetCustomError(constant.ErrForbidden)
	}
	return nil
}

// MarkVerified flips the listing to verified/available and credits the
// owner's verification bonus. Flip and bonus commit together; repeated
// calls find verified=true and change nothing.
func (s *listingAppImpl) MarkVerified(ctx context.Context, listingID uint64) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[MarkVerified] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	entity, err := s.listingRepo.GetByIDTx(ctx, tx, listingID)
	if err != nil {
		logger.Error("[MarkVerified] get listing", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	flipped, err := s.listingRepo.MarkVerifiedTx(ctx, tx, listingID)
	if err != nil {
		logger.Error("[MarkVerified] mark verified", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if !flipped {
		// already verified; bonus fired on the first call
		return nil
	}

	relatedID := listingID
	transaction, err := s.pointsApp.RecordTx(ctx, tx, &model.RecordRequest{
		UserID:           entity.SubmittedBy,
		Amount:           s.config.Points.VerificationBonus,
		Type:             constant.TransactionEarned,
		PointsType:       constant.PointsFree,
		Description:      "Listing verified: " + entity.Title,
		RelatedListingID: &relatedID,
	})
	if err != nil {
		return err
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[MarkVerified] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.pointsApp.Announce(transaction)
	return nil
}

func toResponse(e *model.ListingEntity) model.ListingResponse {
	var amenities, images []string
	_ = json.Unmarshal([]byte(e.Amenities), &amenities)
	_ = json.Unmarshal([]byte(e.Images), &images)

	return model.ListingResponse{
		ID:                 e.ID,
		Title:              e.Title,
		Description:        e.Description,
		Price:              e.Price,
		Address:            e.Address,
		City:               e.City,
		State:              e.State,
		Bedrooms:           e.Bedrooms,
		Bathrooms:          e.Bathrooms,
		Furnished:          e.Furnished,
		SizeSqm:            e.SizeSqm,
		Amenities:          amenities,
		Images:             images,
		Status:             e.Status,
		Verified:           e.Verified,
		SubmittedBy:        e.SubmittedBy,
		PointsToUnlock:     e.PointsToUnlock,
		RequiresPaidPoints: e.RequiresPaidPoints,
	}
}
