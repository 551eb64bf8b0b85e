package user

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Psybah/housify-expo-sub000/cmd/config"
	"github.com/Psybah/housify-expo-sub000/constant"
	"github.com/Psybah/housify-expo-sub000/model"
	pointsrepo "github.com/Psybah/housify-expo-sub000/repository/points"
	redisrepo "github.com/Psybah/housify-expo-sub000/repository/redis"
	txrepo "github.com/Psybah/housify-expo-sub000/repository/tx"
	userrepo "github.com/Psybah/housify-expo-sub000/repository/user"
	"github.com/Psybah/housify-expo-sub000/thirdparty/rabbitmq"
	"github.com/Psybah/housify-expo-sub000/utils/errors"
	"github.com/Psybah/housify-expo-sub000/utils/logger"
)

type UserApp interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Logout(ctx context.Context, tokenString string) error
	SendPasswordReset(ctx context.Context, email string) error
	ValidateToken(ctx context.Context, tokenString string) (uint64, error)
	GetProfile(ctx context.Context, userID uint64) (*model.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uint64, req *model.UpdateProfileRequest) (*model.ProfileResponse, error)
	GetReferralInfo(ctx context.Context, userID uint64) (*model.ReferralInfo, error)
}

type UserAppImpl struct {
	config     *config.Config
	txRepo     txrepo.TxRepository
	userRepo   userrepo.UserRepository
	pointsRepo pointsrepo.PointsRepository
	redisRepo  redisrepo.Repository
	publisher  *rabbitmq.Publisher
}

func NewUserApp(config *config.Config, txRepo txrepo.TxRepository, userRepo userrepo.UserRepository, pointsRepo pointsrepo.PointsRepository, redisRepo redisrepo.Repository, publisher *rabbitmq.Publisher) UserApp {
	return &UserAppImpl{
		config:     config,
		txRepo:     txRepo,
		userRepo:   userRepo,
		pointsRepo: pointsRepo,
		redisRepo:  redisRepo,
		publisher:  publisher,
	}
}

// Register creates the account, grants the signup bonus and, when a valid
// referral code is supplied, credits the referrer. All three writes share
// one transaction.
func (s *UserAppImpl) Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error) {
	// Check if user exists by email or phone
	existingUser, err := s.userRepo.Get(ctx, &model.UserFilter{Email: req.Email})
	if err != nil {
		logger.Error("[Register] err userRepo.Get email", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existingUser != nil {
		return nil, errors.SetCustomError(constant.ErrCredentialExists)
	}

	existingUser, err = s.userRepo.Get(ctx, &model.UserFilter{Phone: req.Phone})
	if err != nil {
		logger.Error("[Register] err userRepo.Get phone", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existingUser != nil {
		return nil, errors.SetCustomError(constant.ErrCredentialExists)
	}

	var referrer *model.UserEntity
	if req.ReferralCode != "" {
		referrer, err = s.userRepo.Get(ctx, &model.UserFilter{ReferralCode: req.ReferralCode})
		if err != nil {
			logger.Error("[Register] err userRepo.Get referral", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if referrer == nil {
			return nil, errors.SetCustomError(constant.ErrNotFound)
		}
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("[Register] err bcrypt.GenerateFromPassword", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[Register] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	userEntity := &model.UserEntity{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hashedPassword),
	}

	userEntity, err = s.userRepo.CreateTx(ctx, tx, userEntity)
	if err != nil {
		// duplicate-key from a racing registration maps to CredentialExists
		if cerr, ok := err.(errors.CustomError); ok {
			return nil, cerr
		}
		logger.Error("[Register] err userRepo.CreateTx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	signingBonus := &model.RecordRequest{
		UserID:      userEntity.ID,
		Amount:      s.config.Points.SigningBonus,
		Type:        constant.TransactionEarned,
		PointsType:  constant.PointsFree,
		Description: "Welcome bonus",
	}
	if err := s.creditTx(ctx, tx, signingBonus); err != nil {
		return nil, err
	}

	var referralGrant *model.RecordRequest
	if referrer != nil {
		referralGrant = &model.RecordRequest{
			UserID:      referrer.ID,
			Amount:      s.config.Points.ReferralBonus,
			Type:        constant.TransactionReferral,
			PointsType:  constant.PointsFree,
			Description: "Referral signup: " + userEntity.Name,
		}
		if err := s.creditTx(ctx, tx, referralGrant); err != nil {
			return nil, err
		}
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[Register] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.announce(signingBonus)
	if referralGrant != nil {
		s.announce(referralGrant)
	}

	return &model.RegisterResponse{
		Name:       userEntity.Name,
		Email:      userEntity.Email,
		FreePoints: s.config.Points.SigningBonus,
	}, nil
}

// creditTx applies one positive grant: balance update plus ledger row,
// inside the caller's transaction.
func (s *UserAppImpl) creditTx(ctx context.Context, tx *sqlx.Tx, req *model.RecordRequest) error {
	if err := s.userRepo.AddBalanceTx(ctx, tx, req.UserID, req.Amount, req.PointsType); err != nil {
		logger.Error("[creditTx] update balance", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if _, err := s.pointsRepo.InsertTransactionTx(ctx, tx, req); err != nil {
		logger.Error("[creditTx] insert transaction", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *UserAppImpl) announce(req *model.RecordRequest) {
	if s.publisher == nil {
		return
	}
	msg := rabbitmq.PointsEventMessage{
		UserID:      req.UserID,
		Amount:      req.Amount,
		Type:        req.Type,
		PointsType:  req.PointsType,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}
	if err := s.publisher.PublishPointsEvent(msg); err != nil {
		logger.Error("[announce] publish points event", zap.String("error", err.Error()))
	}
}

func (s *UserAppImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	// Find user by email or phone
	filter := &model.UserFilter{}
	if isEmail(req.Identifier) {
		filter.Email = req.Identifier
	} else {
		filter.Phone = req.Identifier
	}

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		logger.Error("[Login] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	// Verify password
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidPassword)
	}

	// Generate JWT token
	token, jti, err := s.generateJWT(user.ID)
	if err != nil {
		logger.Error("[Login] err generateJWT", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	// Store session in Redis
	err = s.redisRepo.SetSession(ctx, jti, user.ID, s.config.Auth.SessionExpTime)
	if err != nil {
		logger.Error("[Login] err SetSession", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.LoginResponse{
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	}, nil
}

// Logout drops the session behind the token's jti.
func (s *UserAppImpl) Logout(ctx context.Context, tokenString string) error {
	jti, err := s.parseJTI(tokenString)
	if err != nil {
		return errors.SetCustomError(constant.ErrUnauthorize)
	}
	if err := s.redisRepo.DeleteSession(ctx, jti); err != nil {
		logger.Error("[Logout] err DeleteSession", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

// resetTokenTTL bounds how long an issued reset token stays redeemable.
const resetTokenTTL = 15 * time.Minute

// SendPasswordReset issues a short-lived reset token for the account
// behind email. Delivery is the mail collaborator's job; this core only
// mints and stores the token.
func (s *UserAppImpl) SendPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{Email: email})
	if err != nil {
		logger.Error("[SendPasswordReset] err userRepo.Get", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	token := uuid.NewString()
	if err := s.redisRepo.SetResetToken(ctx, token, user.ID, resetTokenTTL); err != nil {
		logger.Error("[SendPasswordReset] err SetResetToken", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	logger.Info("[SendPasswordReset] reset token issued", zap.Uint64("user_id", user.ID))
	return nil
}

func (s *UserAppImpl) ValidateToken(ctx context.Context, tokenString string) (uint64, error) {
	// Parse token
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return 0, fmt.Errorf("invalid token: %w", err)
	}

	// Extract claims
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid claims")
	}

	// Extract userID from Subject
	userIDStr := claims.Subject
	userID, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id in token")
	}

	// Extract JTI (Token ID)
	jti := claims.ID
	if jti == "" {
		return 0, fmt.Errorf("token missing jti")
	}

	// Check Redis session key
	redisUserID, err := s.redisRepo.GetSession(ctx, jti)
	if err != nil {
		return 0, fmt.Errorf("invalid or expired session")
	}

	// Compare Redis userID with claims.Subject
	if redisUserID != userID {
		return 0, fmt.Errorf("token does not match user session")
	}

	return userID, nil
}

func (s *UserAppImpl) GetProfile(ctx context.Context, userID uint64) (*model.ProfileResponse, error) {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: userID})
	if err != nil {
		logger.Error("[GetProfile] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	return toProfileResponse(user), nil
}

// UpdateProfile merges contact metadata; point balances are not reachable
// through this path.
func (s *UserAppImpl) UpdateProfile(ctx context.Context, userID uint64, req *model.UpdateProfileRequest) (*model.ProfileResponse, error) {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: userID})
	if err != nil {
		logger.Error("[UpdateProfile] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, req); err != nil {
		logger.Error("[UpdateProfile] err userRepo.UpdateProfile", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	updated, err := s.userRepo.Get(ctx, &model.UserFilter{ID: userID})
	if err != nil || updated == nil {
		logger.Error("[UpdateProfile] err reload user", zap.Uint64("user_id", userID))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return toProfileResponse(updated), nil
}

// GetReferralInfo lazily assigns the user's referral code on first access
// and folds the ledger's referral rows into the aggregate.
func (s *UserAppImpl) GetReferralInfo(ctx context.Context, userID uint64) (*model.ReferralInfo, error) {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: userID})
	if err != nil {
		logger.Error("[GetReferralInfo] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	code := ""
	if user.ReferralCode != nil {
		code = *user.ReferralCode
	} else {
		code = newReferralCode()
		assigned, err := s.userRepo.SetReferralCode(ctx, userID, code)
		if err != nil {
			logger.Error("[GetReferralInfo] err SetReferralCode", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if !assigned {
			// lost a race with another session; reload the winner's code
			reloaded, err := s.userRepo.Get(ctx, &model.UserFilter{ID: userID})
			if err != nil || reloaded == nil || reloaded.ReferralCode == nil {
				return nil, errors.SetCustomError(constant.ErrInternal)
			}
			code = *reloaded.ReferralCode
		}
	}

	total, earned, err := s.pointsRepo.ReferralStats(ctx, userID)
	if err != nil {
		logger.Error("[GetReferralInfo] err ReferralStats", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.ReferralInfo{
		Code:              code,
		PointsPerReferral: s.config.Points.ReferralBonus,
		TotalReferred:     total,
		PointsEarned:      earned,
	}, nil
}

func toProfileResponse(user *model.UserEntity) *model.ProfileResponse {
	return &model.ProfileResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Phone:        user.Phone,
		FreePoints:   user.FreePoints,
		PaidPoints:   user.PaidPoints,
		ReferralCode: user.ReferralCode,
	}
}

// generateJWT creates a JWT token for the user
func (s *UserAppImpl) generateJWT(userID uint64) (string, string, error) {
	newUUID, _ := uuid.NewRandom()
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", userID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.Auth.JWTExpiration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ID:        newUUID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, claims.ID, nil
}

func (s *UserAppImpl) parseJTI(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.ID == "" {
		return "", fmt.Errorf("token missing jti")
	}
	return claims.ID, nil
}

// newReferralCode derives a short shareable code from a fresh UUID.
func newReferralCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:8])
}

// isEmail checks if identifier looks like an email
func isEmail(identifier string) bool {
	for _, r := range identifier {
		if r == '@' {
			return true
		}
	}
	return false
}
