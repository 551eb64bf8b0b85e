package user_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	appuser "github.com/Psybah/housify-expo-sub000/application/user"
	"github.com/Psybah/housify-expo-sub000/cmd/config"
	"github.com/Psybah/housify-expo-sub000/constant"
	pointsmocks "github.com/Psybah/housify-expo-sub000/mocks/repository/points"
	redismocks "github.com/Psybah/housify-expo-sub000/mocks/repository/redis"
	txmocks "github.com/Psybah/housify-expo-sub000/mocks/repository/tx"
	usermocks "github.com/Psybah/housify-expo-sub000/mocks/repository/user"
	"github.com/Psybah/housify-expo-sub000/model"
	cerr "github.com/Psybah/housify-expo-sub000/utils/errors"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.JWTExpiration = time.Hour
	cfg.Auth.SessionExpTime = time.Hour
	cfg.Points.SigningBonus = 50
	cfg.Points.ReferralBonus = 25
	return cfg
}

func assertErrCode(t *testing.T, err error, code constant.ErrorType) {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[code] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[code])
	}
}

func TestUserApp_Register(t *testing.T) {
	type fields struct {
		txRepo     *txmocks.TxRepository
		userRepo   *usermocks.UserRepository
		pointsRepo *pointsmocks.PointsRepository
		redisRepo  *redismocks.Repository
	}
	tx := &sqlx.Tx{}
	req := &model.RegisterRequest{
		Name:     "Amina Bello",
		Email:    "amina@example.com",
		Phone:    "08012345678",
		Password: "s3cretpass",
	}
	tests := []struct {
		name     string
		fields   fields
		args     *model.RegisterRequest
		mockCall func(f fields)
		want     *model.RegisterResponse
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: account created with welcome bonus",
			fields: fields{
				txRepo:     txmocks.NewTxRepository(t),
				userRepo:   usermocks.NewUserRepository(t),
				pointsRepo: pointsmocks.NewPointsRepository(t),
				redisRepo:  redismocks.NewRepository(t),
			},
			args: req,
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Email: req.Email}).Return(nil, nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Phone: req.Phone}).Return(nil, nil).Once()
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.userRepo.
					On("CreateTx", mock.Anything, tx, mock.MatchedBy(func(e *model.UserEntity) bool {
						return e.Email == req.Email && e.PasswordHash != req.Password
					})).
					Return(&model.UserEntity{ID: 1, Name: req.Name, Email: req.Email, Phone: req.Phone}, nil).
					Once()
				f.userRepo.
					On("AddBalanceTx", mock.Anything, tx, uint64(1), int64(50), constant.PointsFree).
					Return(nil).
					Once()
				f.pointsRepo.
					On("InsertTransactionTx", mock.Anything, tx, mock.MatchedBy(func(r *model.RecordRequest) bool {
						return r.UserID == 1 && r.Amount == 50 && r.Type == constant.TransactionEarned
					})).
					Return(uint64(1), nil).
					Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
			},
			want: &model.RegisterResponse{Name: "Amina Bello", Email: "amina@example.com", FreePoints: 50},
		},
		{
			name: "success: valid referral code credits the referrer",
			fields: fields{
				txRepo:     txmocks.NewTxRepository(t),
				userRepo:   usermocks.NewUserRepository(t),
				pointsRepo: pointsmocks.NewPointsRepository(t),
				redisRepo:  redismocks.NewRepository(t),
			},
			args: &model.RegisterRequest{
				Name:         "Amina Bello",
				Email:        "amina@example.com",
				Phone:        "08012345678",
				Password:     "s3cretpass",
				ReferralCode: "AB12CD34",
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Email: req.Email}).Return(nil, nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Phone: req.Phone}).Return(nil, nil).Once()
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ReferralCode: "AB12CD34"}).
					Return(&model.UserEntity{ID: 2, Name: "Referrer"}, nil).
					Once()
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.userRepo.
					On("CreateTx", mock.Anything, tx, mock.Anything).
					Return(&model.UserEntity{ID: 1, Name: req.Name, Email: req.Email, Phone: req.Phone}, nil).
					Once()
				f.userRepo.
					On("AddBalanceTx", mock.Anything, tx, uint64(1), int64(50), constant.PointsFree).
					Return(nil).
					Once()
				f.userRepo.
					On("AddBalanceTx", mock.Anything, tx, uint64(2), int64(25), constant.PointsFree).
					Return(nil).
					Once()
				f.pointsRepo.
					On("InsertTransactionTx", mock.Anything, tx, mock.MatchedBy(func(r *model.RecordRequest) bool {
						return r.UserID == 1 && r.Type == constant.TransactionEarned
					})).
					Return(uint64(1), nil).
					Once()
				f.pointsRepo.
					On("InsertTransactionTx", mock.Anything, tx, mock.MatchedBy(func(r *model.RecordRequest) bool {
						return r.UserID == 2 && r.Amount == 25 && r.Type == constant.TransactionReferral
					})).
					Return(uint64(2), nil).
					Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
			},
			want: &model.RegisterResponse{Name: "Amina Bello", Email: "amina@example.com", FreePoints: 50},
		},
		{
			name: "error: duplicate insert from a racing registration",
			fields: fields{
				txRepo:     txmocks.NewTxRepository(t),
				userRepo:   usermocks.NewUserRepository(t),
				pointsRepo: pointsmocks.NewPointsRepository(t),
				redisRepo:  redismocks.NewRepository(t),
			},
			args: req,
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Email: req.Email}).Return(nil, nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Phone: req.Phone}).Return(nil, nil).Once()
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.userRepo.
					On("CreateTx", mock.Anything, tx, mock.Anything).
					Return(nil, cerr.SetCustomError(constant.ErrCredentialExists)).
					Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrCredentialExists,
		},
		{
			name: "error: email already registered",
			fields: fields{
				txRepo:     txmocks.NewTxRepository(t),
				userRepo:   usermocks.NewUserRepository(t),
				pointsRepo: pointsmocks.NewPointsRepository(t),
				redisRepo:  redismocks.NewRepository(t),
			},
			args: req,
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: req.Email}).
					Return(&model.UserEntity{ID: 5, Email: req.Email}, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrCredentialExists,
		},
		{
			name: "error: unknown referral code",
			fields: fields{
				txRepo:     txmocks.NewTxRepository(t),
				userRepo:   usermocks.NewUserRepository(t),
				pointsRepo: pointsmocks.NewPointsRepository(t),
				redisRepo:  redismocks.NewRepository(t),
			},
			args: &model.RegisterRequest{
				Name:         "Amina Bello",
				Email:        "amina@example.com",
				Phone:        "08012345678",
				Password:     "s3cretpass",
				ReferralCode: "ZZZZZZZZ",
			},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Email: req.Email}).Return(nil, nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Phone: req.Phone}).Return(nil, nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ReferralCode: "ZZZZZZZZ"}).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appuser.NewUserApp(newTestConfig(), tt.fields.txRepo, tt.fields.userRepo, tt.fields.pointsRepo, tt.fields.redisRepo, nil)

			got, err := app.Register(context.Background(), tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if *got != *tt.want {
				t.Fatalf("Register() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUserApp_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cretpass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	stored := &model.UserEntity{ID: 1, Name: "Amina Bello", Email: "amina@example.com", PasswordHash: string(hash)}

	t.Run("success: session stored under the token's jti", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)
		redisRepo := redismocks.NewRepository(t)

		userRepo.On("Get", mock.Anything, &model.UserFilter{Email: "amina@example.com"}).Return(stored, nil).Once()
		redisRepo.On("SetSession", mock.Anything, mock.Anything, uint64(1), time.Hour).Return(nil).Once()

		app := appuser.NewUserApp(newTestConfig(), txmocks.NewTxRepository(t), userRepo, pointsmocks.NewPointsRepository(t), redisRepo, nil)

		got, err := app.Login(context.Background(), &model.LoginRequest{Identifier: "amina@example.com", Password: "s3cretpass"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if got.Token == "" {
			t.Fatal("Login() returned empty token")
		}
	})

	t.Run("error: wrong password", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)

		userRepo.On("Get", mock.Anything, &model.UserFilter{Email: "amina@example.com"}).Return(stored, nil).Once()

		app := appuser.NewUserApp(newTestConfig(), txmocks.NewTxRepository(t), userRepo, pointsmocks.NewPointsRepository(t), redismocks.NewRepository(t), nil)

		_, err := app.Login(context.Background(), &model.LoginRequest{Identifier: "amina@example.com", Password: "wrong"})
		assertErrCode(t, err, constant.ErrInvalidPassword)
	})

	t.Run("error: unknown identifier routes by phone", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)

		userRepo.On("Get", mock.Anything, &model.UserFilter{Phone: "08099999999"}).Return(nil, nil).Once()

		app := appuser.NewUserApp(newTestConfig(), txmocks.NewTxRepository(t), userRepo, pointsmocks.NewPointsRepository(t), redismocks.NewRepository(t), nil)

		_, err := app.Login(context.Background(), &model.LoginRequest{Identifier: "08099999999", Password: "whatever"})
		assertErrCode(t, err, constant.ErrNotFound)
	})
}

func TestUserApp_SendPasswordReset(t *testing.T) {
	t.Run("success: token stored against the account", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)
		redisRepo := redismocks.NewRepository(t)

		userRepo.
			On("Get", mock.Anything, &model.UserFilter{Email: "amina@example.com"}).
			Return(&model.UserEntity{ID: 1, Email: "amina@example.com"}, nil).
			Once()
		redisRepo.
			On("SetResetToken", mock.Anything, mock.MatchedBy(func(token string) bool {
				return token != ""
			}), uint64(1), 15*time.Minute).
			Return(nil).
			Once()

		app := appuser.NewUserApp(newTestConfig(), txmocks.NewTxRepository(t), userRepo, pointsmocks.NewPointsRepository(t), redisRepo, nil)
		if err := app.SendPasswordReset(context.Background(), "amina@example.com"); err != nil {
			t.Fatalf("SendPasswordReset() error = %v", err)
		}
	})

	t.Run("error: unknown email issues nothing", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)

		userRepo.
			On("Get", mock.Anything, &model.UserFilter{Email: "nobody@example.com"}).
			Return(nil, nil).
			Once()

		app := appuser.NewUserApp(newTestConfig(), txmocks.NewTxRepository(t), userRepo, pointsmocks.NewPointsRepository(t), redismocks.NewRepository(t), nil)
		err := app.SendPasswordReset(context.Background(), "nobody@example.com")
		assertErrCode(t, err, constant.ErrNotFound)
	})
}

func TestUserApp_GetReferralInfo(t *testing.T) {
	t.Run("existing code: ledger aggregate folded in", func(t *testing.T) {
		code := "AB12CD34"
		userRepo := usermocks.NewUserRepository(t)
		pointsRepo := pointsmocks.NewPointsRepository(t)

		userRepo.
			On("Get", mock.Anything, &model.UserFilter{ID: 1}).
			Return(&model.UserEntity{ID: 1, ReferralCode: &code}, nil).
			Once()
		pointsRepo.On("ReferralStats", mock.Anything, uint64(1)).Return(int64(3), int64(75), nil).Once()

		app := appuser.NewUserApp(newTestConfig(), txmocks.NewTxRepository(t), userRepo, pointsRepo, redismocks.NewRepository(t), nil)

		got, err := app.GetReferralInfo(context.Background(), 1)
		if err != nil {
			t.Fatalf("GetReferralInfo() error = %v", err)
		}
		want := &model.ReferralInfo{Code: "AB12CD34", PointsPerReferral: 25, TotalReferred: 3, PointsEarned: 75}
		if *got != *want {
			t.Fatalf("GetReferralInfo() = %+v, want %+v", got, want)
		}
	})

	t.Run("first access assigns a code", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)
		pointsRepo := pointsmocks.NewPointsRepository(t)

		userRepo.
			On("Get", mock.Anything, &model.UserFilter{ID: 1}).
			Return(&model.UserEntity{ID: 1}, nil).
			Once()
		userRepo.
			On("SetReferralCode", mock.Anything, uint64(1), mock.MatchedBy(func(code string) bool {
				return len(code) == 8
			})).
			Return(true, nil).
			Once()
		pointsRepo.On("ReferralStats", mock.Anything, uint64(1)).Return(int64(0), int64(0), nil).Once()

		app := appuser.NewUserApp(newTestConfig(), txmocks.NewTxRepository(t), userRepo, pointsRepo, redismocks.NewRepository(t), nil)

		got, err := app.GetReferralInfo(context.Background(), 1)
		if err != nil {
			t.Fatalf("GetReferralInfo() error = %v", err)
		}
		if len(got.Code) != 8 {
			t.Fatalf("GetReferralInfo() code = %q, want 8 characters", got.Code)
		}
	})
}
