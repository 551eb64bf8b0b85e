package unlock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	appunlock "github.com/Psybah/housify-expo-sub000/application/unlock"
	"github.com/Psybah/housify-expo-sub000/constant"
	appmocks "github.com/Psybah/housify-expo-sub000/mocks/application/points"
	listingmocks "github.com/Psybah/housify-expo-sub000/mocks/repository/listing"
	redismocks "github.com/Psybah/housify-expo-sub000/mocks/repository/redis"
	txmocks "github.com/Psybah/housify-expo-sub000/mocks/repository/tx"
	usermocks "github.com/Psybah/housify-expo-sub000/mocks/repository/user"
	"github.com/Psybah/housify-expo-sub000/model"
	redisrepo "github.com/Psybah/housify-expo-sub000/repository/redis"
	cerr "github.com/Psybah/housify-expo-sub000/utils/errors"
)

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

func TestUnlockApp_Unlock(t *testing.T) {
	type fields struct {
		txRepo      *txmocks.TxRepository
		userRepo    *usermocks.UserRepository
		listingRepo *listingmocks.ListingRepository
		redisRepo   *redismocks.Repository
		pointsApp   *appmocks.PointsApp
	}
	type args struct {
		userID    uint64
		listingID uint64
	}
	tx := &sqlx.Tx{}
	verified := &model.ListingEntity{
		ID:             7,
		Title:          "2 bed flat in Lekki",
		Status:         constant.ListingStatusAvailable,
		Verified:       true,
		SubmittedBy:    3,
		PointsToUnlock: 100,
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		want     *model.UnlockResult
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: debit, ledger entry and unlock row committed together",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				listingRepo: listingmocks.NewListingRepository(t),
				redisRepo:   redismocks.NewRepository(t),
				pointsApp:   appmocks.NewPointsApp(t),
			},
			args: args{userID: 1, listingID: 7},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.listingRepo.On("GetByIDTx", mock.Anything, tx, uint64(7)).Return(verified, nil).Once()
				f.listingRepo.On("IsUnlockedTx", mock.Anything, tx, uint64(1), uint64(7)).Return(false, nil).Once()
				f.pointsApp.
					On("RecordTx", mock.Anything, tx, mock.MatchedBy(func(req *model.RecordRequest) bool {
						return req.UserID == 1 &&
							req.Amount == 100 &&
							req.Type == constant.TransactionSpent &&
							req.PointsType == constant.PointsFree &&
							req.RelatedListingID != nil && *req.RelatedListingID == 7
					})).
					Return(&model.PointsTransaction{ID: 42, UserID: 1, Amount: 100, Type: constant.TransactionSpent}, nil).
					Once()
				f.listingRepo.On("InsertUnlockTx", mock.Anything, tx, uint64(1), uint64(7)).Return(nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.redisRepo.On("AddToSet", mock.Anything, redisrepo.SetUnlocked, uint64(1), uint64(7)).Return(nil).Once()
				f.pointsApp.On("Announce", mock.Anything).Return().Once()
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: 1}).
					Return(&model.UserEntity{ID: 1, FreePoints: 50}, nil).
					Once()
			},
			want: &model.UnlockResult{ListingID: 7, PointsSpent: 100, RemainingBalance: 50},
		},
		{
			name: "idempotent: second unlock charges nothing",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				listingRepo: listingmocks.NewListingRepository(t),
				redisRepo:   redismocks.NewRepository(t),
				pointsApp:   appmocks.NewPointsApp(t),
			},
			args: args{userID: 1, listingID: 7},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.listingRepo.On("GetByIDTx", mock.Anything, tx, uint64(7)).Return(verified, nil).Once()
				f.listingRepo.On("IsUnlockedTx", mock.Anything, tx, uint64(1), uint64(7)).Return(true, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			want: &model.UnlockResult{ListingID: 7, AlreadyUnlocked: true},
		},
		{
			name: "owner: unlocking own listing is a no-op",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				listingRepo: listingmocks.NewListingRepository(t),
				redisRepo:   redismocks.NewRepository(t),
				pointsApp:   appmocks.NewPointsApp(t),
			},
			args: args{userID: 3, listingID: 7},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.listingRepo.On("GetByIDTx", mock.Anything, tx, uint64(7)).Return(verified, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			want: &model.UnlockResult{ListingID: 7, AlreadyUnlocked: true},
		},
		{
			name: "error: insufficient points rolls everything back",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				listingRepo: listingmocks.NewListingRepository(t),
				redisRepo:   redismocks.NewRepository(t),
				pointsApp:   appmocks.NewPointsApp(t),
			},
			args: args{userID: 1, listingID: 7},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.listingRepo.On("GetByIDTx", mock.Anything, tx, uint64(7)).Return(verified, nil).Once()
				f.listingRepo.On("IsUnlockedTx", mock.Anything, tx, uint64(1), uint64(7)).Return(false, nil).Once()
				f.pointsApp.
					On("RecordTx", mock.Anything, tx, mock.Anything).
					Return(nil, cerr.SetCustomError(constant.ErrInsufficientPoints)).
					Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInsufficientPoints,
		},
		{
			name: "error: unknown listing",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				listingRepo: listingmocks.NewListingRepository(t),
				redisRepo:   redismocks.NewRepository(t),
				pointsApp:   appmocks.NewPointsApp(t),
			},
			args: args{userID: 1, listingID: 99},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.listingRepo.On("GetByIDTx", mock.Anything, tx, uint64(99)).Return(nil, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
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
			app := appunlock.NewUnlockApp(tt.fields.txRepo, tt.fields.userRepo, tt.fields.listingRepo, tt.fields.redisRepo, tt.fields.pointsApp)

			got, err := app.Unlock(context.Background(), tt.args.userID, tt.args.listingID)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unlock() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if *got != *tt.want {
				t.Fatalf("Unlock() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUnlockApp_GetContactDetails(t *testing.T) {
	type fields struct {
		txRepo      *txmocks.TxRepository
		userRepo    *usermocks.UserRepository
		listingRepo *listingmocks.ListingRepository
		redisRepo   *redismocks.Repository
		pointsApp   *appmocks.PointsApp
	}
	entity := &model.ListingEntity{
		ID:            7,
		Title:         "2 bed flat in Lekki",
		SubmittedBy:   3,
		LandlordName:  "Mrs Adeyemi",
		LandlordPhone: "+2348012345678",
		LandlordEmail: "adeyemi@example.com",
	}
	tests := []struct {
		name     string
		fields   fields
		userID   uint64
		mockCall func(f fields)
		want     *model.LandlordContact
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: unlocked viewer gets the full payload",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				listingRepo: listingmocks.NewListingRepository(t),
				redisRepo:   redismocks.NewRepository(t),
				pointsApp:   appmocks.NewPointsApp(t),
			},
			userID: 1,
			mockCall: func(f fields) {
				f.listingRepo.On("GetByID", mock.Anything, uint64(7)).Return(entity, nil).Once()
				f.listingRepo.On("IsUnlocked", mock.Anything, uint64(1), uint64(7)).Return(true, nil).Once()
			},
			want: &model.LandlordContact{Name: "Mrs Adeyemi", Phone: "+2348012345678", Email: "adeyemi@example.com"},
		},
		{
			name: "owner: no unlock needed for own listing",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				listingRepo: listingmocks.NewListingRepository(t),
				redisRepo:   redismocks.NewRepository(t),
				pointsApp:   appmocks.NewPointsApp(t),
			},
			userID: 3,
			mockCall: func(f fields) {
				f.listingRepo.On("GetByID", mock.Anything, uint64(7)).Return(entity, nil).Once()
			},
			want: &model.LandlordContact{Name: "Mrs Adeyemi", Phone: "+2348012345678", Email: "adeyemi@example.com"},
		},
		{
			name: "error: locked viewer gets no partial contact",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				userRepo:    usermocks.NewUserRepository(t),
				listingRepo: listingmocks.NewListingRepository(t),
				redisRepo:   redismocks.NewRepository(t),
				pointsApp:   appmocks.NewPointsApp(t),
			},
			userID: 1,
			mockCall: func(f fields) {
				f.listingRepo.On("GetByID", mock.Anything, uint64(7)).Return(entity, nil).Once()
				f.listingRepo.On("IsUnlocked", mock.Anything, uint64(1), uint64(7)).Return(false, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrContactLocked,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appunlock.NewUnlockApp(tt.fields.txRepo, tt.fields.userRepo, tt.fields.listingRepo, tt.fields.redisRepo, tt.fields.pointsApp)

			got, err := app.GetContactDetails(context.Background(), tt.userID, 7)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetContactDetails() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if *got != *tt.want {
				t.Fatalf("GetContactDetails() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
