package user

import (
	"context"
	"database/sql"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/Psybah/housify-expo-sub000/constant"
	"github.com/Psybah/housify-expo-sub000/model"
	"github.com/Psybah/housify-expo-sub000/utils/errors"
)

// MySQL duplicate entry error number.
const dupEntryErrNo = 1062

type SQL struct {
	conn *sqlx.DB
}

type UserRepository interface {
	CreateTx(ctx context.Context, tx *sqlx.Tx, req *model.UserEntity) (*model.UserEntity, error)
	Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, userID uint64) (*model.UserEntity, error)
	AddBalanceTx(ctx context.Context, tx *sqlx.Tx, userID uint64, delta int64, currency constant.PointsCurrency) error
	UpdateProfile(ctx context.Context, userID uint64, req *model.UpdateProfileRequest) error
	SetReferralCode(ctx context.Context, userID uint64, code string) (bool, error)
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{conn: conn}
}

const (
	insertUserQuery = `INSERT INTO user (name, email, phone, password_hash, free_points, paid_points, created_at) VALUES (?, ?, ?, ?, 0, 0, NOW())`
	getUserBase     = `SELECT id, name, email, phone, password_hash, free_points, paid_points, referral_code, created_at, updated_at FROM user WHERE true`
)

// CreateTx inserts the user row. The unique keys on email and phone are
// the backstop for registrations racing past the application-level
// existence checks; a duplicate-key error maps to CredentialExists.
func (s *SQL) CreateTx(ctx context.Context, tx *sqlx.Tx, data *model.UserEntity) (*model.UserEntity, error) {
	result, err := tx.ExecContext(ctx, insertUserQuery, data.Name, data.Email, data.Phone, data.PasswordHash)
	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == dupEntryErrNo {
			return nil, errors.SetCustomError(constant.ErrCredentialExists)
		}
		return nil, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	data.ID = uint64(lastID)
	return data, nil
}

func (s *SQL) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	query := getUserBase
	args := make([]any, 0, 4)

	if filter.ID != 0 {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.Email != "" {
		query += " AND email = ?"
		args = append(args, filter.Email)
	}
	if filter.Phone != "" {
		query += " AND phone = ?"
		args = append(args, filter.Phone)
	}
	if filter.ReferralCode != "" {
		query += " AND referral_code = ?"
		args = append(args, filter.ReferralCode)
	}

	var entity model.UserEntity
	if err := s.conn.QueryRowxContext(ctx, query, args...).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// GetForUpdateTx locks the user row for the duration of the transaction.
// Every balance-affecting sequence goes through this lock so that
// check-then-debit cannot interleave for the same user.
func (s *SQL) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, userID uint64) (*model.UserEntity, error) {
	var entity model.UserEntity
	q := getUserBase + " AND id = ? FOR UPDATE"
	if err := tx.QueryRowxContext(ctx, q, userID).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// AddBalanceTx applies delta to one currency pool. The WHERE guard keeps
// the pool non-negative even if a caller skipped the row lock.
func (s *SQL) AddBalanceTx(ctx context.Context, tx *sqlx.Tx, userID uint64, delta int64, currency constant.PointsCurrency) error {
	column := "free_points"
	if currency == constant.PointsPaid {
		column = "paid_points"
	}

	q := "UPDATE user SET " + column + " = " + column + " + ?, updated_at = NOW() WHERE id = ? AND " + column + " + ? >= 0"
	res, err := tx.ExecContext(ctx, q, delta, userID, delta)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.SetCustomError(constant.ErrInsufficientPoints)
	}
	return nil
}

func (s *SQL) UpdateProfile(ctx context.Context, userID uint64, req *model.UpdateProfileRequest) error {
	query := "UPDATE user SET updated_at = NOW()"
	args := make([]any, 0, 4)

	if req.Name != "" {
		query += ", name = ?"
		args = append(args, req.Name)
	}
	if req.Email != "" {
		query += ", email = ?"
		args = append(args, req.Email)
	}
	if req.Phone != "" {
		query += ", phone = ?"
		args = append(args, req.Phone)
	}

	query += " WHERE id = ?"
	args = append(args, userID)

	_, err := s.conn.ExecContext(ctx, query, args...)
	return err
}

// SetReferralCode assigns the code only when none exists yet; the code is
// immutable once set. Returns whether this call assigned it.
func (s *SQL) SetReferralCode(ctx context.Context, userID uint64, code string) (bool, error) {
	res, err := s.conn.ExecContext(ctx, "UPDATE user SET referral_code = ? WHERE id = ? AND referral_code IS NULL", code, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
