package points

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/Psybah/housify-expo-sub000/constant"
	"github.com/Psybah/housify-expo-sub000/model"
)

type SQL struct {
	conn *sqlx.DB
}

// PointsRepository persists the append-only transaction ledger and the
// static package catalog. Ledger rows are insert-only.
type PointsRepository interface {
	InsertTransactionTx(ctx context.Context, tx *sqlx.Tx, req *model.RecordRequest) (uint64, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.PointsTransaction, error)
	GetPackage(ctx context.Context, packageID uint64) (*model.PointsPackage, error)
	ListPackages(ctx context.Context) ([]model.PointsPackage, error)
	ReferralStats(ctx context.Context, userID uint64) (int64, int64, error)
}

func NewPointsRepository(conn *sqlx.DB) PointsRepository {
	return &SQL{conn: conn}
}

const (
	insertTransactionQuery = `INSERT INTO points_transaction (user_id, amount, type, points_type, description, related_listing_id, created_at) VALUES (?, ?, ?, ?, ?, ?, NOW())`
	listTransactionsQuery  = `SELECT id, user_id, amount, type, points_type, description, related_listing_id, created_at FROM points_transaction WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	getPackageQuery        = `SELECT id, name, amount, price, bonus, listings FROM points_package WHERE id = ?`
	listPackagesQuery      = `SELECT id, name, amount, price, bonus, listings FROM points_package ORDER BY amount ASC`
)

func (r *SQL) InsertTransactionTx(ctx context.Context, tx *sqlx.Tx, req *model.RecordRequest) (uint64, error) {
	res, err := tx.ExecContext(ctx, insertTransactionQuery,
		req.UserID, req.Amount, req.Type, req.PointsType, req.Description, req.RelatedListingID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) ListByUser(ctx context.Context, userID uint64) ([]model.PointsTransaction, error) {
	rows, err := r.conn.QueryxContext(ctx, listTransactionsQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.PointsTransaction, 0)
	for rows.Next() {
		var t model.PointsTransaction
		if err := rows.StructScan(&t); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (r *SQL) GetPackage(ctx context.Context, packageID uint64) (*model.PointsPackage, error) {
	var pkg model.PointsPackage
	if err := r.conn.QueryRowxContext(ctx, getPackageQuery, packageID).StructScan(&pkg); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &pkg, nil
}

func (r *SQL) ListPackages(ctx context.Context) ([]model.PointsPackage, error) {
	rows, err := r.conn.QueryxContext(ctx, listPackagesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.PointsPackage, 0)
	for rows.Next() {
		var pkg model.PointsPackage
		if err := rows.StructScan(&pkg); err != nil {
			return nil, err
		}
		items = append(items, pkg)
	}
	return items, rows.Err()
}

// ReferralStats folds the ledger's referral rows into (total referred,
// points earned) for one user.
func (r *SQL) ReferralStats(ctx context.Context, userID uint64) (int64, int64, error) {
	var stats struct {
		Total  int64         `db:"total"`
		Earned sql.NullInt64 `db:"earned"`
	}
	q := "SELECT COUNT(1) AS total, COALESCE(SUM(amount), 0) AS earned FROM points_transaction WHERE user_id = ? AND type = ?"
	if err := r.conn.QueryRowxContext(ctx, q, userID, constant.TransactionReferral).StructScan(&stats); err != nil {
		return 0, 0, err
	}
	if !stats.Earned.Valid {
		return stats.Total, 0, nil
	}
	return stats.Total, stats.Earned.Int64, nil
}
