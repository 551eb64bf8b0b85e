package listing

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

type ListingRepository interface {
	Insert(ctx context.Context, entity *model.ListingEntity) (uint64, error)
	GetByID(ctx context.Context, listingID uint64) (*model.ListingEntity, error)
	GetByIDTx(ctx context.Context, tx *sqlx.Tx, listingID uint64) (*model.ListingEntity, error)
	ListVisible(ctx context.Context, viewerID uint64) ([]model.ListingEntity, error)
	DeleteDraft(ctx context.Context, ownerID, listingID uint64) (bool, error)
	MarkPending(ctx context.Context, ownerID, listingID uint64) (bool, error)
	MarkVerifiedTx(ctx context.Context, tx *sqlx.Tx, listingID uint64) (bool, error)
	Save(ctx context.Context, userID, listingID uint64) error
	Unsave(ctx context.Context, userID, listingID uint64) error
	ListSaved(ctx context.Context, userID uint64) ([]uint64, error)
	IsUnlocked(ctx context.Context, userID, listingID uint64) (bool, error)
	IsUnlockedTx(ctx context.Context, tx *sqlx.Tx, userID, listingID uint64) (bool, error)
	InsertUnlockTx(ctx context.Context, tx *sqlx.Tx, userID, listingID uint64) error
	ListUnlocked(ctx context.Context, userID uint64) ([]uint64, error)
}

func NewListingRepository(conn *sqlx.DB) ListingRepository {
	return &SQL{conn: conn}
}

const (
	listingColumns = `id, title, description, price, address, city, state, bedrooms, bathrooms, furnished, size_sqm, amenities, images, landlord_name, landlord_phone, landlord_email, status, verified, submitted_by, points_to_unlock, requires_paid_points, created_at, updated_at`

	insertListingQuery = `INSERT INTO listing (title, description, price, address, city, state, bedrooms, bathrooms, furnished, size_sqm, amenities, images, landlord_name, landlord_phone, landlord_email, status, verified, submitted_by, points_to_unlock, requires_paid_points, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`
)

func (r *SQL) Insert(ctx context.Context, e *model.ListingEntity) (uint64, error) {
	res, err := r.conn.ExecContext(ctx, insertListingQuery,
		e.Title, e.Description, e.Price, e.Address, e.City, e.State,
		e.Bedrooms, e.Bathrooms, e.Furnished, e.SizeSqm, e.Amenities, e.Images,
		e.LandlordName, e.LandlordPhone, e.LandlordEmail,
		e.Status, e.Verified, e.SubmittedBy, e.PointsToUnlock, e.RequiresPaidPoints)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) GetByID(ctx context.Context, listingID uint64) (*model.ListingEntity, error) {
	var e model.ListingEntity
	q := "SELECT " + listingColumns + " FROM listing WHERE id = ?"
	if err := r.conn.QueryRowxContext(ctx, q, listingID).StructScan(&e); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// GetByIDTx reads the listing inside an open transaction so the unlock
// path sees a snapshot consistent with the locked balance row.
func (r *SQL) GetByIDTx(ctx context.Context, tx *sqlx.Tx, listingID uint64) (*model.ListingEntity, error) {
	var e model.ListingEntity
	q := "SELECT " + listingColumns + " FROM listing WHERE id = ?"
	if err := tx.QueryRowxContext(ctx, q, listingID).StructScan(&e); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// ListVisible returns verified listings plus the viewer's own, regardless
// of status. Non-verified listings of other users are excluded entirely.
func (r *SQL) ListVisible(ctx context.Context, viewerID uint64) ([]model.ListingEntity, error) {
	q := "SELECT " + listingColumns + " FROM listing WHERE verified = true OR submitted_by = ? ORDER BY created_at DESC, id DESC"
	rows, err := r.conn.QueryxContext(ctx, q, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ListingEntity, 0)
	for rows.Next() {
		var e model.ListingEntity
		if err := rows.StructScan(&e); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// DeleteDraft removes the listing only while it is still a draft owned by
// ownerID. Returns whether a row was deleted.
func (r *SQL) DeleteDraft(ctx context.Context, ownerID, listingID uint64) (bool, error) {
	res, err := r.conn.ExecContext(ctx,
		"DELETE FROM listing WHERE id = ? AND submitted_by = ? AND status = ?",
		listingID, ownerID, constant.ListingStatusDraft)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// MarkPending moves the owner's draft into the review queue. The status
// guard means only drafts move; returns whether a row changed.
func (r *SQL) MarkPending(ctx context.Context, ownerID, listingID uint64) (bool, error) {
	res, err := r.conn.ExecContext(ctx,
		"UPDATE listing SET status = ?, updated_at = NOW() WHERE id = ? AND submitted_by = ? AND status = ?",
		constant.ListingStatusPending, listingID, ownerID, constant.ListingStatusDraft)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// MarkVerifiedTx flips the listing to verified/available. The verified
// guard makes repeated calls report false so the bonus fires once.
func (r *SQL) MarkVerifiedTx(ctx context.Context, tx *sqlx.Tx, listingID uint64) (bool, error) {
	res, err := tx.ExecContext(ctx,
		"UPDATE listing SET verified = true, status = ?, updated_at = NOW() WHERE id = ? AND verified = false",
		constant.ListingStatusAvailable, listingID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *SQL) Save(ctx context.Context, userID, listingID uint64) error {
	_, err := r.conn.ExecContext(ctx,
		"INSERT IGNORE INTO listing_save (user_id, listing_id, created_at) VALUES (?, ?, NOW())",
		userID, listingID)
	return err
}

func (r *SQL) Unsave(ctx context.Context, userID, listingID uint64) error {
	_, err := r.conn.ExecContext(ctx,
		"DELETE FROM listing_save WHERE user_id = ? AND listing_id = ?",
		userID, listingID)
	return err
}

func (r *SQL) ListSaved(ctx context.Context, userID uint64) ([]uint64, error) {
	return r.listIDs(ctx, "SELECT listing_id FROM listing_save WHERE user_id = ?", userID)
}

func (r *SQL) IsUnlocked(ctx context.Context, userID, listingID uint64) (bool, error) {
	var count int64
	q := "SELECT COUNT(1) FROM listing_unlock WHERE user_id = ? AND listing_id = ?"
	if err := r.conn.GetContext(ctx, &count, q, userID, listingID); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SQL) IsUnlockedTx(ctx context.Context, tx *sqlx.Tx, userID, listingID uint64) (bool, error) {
	var count int64
	q := "SELECT COUNT(1) FROM listing_unlock WHERE user_id = ? AND listing_id = ?"
	if err := tx.GetContext(ctx, &count, q, userID, listingID); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SQL) InsertUnlockTx(ctx context.Context, tx *sqlx.Tx, userID, listingID uint64) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO listing_unlock (user_id, listing_id, created_at) VALUES (?, ?, NOW())",
		userID, listingID)
	return err
}

func (r *SQL) ListUnlocked(ctx context.Context, userID uint64) ([]uint64, error) {
	return r.listIDs(ctx, "SELECT listing_id FROM listing_unlock WHERE user_id = ?", userID)
}

func (r *SQL) listIDs(ctx context.Context, query string, userID uint64) ([]uint64, error) {
	rows, err := r.conn.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
