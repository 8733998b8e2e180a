package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/you/turf-booking/services/turf-service/internal/domain"
)

// TxBeginner is satisfied by *pgxpool.Pool and by pgxmock pools.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Ledger applies the Booking Transition: the booked flag flip and the
// booking insert commit together or not at all.
type Ledger struct{ db TxBeginner }

func NewLedger(db TxBeginner) *Ledger {
	return &Ledger{db: db}
}

const (
	sqlClaimSlot = `UPDATE time_slots SET is_booked = TRUE
		WHERE id = $1 AND is_booked = FALSE
		RETURNING turf_id, start_time, end_time`

	sqlSlotExists = `SELECT EXISTS (SELECT 1 FROM time_slots WHERE id = $1)`

	sqlInsertBooking = `INSERT INTO bookings (user_id, timeslot_id, deposit_paid, fully_paid, created_at)
		VALUES ($1, $2, TRUE, FALSE, $3)
		RETURNING id`
)

// Reserve books slotID for userID. The UPDATE is a compare-and-set on
// is_booked, so of two racing callers only one gets the row back; the loser
// sees ErrSlotBooked and inserts nothing.
func (l *Ledger) Reserve(ctx context.Context, slotID, userID uint, at time.Time) (*domain.Booking, *domain.TimeSlot, error) {
	tx, err := l.db.Begin(ctx)
	if err != nil {
		return nil, nil, domain.Unavailable("begin reserve", err)
	}

	slot := &domain.TimeSlot{ID: slotID, IsBooked: true}
	err = tx.QueryRow(ctx, sqlClaimSlot, slotID).Scan(&slot.TurfID, &slot.StartTime, &slot.EndTime)
	if errors.Is(err, pgx.ErrNoRows) {
		err = l.explainMiss(ctx, tx, slotID)
		_ = tx.Rollback(ctx)
		return nil, nil, err
	}
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, nil, domain.Unavailable("claim slot", err)
	}

	b := &domain.Booking{UserID: userID, TimeSlotID: slotID, DepositPaid: true, CreatedAt: at}
	if err := tx.QueryRow(ctx, sqlInsertBooking, userID, slotID, at).Scan(&b.ID); err != nil {
		_ = tx.Rollback(ctx)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, nil, domain.ErrSlotBooked
		}
		return nil, nil, domain.Unavailable("insert booking", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, domain.Unavailable("commit reserve", err)
	}
	return b, slot, nil
}

// explainMiss tells a missing slot apart from one that is already booked.
func (l *Ledger) explainMiss(ctx context.Context, tx pgx.Tx, slotID uint) error {
	var exists bool
	if err := tx.QueryRow(ctx, sqlSlotExists, slotID).Scan(&exists); err != nil {
		return domain.Unavailable("probe slot", err)
	}
	if !exists {
		return domain.ErrSlotNotFound
	}
	return domain.ErrSlotBooked
}
