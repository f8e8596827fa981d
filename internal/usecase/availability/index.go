// Package availability is the only gatekeeper against double-booking: it
// keeps, per room, the ordered set of date ranges currently claimed.
package availability

import (
	"context"
	"sort"
	"sync"
	"time"

	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/pkg/errs"

	"github.com/google/uuid"
)

type ClaimKind string

const (
	KindHold      ClaimKind = "HOLD"
	KindConfirmed ClaimKind = "CONFIRMED"
)

type Claim struct {
	RoomID        uuid.UUID
	ReservationID uuid.UUID
	Stay          reservation.StayRange
	Kind          ClaimKind
	// zero for confirmed claims
	ExpiresAt time.Time
}

// Expired reports whether a HOLD claim has reached its expiry at now.
func (c Claim) Expired(now time.Time) bool {
	return c.Kind == KindHold && !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

type roomClaims struct {
	mu     sync.Mutex
	claims []Claim // sorted by check-in, pairwise disjoint
}

// search returns the index of the first claim starting on or after stay's check-in.
func (rc *roomClaims) search(stay reservation.StayRange) int {
	return sort.Search(len(rc.claims), func(i int) bool {
		return !rc.claims[i].Stay.CheckIn().Before(stay.CheckIn())
	})
}

// conflict returns the claim overlapping stay, if any. Because stored claims
// are disjoint, only the neighbours of the insertion point can overlap.
func (rc *roomClaims) conflict(stay reservation.StayRange) (Claim, int, bool) {
	i := rc.search(stay)
	if i > 0 && rc.claims[i-1].Stay.Overlaps(stay) {
		return rc.claims[i-1], i, true
	}
	if i < len(rc.claims) && rc.claims[i].Stay.Overlaps(stay) {
		return rc.claims[i], i, true
	}
	return Claim{}, i, false
}

func (rc *roomClaims) find(reservationID uuid.UUID) int {
	for i, c := range rc.claims {
		if c.ReservationID == reservationID {
			return i
		}
	}
	return -1
}

type Index struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]*roomClaims
}

func NewIndex() *Index {
	return &Index{rooms: make(map[uuid.UUID]*roomClaims)}
}

func (x *Index) room(roomID uuid.UUID, create bool) *roomClaims {
	x.mu.RLock()
	rc, ok := x.rooms[roomID]
	x.mu.RUnlock()
	if ok || !create {
		return rc
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	if rc, ok = x.rooms[roomID]; !ok {
		rc = &roomClaims{}
		x.rooms[roomID] = rc
	}
	return rc
}

func validateStay(stay reservation.StayRange) error {
	if stay.IsZero() || stay.Nights() < 1 {
		return errs.Wrapf(errs.ErrInvalidRange, "range %s has no nights", stay)
	}
	return nil
}

// TryClaim records stay as a HOLD for reservationID when no existing claim on
// the room overlaps it. The check and the insert happen under the room's lock.
func (x *Index) TryClaim(ctx context.Context, roomID uuid.UUID, stay reservation.StayRange, reservationID uuid.UUID, expiresAt time.Time) (Claim, error) {
	if err := validateStay(stay); err != nil {
		return Claim{}, err
	}
	if err := ctx.Err(); err != nil {
		return Claim{}, err
	}

	rc := x.room(roomID, true)
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if held, _, ok := rc.conflict(stay); ok {
		return Claim{}, &errs.ConflictError{
			RoomID:        roomID,
			ReservationID: held.ReservationID,
			CheckIn:       held.Stay.CheckIn(),
			CheckOut:      held.Stay.CheckOut(),
		}
	}
	if rc.find(reservationID) >= 0 {
		return Claim{}, errs.AssertionFailed("reservation %s already holds a claim on room %s", reservationID, roomID)
	}

	claim := Claim{
		RoomID:        roomID,
		ReservationID: reservationID,
		Stay:          stay,
		Kind:          KindHold,
		ExpiresAt:     expiresAt,
	}
	_, i, _ := rc.conflict(stay)
	rc.claims = append(rc.claims, Claim{})
	copy(rc.claims[i+1:], rc.claims[i:])
	rc.claims[i] = claim
	return claim, nil
}

// Confirm upgrades a HOLD to CONFIRMED. Confirming twice is a no-op.
func (x *Index) Confirm(ctx context.Context, roomID, reservationID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rc := x.room(roomID, false)
	if rc == nil {
		return errs.Wrapf(errs.ErrNotFound, "no claim for reservation %s on room %s", reservationID, roomID)
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	i := rc.find(reservationID)
	if i < 0 {
		return errs.Wrapf(errs.ErrNotFound, "no claim for reservation %s on room %s", reservationID, roomID)
	}
	rc.claims[i].Kind = KindConfirmed
	rc.claims[i].ExpiresAt = time.Time{}
	return nil
}

// Release drops the claim entirely. Releasing an unknown claim is a no-op
// and reports false.
func (x *Index) Release(ctx context.Context, roomID, reservationID uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	rc := x.room(roomID, false)
	if rc == nil {
		return false, nil
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	i := rc.find(reservationID)
	if i < 0 {
		return false, nil
	}
	rc.claims = append(rc.claims[:i], rc.claims[i+1:]...)
	return true, nil
}

// IsFree answers without claiming anything.
func (x *Index) IsFree(ctx context.Context, roomID uuid.UUID, stay reservation.StayRange) (bool, error) {
	if err := validateStay(stay); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	rc := x.room(roomID, false)
	if rc == nil {
		return true, nil
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()
	_, _, taken := rc.conflict(stay)
	return !taken, nil
}

// Restore re-inserts a claim loaded from the durable store at startup.
func (x *Index) Restore(ctx context.Context, claim Claim) error {
	held, err := x.TryClaim(ctx, claim.RoomID, claim.Stay, claim.ReservationID, claim.ExpiresAt)
	if err != nil {
		return err
	}
	if claim.Kind == KindConfirmed {
		return x.Confirm(ctx, held.RoomID, held.ReservationID)
	}
	return nil
}

// Lookup returns the claim held by reservationID on the room.
func (x *Index) Lookup(roomID, reservationID uuid.UUID) (Claim, bool) {
	rc := x.room(roomID, false)
	if rc == nil {
		return Claim{}, false
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	i := rc.find(reservationID)
	if i < 0 {
		return Claim{}, false
	}
	return rc.claims[i], true
}

// Claims returns a snapshot of a room's claims ordered by check-in.
func (x *Index) Claims(roomID uuid.UUID) []Claim {
	rc := x.room(roomID, false)
	if rc == nil {
		return nil
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	out := make([]Claim, len(rc.claims))
	copy(out, rc.claims)
	return out
}

// ExpiredHolds lists HOLD claims whose expiry is at or before now. It does
// not release them; the caller expires the owning reservation first.
func (x *Index) ExpiredHolds(now time.Time) []Claim {
	x.mu.RLock()
	rooms := make([]*roomClaims, 0, len(x.rooms))
	for _, rc := range x.rooms {
		rooms = append(rooms, rc)
	}
	x.mu.RUnlock()

	var expired []Claim
	for _, rc := range rooms {
		rc.mu.Lock()
		for _, c := range rc.claims {
			if c.Expired(now) {
				expired = append(expired, c)
			}
		}
		rc.mu.Unlock()
	}
	sort.Slice(expired, func(i, j int) bool {
		return expired[i].ExpiresAt.Before(expired[j].ExpiresAt)
	})
	return expired
}
