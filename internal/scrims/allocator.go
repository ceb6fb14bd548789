// internal/scrims/allocator.go
package scrims

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/MHBDPro/rage-backend/internal/models"
)

// Field length bounds for registration input.
const (
	minNameLen = 2
	maxNameLen = 30
	minTagLen  = 3
	maxTagLen  = 30
	minTeamLen = 2
	maxTeamLen = 40
)

// RegisterRequest carries one public registration attempt.
type RegisterRequest struct {
	SessionID  uuid.UUID
	SlotNumber int
	PlayerName string
	PlayerTag  string
	Team       string
	IP         string
}

// Register assigns a player to a numbered slot. Preconditions are checked in
// a fixed order, each with its own rejection reason; the insert itself is
// guarded by the (session_id, slot_number) unique constraint. A constraint
// violation at insert time is reported as "slot taken" exactly like a failed
// pre-check.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (Result, error) {
	sess, err := s.store.GetSession(ctx, req.SessionID)
	if errors.Is(err, ErrNotFound) {
		return reject(ReasonNotFound, "scrim not found"), nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("load session: %w", err)
	}

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load settings: %w", err)
	}
	if settings.Maintenance {
		return reject(ReasonMaintenance, "registrations are paused for maintenance"), nil
	}

	switch EffectiveStatus(sess, s.now()) {
	case models.StatusCompleted:
		return reject(ReasonNotOpen, "this scrim has ended"), nil
	case models.StatusClosed:
		return reject(ReasonNotOpen, "registration has not opened yet"), nil
	}

	if res := s.validateIdentity(req.PlayerName, req.PlayerTag, req.Team); !res.OK {
		return res, nil
	}

	if req.SlotNumber < 1 || req.SlotNumber > sess.MaxSlots {
		return reject(ReasonBadSlot, fmt.Sprintf("slot number must be between 1 and %d", sess.MaxSlots)), nil
	}

	occupied, err := s.store.CountOccupied(ctx, sess.ID)
	if err != nil {
		return Result{}, fmt.Errorf("count occupied slots: %w", err)
	}
	if occupied >= sess.MaxSlots {
		return reject(ReasonFull, "this scrim is full"), nil
	}

	if _, err := s.store.FindSlotByIP(ctx, sess.ID, req.IP); err == nil {
		return reject(ReasonDuplicateIP, "a registration from this address already exists"), nil
	} else if !errors.Is(err, ErrNotFound) {
		return Result{}, fmt.Errorf("ip dedup check: %w", err)
	}

	if _, err := s.store.FindSlotByTag(ctx, sess.ID, req.PlayerTag); err == nil {
		return reject(ReasonDuplicateTag, "this player id is already registered"), nil
	} else if !errors.Is(err, ErrNotFound) {
		return Result{}, fmt.Errorf("tag dedup check: %w", err)
	}

	existing, err := s.store.GetSlotByNumber(ctx, sess.ID, req.SlotNumber)
	if err == nil {
		if existing.IsLocked {
			return reject(ReasonSlotLocked, "this slot is locked"), nil
		}
		return reject(ReasonSlotTaken, "this slot is already taken"), nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Result{}, fmt.Errorf("slot lookup: %w", err)
	}

	slot := &models.Slot{
		ID:         uuid.New(),
		SessionID:  sess.ID,
		Number:     req.SlotNumber,
		PlayerName: req.PlayerName,
		PlayerTag:  req.PlayerTag,
		Team:       req.Team,
		IP:         req.IP,
		Names:      []string{req.PlayerName},
		CreatedAt:  s.now(),
	}
	if err := s.store.InsertSlot(ctx, slot); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			// Lost the race past the pre-check; the constraint is truth.
			return reject(ReasonSlotTaken, "this slot is already taken"), nil
		}
		return Result{}, fmt.Errorf("insert slot: %w", err)
	}

	s.notifySlots(sess.ID, sess.Slug)
	res := ok(fmt.Sprintf("registered for slot %d", req.SlotNumber))
	res.SlotNumber = req.SlotNumber
	return res, nil
}

// validateIdentity applies length bounds and the profanity filter to the
// user-supplied strings.
func (s *Service) validateIdentity(name, tag, team string) Result {
	if n := utf8.RuneCountInString(name); n < minNameLen || n > maxNameLen {
		return reject(ReasonValidation, fmt.Sprintf("player name must be %d-%d characters", minNameLen, maxNameLen))
	}
	if n := utf8.RuneCountInString(tag); n < minTagLen || n > maxTagLen {
		return reject(ReasonValidation, fmt.Sprintf("player id must be %d-%d characters", minTagLen, maxTagLen))
	}
	if n := utf8.RuneCountInString(team); n < minTeamLen || n > maxTeamLen {
		return reject(ReasonValidation, fmt.Sprintf("team name must be %d-%d characters", minTeamLen, maxTeamLen))
	}
	if s.filter.Contains(name) || s.filter.Contains(tag) || s.filter.Contains(team) {
		return reject(ReasonValidation, "inappropriate language is not allowed")
	}
	return ok("")
}

// ManualAdd places a player into a slot on behalf of an admin. The open-time,
// maintenance and profanity gates do not apply; capacity, per-slot and
// per-tag uniqueness still do. The stored IP is a fixed marker so admin adds
// never collide with real client IP dedup.
func (s *Service) ManualAdd(ctx context.Context, sessionID uuid.UUID, slotNumber int, name, tag, team string) (Result, error) {
	sess, err := s.store.GetSession(ctx, sessionID)
	if errors.Is(err, ErrNotFound) {
		return reject(ReasonNotFound, "scrim not found"), nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("load session: %w", err)
	}

	if n := utf8.RuneCountInString(name); n < minNameLen || n > maxNameLen {
		return reject(ReasonValidation, fmt.Sprintf("player name must be %d-%d characters", minNameLen, maxNameLen)), nil
	}
	if n := utf8.RuneCountInString(tag); n < minTagLen || n > maxTagLen {
		return reject(ReasonValidation, fmt.Sprintf("player id must be %d-%d characters", minTagLen, maxTagLen)), nil
	}
	if n := utf8.RuneCountInString(team); n < minTeamLen || n > maxTeamLen {
		return reject(ReasonValidation, fmt.Sprintf("team name must be %d-%d characters", minTeamLen, maxTeamLen)), nil
	}

	if slotNumber < 1 || slotNumber > sess.MaxSlots {
		return reject(ReasonBadSlot, fmt.Sprintf("slot number must be between 1 and %d", sess.MaxSlots)), nil
	}

	occupied, err := s.store.CountOccupied(ctx, sess.ID)
	if err != nil {
		return Result{}, fmt.Errorf("count occupied slots: %w", err)
	}
	if occupied >= sess.MaxSlots {
		return reject(ReasonFull, "this scrim is full"), nil
	}

	if _, err := s.store.FindSlotByTag(ctx, sess.ID, tag); err == nil {
		return reject(ReasonDuplicateTag, "this player id is already registered"), nil
	} else if !errors.Is(err, ErrNotFound) {
		return Result{}, fmt.Errorf("tag dedup check: %w", err)
	}

	if existing, err := s.store.GetSlotByNumber(ctx, sess.ID, slotNumber); err == nil {
		if existing.IsLocked {
			return reject(ReasonSlotLocked, "this slot is locked"), nil
		}
		return reject(ReasonSlotTaken, "this slot is already taken"), nil
	} else if !errors.Is(err, ErrNotFound) {
		return Result{}, fmt.Errorf("slot lookup: %w", err)
	}

	slot := &models.Slot{
		ID:         uuid.New(),
		SessionID:  sess.ID,
		Number:     slotNumber,
		PlayerName: name,
		PlayerTag:  tag,
		Team:       team,
		IP:         models.AdminIPMarker,
		Names:      []string{name},
		CreatedAt:  s.now(),
	}
	if err := s.store.InsertSlot(ctx, slot); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return reject(ReasonSlotTaken, "this slot is already taken"), nil
		}
		return Result{}, fmt.Errorf("insert slot: %w", err)
	}

	s.notifySlots(sess.ID, sess.Slug)
	res := ok(fmt.Sprintf("player added to slot %d", slotNumber))
	res.SlotNumber = slotNumber
	return res, nil
}

// LockSlot reserves a slot so nobody can register into it. Locking an
// occupied slot is rejected; the admin must delete the registration first.
func (s *Service) LockSlot(ctx context.Context, sessionID uuid.UUID, slotNumber int) (Result, error) {
	sess, err := s.store.GetSession(ctx, sessionID)
	if errors.Is(err, ErrNotFound) {
		return reject(ReasonNotFound, "scrim not found"), nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("load session: %w", err)
	}
	if slotNumber < 1 || slotNumber > sess.MaxSlots {
		return reject(ReasonBadSlot, fmt.Sprintf("slot number must be between 1 and %d", sess.MaxSlots)), nil
	}

	if existing, err := s.store.GetSlotByNumber(ctx, sess.ID, slotNumber); err == nil {
		if !existing.IsLocked {
			return reject(ReasonOccupied, "slot is occupied; remove the registration first"), nil
		}
		return ok("slot is already locked"), nil
	} else if !errors.Is(err, ErrNotFound) {
		return Result{}, fmt.Errorf("slot lookup: %w", err)
	}

	slot := &models.Slot{
		ID:        uuid.New(),
		SessionID: sess.ID,
		Number:    slotNumber,
		IsLocked:  true,
		CreatedAt: s.now(),
	}
	if err := s.store.InsertSlot(ctx, slot); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return reject(ReasonSlotTaken, "this slot is already taken"), nil
		}
		return Result{}, fmt.Errorf("insert locked slot: %w", err)
	}

	s.notifySlots(sess.ID, sess.Slug)
	return ok(fmt.Sprintf("slot %d locked", slotNumber)), nil
}

// UnlockSlot removes a locked row, reopening the slot. Unlocking an open
// slot is a no-op; unlocking an occupied slot is rejected.
func (s *Service) UnlockSlot(ctx context.Context, sessionID uuid.UUID, slotNumber int) (Result, error) {
	sess, err := s.store.GetSession(ctx, sessionID)
	if errors.Is(err, ErrNotFound) {
		return reject(ReasonNotFound, "scrim not found"), nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("load session: %w", err)
	}

	existing, err := s.store.GetSlotByNumber(ctx, sess.ID, slotNumber)
	if errors.Is(err, ErrNotFound) {
		return ok("slot is already open"), nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("slot lookup: %w", err)
	}
	if !existing.IsLocked {
		return reject(ReasonOccupied, "slot is occupied; remove the registration instead"), nil
	}

	if err := s.store.DeleteSlot(ctx, existing.ID); err != nil {
		return Result{}, fmt.Errorf("delete locked slot: %w", err)
	}

	s.notifySlots(sess.ID, sess.Slug)
	return ok(fmt.Sprintf("slot %d unlocked", slotNumber)), nil
}

// RemoveSlot deletes a slot row by its id, freeing the position regardless
// of whether it was occupied or locked.
func (s *Service) RemoveSlot(ctx context.Context, slotID uuid.UUID) (Result, error) {
	slot, err := s.store.GetSlot(ctx, slotID)
	if errors.Is(err, ErrNotFound) {
		return reject(ReasonNotFound, "slot not found"), nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("load slot: %w", err)
	}

	if err := s.store.DeleteSlot(ctx, slot.ID); err != nil {
		return Result{}, fmt.Errorf("delete slot: %w", err)
	}

	sess, err := s.store.GetSession(ctx, slot.SessionID)
	if err == nil {
		s.notifySlots(sess.ID, sess.Slug)
	}
	return ok("slot removed"), nil
}
