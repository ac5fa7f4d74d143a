package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/domain/enum"
	"github.com/atlantichotel/frontdesk-api/internal/domain/repository"
	"github.com/atlantichotel/frontdesk-api/pkg/apperror"
	"go.uber.org/zap"
)

// RoomService runs the room state machine. Every transition is written
// locally first and then pushed with an upsert.
type RoomService struct {
	cache  repository.RoomCache
	remote repository.RemoteRoomRepository
	queue  *SyncQueue
	conn   Connectivity
	logger *zap.Logger
	now    func() time.Time

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewRoomService creates a new room service
func NewRoomService(
	cache repository.RoomCache,
	remote repository.RemoteRoomRepository,
	queueStore repository.SyncQueueStore,
	conn Connectivity,
	logger *zap.Logger,
) *RoomService {
	s := &RoomService{
		cache:  cache,
		remote: remote,
		conn:   conn,
		logger: logger.With(zap.String("service", "rooms")),
		now:    time.Now,
	}
	s.queue = NewSyncQueue("rooms", queueStore, &roomSyncTarget{s}, conn, logger)
	return s
}

// Queue exposes the rooms sync queue
func (s *RoomService) Queue() *SyncQueue {
	return s.queue
}

// CheckoutResult describes a completed checkout
type CheckoutResult struct {
	Room      *entity.Room `json:"room"`
	GuestName string       `json:"guestName"`
	CheckIn   string       `json:"checkIn"`
	CheckOut  string       `json:"checkOut"`
}

// InitializeRooms loads the room set for a branch. A non-empty cloud set
// wins over local state, except for rooms still waiting in the queue,
// whose local copy is newer. Defaults are seeded only when neither side
// has rooms.
func (s *RoomService) InitializeRooms(ctx context.Context, location string) ([]entity.Room, error) {
	if _, ok := entity.GetLocation(location); !ok {
		return nil, ErrUnknownLocation
	}

	if s.conn.IsOnline() {
		remoteRooms, err := s.remote.ListByLocation(ctx, location)
		if err != nil {
			s.logger.Warn("fetch rooms failed", zap.String("location", location), zap.Error(err))
		} else if len(remoteRooms) > 0 {
			return s.mergeRemote(ctx, location, remoteRooms)
		}
	}

	local, err := s.cache.ListByLocation(ctx, location)
	if err != nil {
		return nil, err
	}
	if len(local) > 0 {
		return local, nil
	}

	rooms := entity.DefaultRooms(location, s.now().UnixMilli())
	if err := s.cache.SaveLocation(ctx, location, rooms); err != nil {
		return nil, err
	}
	ids := make([]string, len(rooms))
	for i := range rooms {
		ids[i] = rooms[i].ID
	}
	if err := s.queue.EnqueueMany(ctx, ids); err != nil {
		return nil, err
	}
	s.logger.Info("seeded default rooms", zap.String("location", location), zap.Int("count", len(rooms)))

	if s.conn.IsOnline() {
		if err := s.remote.UpsertBatch(ctx, rooms); err != nil {
			s.logger.Warn("push default rooms failed", zap.String("location", location), zap.Error(err))
		} else if err := s.queue.MarkSynced(ctx, ids); err != nil {
			return nil, err
		}
	}
	return s.cache.ListByLocation(ctx, location)
}

func (s *RoomService) mergeRemote(ctx context.Context, location string, remoteRooms []entity.Room) ([]entity.Room, error) {
	queued, err := s.queue.IDs(ctx)
	if err != nil {
		return nil, err
	}
	pending := make(map[string]struct{}, len(queued))
	for _, id := range queued {
		pending[id] = struct{}{}
	}

	local, err := s.cache.ListByLocation(ctx, location)
	if err != nil {
		return nil, err
	}
	localByID := make(map[string]entity.Room, len(local))
	for _, r := range local {
		localByID[r.ID] = r
	}

	merged := make([]entity.Room, 0, len(remoteRooms))
	seen := make(map[string]struct{}, len(remoteRooms))
	for _, r := range remoteRooms {
		seen[r.ID] = struct{}{}
		if l, ok := localByID[r.ID]; ok {
			if _, queuedLocally := pending[r.ID]; queuedLocally {
				merged = append(merged, l)
				continue
			}
		}
		r.Synced = true
		merged = append(merged, r)
	}
	for _, l := range local {
		if _, ok := seen[l.ID]; ok {
			continue
		}
		if _, queuedLocally := pending[l.ID]; queuedLocally {
			merged = append(merged, l)
		}
	}

	if err := s.cache.SaveLocation(ctx, location, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// ensureRooms returns the local set, initializing the branch on first use
func (s *RoomService) ensureRooms(ctx context.Context, location string) ([]entity.Room, error) {
	if _, ok := entity.GetLocation(location); !ok {
		return nil, ErrUnknownLocation
	}
	rooms, err := s.cache.ListByLocation(ctx, location)
	if err != nil {
		return nil, err
	}
	if len(rooms) > 0 {
		return rooms, nil
	}
	return s.InitializeRooms(ctx, location)
}

// List returns a branch's rooms ordered by room number. Combined rooms
// such as 11/13 sort by their first number.
func (s *RoomService) List(ctx context.Context, location string) ([]entity.Room, error) {
	rooms, err := s.ensureRooms(ctx, location)
	if err != nil {
		return nil, err
	}
	sortRooms(rooms)
	return rooms, nil
}

// Get returns one room
func (s *RoomService) Get(ctx context.Context, location, number string) (*entity.Room, error) {
	if _, err := s.ensureRooms(ctx, location); err != nil {
		return nil, err
	}
	room, err := s.cache.Get(ctx, entity.RoomID(location, number))
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("Room %s", number))
	}
	return room, nil
}

// Available lists rooms a new guest can be checked into
func (s *RoomService) Available(ctx context.Context, location string) ([]entity.Room, error) {
	rooms, err := s.List(ctx, location)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.Status == enum.RoomStatusAvailable && !r.IsManagerRoom {
			out = append(out, r)
		}
	}
	return out, nil
}

// ByFloor groups a branch's rooms by floor
func (s *RoomService) ByFloor(ctx context.Context, location string) (map[int][]entity.Room, error) {
	rooms, err := s.List(ctx, location)
	if err != nil {
		return nil, err
	}
	floors := make(map[int][]entity.Room)
	for _, r := range rooms {
		floors[r.Floor] = append(floors[r.Floor], r)
	}
	return floors, nil
}

// Stats counts rooms per status
func (s *RoomService) Stats(ctx context.Context, location string) (*entity.RoomStats, error) {
	rooms, err := s.ensureRooms(ctx, location)
	if err != nil {
		return nil, err
	}
	stats := &entity.RoomStats{Total: len(rooms)}
	for _, r := range rooms {
		switch r.Status {
		case enum.RoomStatusAvailable:
			stats.Available++
		case enum.RoomStatusOccupied:
			stats.Occupied++
		case enum.RoomStatusMaintenance:
			stats.Maintenance++
		default:
			panic(fmt.Sprintf("unhandled room status %d", int(r.Status)))
		}
		if !r.Synced {
			stats.Unsynced++
		}
	}
	return stats, nil
}

// PendingCount is the number of rooms waiting to be written remotely
func (s *RoomService) PendingCount(ctx context.Context) (int, error) {
	return s.queue.Len(ctx)
}

// CheckIn moves an available room to occupied for guestName
func (s *RoomService) CheckIn(ctx context.Context, location, number, guestName, checkIn string) (*entity.Room, error) {
	if err := validateOccupant(guestName, checkIn); err != nil {
		return nil, err
	}
	return s.transition(ctx, location, number, enum.RoomStatusOccupied, occupy(guestName, checkIn))
}

func validateOccupant(guestName, checkIn string) error {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(guestName) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "guestName", Message: "Guest name is required to occupy a room"})
	}
	if strings.TrimSpace(checkIn) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "checkIn", Message: "Check-in date is required"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

func occupy(guestName, checkIn string) func(*entity.Room) {
	return func(r *entity.Room) {
		r.GuestName = strings.TrimSpace(guestName)
		r.CheckIn = checkIn
		r.CheckOut = ""
	}
}

// CheckOut frees an occupied room. The guest fields are returned and then
// cleared from the room; receipts keep the stay history.
func (s *RoomService) CheckOut(ctx context.Context, location, number, checkOut string) (*CheckoutResult, error) {
	if checkOut == "" {
		checkOut = s.now().Format("2006-01-02")
	}

	result := &CheckoutResult{CheckOut: checkOut}
	room, err := s.transitionFrom(ctx, location, number, enum.RoomStatusOccupied, enum.RoomStatusAvailable, func(r *entity.Room) {
		result.GuestName = r.GuestName
		result.CheckIn = r.CheckIn
		r.CheckOut = checkOut
	})
	if err != nil {
		return nil, err
	}
	result.Room = room
	return result, nil
}

// SetMaintenance takes an available or occupied room out of service
func (s *RoomService) SetMaintenance(ctx context.Context, location, number string) (*entity.Room, error) {
	return s.transition(ctx, location, number, enum.RoomStatusMaintenance, nil)
}

// SetAvailable returns a room from maintenance
func (s *RoomService) SetAvailable(ctx context.Context, location, number string) (*entity.Room, error) {
	return s.transitionFrom(ctx, location, number, enum.RoomStatusMaintenance, enum.RoomStatusAvailable, nil)
}

// ValidateRooms checks that every room exists and is in status want,
// returning one field error per offending room.
func (s *RoomService) ValidateRooms(ctx context.Context, location string, numbers []string, want enum.RoomStatus) error {
	if _, err := s.ensureRooms(ctx, location); err != nil {
		return err
	}
	unlock := s.lockLocation(location)
	defer unlock()
	return s.checkRooms(ctx, location, numbers, want)
}

// checkRooms expects the location lock to be held
func (s *RoomService) checkRooms(ctx context.Context, location string, numbers []string, want enum.RoomStatus) error {
	var fieldErrors []apperror.FieldError
	for _, n := range numbers {
		room, err := s.cache.Get(ctx, entity.RoomID(location, n))
		if err != nil {
			return err
		}
		field := "rooms." + n
		switch {
		case room == nil:
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: "Room does not exist at this location"})
		case room.IsManagerRoom:
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: "Manager's room cannot be booked"})
		case room.Status != want:
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: fmt.Sprintf("Room is %s", room.Status)})
		}
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// Reservation holds rooms occupied locally for one booking that have not
// been pushed yet. Confirm pushes them; Release puts them back.
type Reservation struct {
	svc      *RoomService
	location string
	rooms    []*entity.Room
	before   []entity.Room
}

// Reserve checks that every room is available and occupies all of them
// under the location lock, so two bookings cannot take the same room.
// Nothing is written when any room fails the check.
func (s *RoomService) Reserve(ctx context.Context, location string, numbers []string, guestFor func(number string) string, checkIn string) (*Reservation, error) {
	if _, err := s.ensureRooms(ctx, location); err != nil {
		return nil, err
	}

	unlock := s.lockLocation(location)
	defer unlock()

	if err := s.checkRooms(ctx, location, numbers, enum.RoomStatusAvailable); err != nil {
		return nil, err
	}

	res := &Reservation{svc: s, location: location}
	for _, n := range numbers {
		guest := guestFor(n)
		if err := validateOccupant(guest, checkIn); err != nil {
			s.restore(ctx, res.before)
			return nil, err
		}
		room, before, err := s.writeLocal(ctx, location, n, nil, enum.RoomStatusOccupied, occupy(guest, checkIn))
		if err != nil {
			s.restore(ctx, res.before)
			return nil, err
		}
		res.rooms = append(res.rooms, room)
		res.before = append(res.before, before)
	}
	return res, nil
}

// Rooms returns the reserved rooms in booking order
func (r *Reservation) Rooms() []*entity.Room {
	return r.rooms
}

// Confirm pushes every reserved room through the rooms queue
func (r *Reservation) Confirm(ctx context.Context) error {
	for i, room := range r.rooms {
		if err := r.svc.publish(ctx, room, r.before[i].Status); err != nil {
			return err
		}
	}
	return nil
}

// Release restores the rooms to their state before the reservation
func (r *Reservation) Release(ctx context.Context) {
	unlock := r.svc.lockLocation(r.location)
	defer unlock()
	r.svc.restore(ctx, r.before)
}

// restore expects the location lock to be held
func (s *RoomService) restore(ctx context.Context, rooms []entity.Room) {
	for i := range rooms {
		if err := s.cache.Put(ctx, &rooms[i]); err != nil {
			s.logger.Error("restore room failed", zap.String("id", rooms[i].ID), zap.Error(err))
		}
	}
}

// lockLocation serializes local room writes at one branch
func (s *RoomService) lockLocation(location string) func() {
	s.locksMu.Lock()
	if s.locks == nil {
		s.locks = make(map[string]*sync.Mutex)
	}
	mu, ok := s.locks[location]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[location] = mu
	}
	s.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// CanTransition reports whether the state machine allows from -> to
func CanTransition(from, to enum.RoomStatus) bool {
	switch from {
	case enum.RoomStatusAvailable:
		return to == enum.RoomStatusOccupied || to == enum.RoomStatusMaintenance
	case enum.RoomStatusOccupied:
		return to == enum.RoomStatusAvailable || to == enum.RoomStatusMaintenance
	case enum.RoomStatusMaintenance:
		return to == enum.RoomStatusAvailable
	}
	panic(fmt.Sprintf("unhandled room status %d", int(from)))
}

func (s *RoomService) transition(ctx context.Context, location, number string, to enum.RoomStatus, mutate func(*entity.Room)) (*entity.Room, error) {
	return s.apply(ctx, location, number, nil, to, mutate)
}

func (s *RoomService) transitionFrom(ctx context.Context, location, number string, from, to enum.RoomStatus, mutate func(*entity.Room)) (*entity.Room, error) {
	return s.apply(ctx, location, number, &from, to, mutate)
}

func (s *RoomService) apply(ctx context.Context, location, number string, from *enum.RoomStatus, to enum.RoomStatus, mutate func(*entity.Room)) (*entity.Room, error) {
	if _, err := s.ensureRooms(ctx, location); err != nil {
		return nil, err
	}

	unlock := s.lockLocation(location)
	room, before, err := s.writeLocal(ctx, location, number, from, to, mutate)
	unlock()
	if err != nil {
		return nil, err
	}

	if err := s.publish(ctx, room, before.Status); err != nil {
		return nil, err
	}
	return room, nil
}

// writeLocal applies one transition to the cached room and returns the
// new state with a copy of the old one. The location lock must be held.
func (s *RoomService) writeLocal(ctx context.Context, location, number string, from *enum.RoomStatus, to enum.RoomStatus, mutate func(*entity.Room)) (*entity.Room, entity.Room, error) {
	room, err := s.cache.Get(ctx, entity.RoomID(location, number))
	if err != nil {
		return nil, entity.Room{}, err
	}
	if room == nil {
		return nil, entity.Room{}, apperror.NewNotFoundError(fmt.Sprintf("Room %s", number))
	}
	before := *room

	if room.IsManagerRoom {
		return nil, before, ErrManagerRoomLocked
	}
	if from != nil && room.Status != *from {
		return nil, before, fmt.Errorf("room %s is %s: %w", number, room.Status, ErrInvalidTransition)
	}
	if !CanTransition(room.Status, to) {
		return nil, before, fmt.Errorf("room %s %s -> %s: %w", number, room.Status, to, ErrInvalidTransition)
	}

	if mutate != nil {
		mutate(room)
	}
	room.Status = to
	if to != enum.RoomStatusOccupied {
		room.ClearGuest()
	}
	room.LastUpdated = s.now().UnixMilli()
	room.Synced = false

	if err := s.cache.Put(ctx, room); err != nil {
		return nil, before, err
	}
	return room, before, nil
}

// publish pushes a locally written room or leaves it queued
func (s *RoomService) publish(ctx context.Context, room *entity.Room, prev enum.RoomStatus) error {
	synced, err := s.queue.Submit(ctx, room.ID)
	if err != nil {
		return err
	}
	room.Synced = synced

	s.logger.Info("room status changed",
		zap.String("location", room.Location),
		zap.String("room", room.Number),
		zap.String("from", prev.String()),
		zap.String("to", room.Status.String()),
		zap.Bool("synced", synced),
	)
	return nil
}

func sortRooms(rooms []entity.Room) {
	sort.SliceStable(rooms, func(i, j int) bool {
		a, b := leadingNumber(rooms[i].Number), leadingNumber(rooms[j].Number)
		if a != b {
			return a < b
		}
		return rooms[i].Number < rooms[j].Number
	})
}

func leadingNumber(s string) int {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 1 << 30
	}
	return n
}

type roomSyncTarget struct {
	s *RoomService
}

func (t *roomSyncTarget) Pending(ctx context.Context, id string) (bool, bool, error) {
	room, err := t.s.cache.Get(ctx, id)
	if err != nil || room == nil {
		return false, false, err
	}
	return true, !room.Synced, nil
}

func (t *roomSyncTarget) Push(ctx context.Context, id string) error {
	room, err := t.s.cache.Get(ctx, id)
	if err != nil {
		return err
	}
	if room == nil {
		return fmt.Errorf("room %s not cached", id)
	}
	return t.s.remote.Upsert(ctx, room)
}

func (t *roomSyncTarget) SetSynced(ctx context.Context, id string, synced bool) error {
	return t.s.cache.SetSynced(ctx, id, synced)
}

func (t *roomSyncTarget) UnsyncedIDs(ctx context.Context) ([]string, error) {
	var ids []string
	for _, loc := range entity.Locations() {
		rooms, err := t.s.cache.ListByLocation(ctx, loc.ID)
		if err != nil {
			return nil, err
		}
		for _, r := range rooms {
			if !r.Synced {
				ids = append(ids, r.ID)
			}
		}
	}
	return ids, nil
}
