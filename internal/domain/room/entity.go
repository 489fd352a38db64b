package room

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidName = errors.New("room name cannot be empty")

// Room is a bookable unit resolved from the hotel catalog. The catalog
// itself (hotel management CRUD) lives outside this service; admission
// only needs existence and display data.
type Room struct {
	id       uuid.UUID
	hotelID  uuid.UUID
	name     string
	capacity int
}

func NewRoom(id, hotelID uuid.UUID, name string, capacity int) (*Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if capacity < 1 {
		capacity = 1
	}
	return &Room{
		id:       id,
		hotelID:  hotelID,
		name:     name,
		capacity: capacity,
	}, nil
}

func (r *Room) ID() uuid.UUID      { return r.id }
func (r *Room) HotelID() uuid.UUID { return r.hotelID }
func (r *Room) Name() string       { return r.name }
func (r *Room) Capacity() int      { return r.capacity }
