package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/lox/mahjong-cli/internal/tiles"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
// These represent events that occur within the mahjong game logic
const (
	EventTypeGameStart     EventType = "game_start"
	EventTypeTileDrawn     EventType = "tile_drawn"
	EventTypeTileDiscarded EventType = "tile_discarded"
	EventTypeClaimsOpen    EventType = "claims_open"
	EventTypeSeatPassed    EventType = "seat_passed"
	EventTypeMeldFormed    EventType = "meld_formed"
	EventTypeGameWon       EventType = "game_won"
	EventTypeWallExhausted EventType = "wall_exhausted"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a mahjong game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// GameStartEvent is published once the wall is built and hands are dealt
type GameStartEvent struct {
	Dealer    int
	Names     [NumSeats]string
	WallCount int
	timestamp time.Time
}

func (e GameStartEvent) EventType() EventType { return EventTypeGameStart }
func (e GameStartEvent) Timestamp() time.Time { return e.timestamp }

// NewGameStartedEvent creates a new game start event
func NewGameStartedEvent(dealer int, names [NumSeats]string, wallCount int) GameStartEvent {
	return GameStartEvent{
		Dealer:    dealer,
		Names:     names,
		WallCount: wallCount,
		timestamp: time.Now(),
	}
}

// TileDrawnEvent is published when a seat draws from the wall
type TileDrawnEvent struct {
	Seat      int
	Tile      tiles.Tile
	WallCount int
	timestamp time.Time
}

func (e TileDrawnEvent) EventType() EventType { return EventTypeTileDrawn }
func (e TileDrawnEvent) Timestamp() time.Time { return e.timestamp }

// NewTileDrawnEvent creates a new tile drawn event
func NewTileDrawnEvent(seat int, tile tiles.Tile, wallCount int) TileDrawnEvent {
	return TileDrawnEvent{
		Seat:      seat,
		Tile:      tile,
		WallCount: wallCount,
		timestamp: time.Now(),
	}
}

// TileDiscardedEvent is published when a seat discards a tile face up
type TileDiscardedEvent struct {
	Seat      int
	Tile      tiles.Tile
	timestamp time.Time
}

func (e TileDiscardedEvent) EventType() EventType { return EventTypeTileDiscarded }
func (e TileDiscardedEvent) Timestamp() time.Time { return e.timestamp }

// NewTileDiscardedEvent creates a new tile discarded event
func NewTileDiscardedEvent(seat int, tile tiles.Tile) TileDiscardedEvent {
	return TileDiscardedEvent{
		Seat:      seat,
		Tile:      tile,
		timestamp: time.Now(),
	}
}

// ClaimsOpenedEvent is published when a discard opens a non-empty claim set
type ClaimsOpenedEvent struct {
	Discarder int
	Tile      tiles.Tile
	Seats     []int
	timestamp time.Time
}

func (e ClaimsOpenedEvent) EventType() EventType { return EventTypeClaimsOpen }
func (e ClaimsOpenedEvent) Timestamp() time.Time { return e.timestamp }

// NewClaimsOpenedEvent creates a new claims opened event
func NewClaimsOpenedEvent(discarder int, tile tiles.Tile, seats []int) ClaimsOpenedEvent {
	s := make([]int, len(seats))
	copy(s, seats)
	return ClaimsOpenedEvent{
		Discarder: discarder,
		Tile:      tile,
		Seats:     s,
		timestamp: time.Now(),
	}
}

// SeatPassedEvent is published when a seat declines its pending claim
type SeatPassedEvent struct {
	Seat      int
	timestamp time.Time
}

func (e SeatPassedEvent) EventType() EventType { return EventTypeSeatPassed }
func (e SeatPassedEvent) Timestamp() time.Time { return e.timestamp }

// NewSeatPassedEvent creates a new seat passed event
func NewSeatPassedEvent(seat int) SeatPassedEvent {
	return SeatPassedEvent{
		Seat:      seat,
		timestamp: time.Now(),
	}
}

// MeldFormedEvent is published when a seat lays down a meld
type MeldFormedEvent struct {
	Seat      int
	Meld      Meld
	timestamp time.Time
}

func (e MeldFormedEvent) EventType() EventType { return EventTypeMeldFormed }
func (e MeldFormedEvent) Timestamp() time.Time { return e.timestamp }

// NewMeldFormedEvent creates a new meld formed event
func NewMeldFormedEvent(seat int, meld Meld) MeldFormedEvent {
	return MeldFormedEvent{
		Seat:      seat,
		Meld:      meld,
		timestamp: time.Now(),
	}
}

// GameWonEvent is published when a seat completes a winning hand. Tile is
// the claimed discard for a win by discard and nil for a self-drawn win.
type GameWonEvent struct {
	Seat      int
	WinType   WinType
	Tile      *tiles.Tile
	timestamp time.Time
}

func (e GameWonEvent) EventType() EventType { return EventTypeGameWon }
func (e GameWonEvent) Timestamp() time.Time { return e.timestamp }

// NewGameWonEvent creates a new game won event
func NewGameWonEvent(seat int, winType WinType, tile *tiles.Tile) GameWonEvent {
	return GameWonEvent{
		Seat:      seat,
		WinType:   winType,
		Tile:      tile,
		timestamp: time.Now(),
	}
}

// WallExhaustedEvent is published when a draw finds the wall empty and the
// game ends with no winner
type WallExhaustedEvent struct {
	timestamp time.Time
}

func (e WallExhaustedEvent) EventType() EventType { return EventTypeWallExhausted }
func (e WallExhaustedEvent) Timestamp() time.Time { return e.timestamp }

// NewWallExhaustedEvent creates a new wall exhausted event
func NewWallExhaustedEvent() WallExhaustedEvent {
	return WallExhaustedEvent{timestamp: time.Now()}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	Names       [NumSeats]string // Seat names used in place of seat numbers
	Perspective int              // Seat whose hidden tiles may be shown, -1 for none
	ShowHidden  bool             // Reveal draws and concealed kongs for every seat
}

// EventFormatter provides centralized formatting for all game events
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format renders any game event into a human-readable line
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case GameStartEvent:
		return ef.FormatGameStart(e)
	case TileDrawnEvent:
		return ef.FormatTileDrawn(e)
	case TileDiscardedEvent:
		return ef.FormatTileDiscarded(e)
	case ClaimsOpenedEvent:
		return ef.FormatClaimsOpened(e)
	case SeatPassedEvent:
		return ef.FormatSeatPassed(e)
	case MeldFormedEvent:
		return ef.FormatMeldFormed(e)
	case GameWonEvent:
		return ef.FormatGameWon(e)
	case WallExhaustedEvent:
		return "The wall is exhausted. Nobody wins."
	default:
		return string(event.EventType())
	}
}

// FormatGameStart formats a game start event into a human-readable string
func (ef *EventFormatter) FormatGameStart(event GameStartEvent) string {
	return fmt.Sprintf("New game: %s deals. %d tiles in the wall.",
		ef.seatName(event.Dealer), event.WallCount)
}

// FormatTileDrawn formats a tile drawn event, hiding the tile unless the
// drawing seat matches the perspective
func (ef *EventFormatter) FormatTileDrawn(event TileDrawnEvent) string {
	if ef.reveals(event.Seat) {
		return fmt.Sprintf("%s draws %s (%d left)", ef.seatName(event.Seat), event.Tile, event.WallCount)
	}
	return fmt.Sprintf("%s draws a tile (%d left)", ef.seatName(event.Seat), event.WallCount)
}

// FormatTileDiscarded formats a tile discarded event
func (ef *EventFormatter) FormatTileDiscarded(event TileDiscardedEvent) string {
	return fmt.Sprintf("%s discards %s", ef.seatName(event.Seat), event.Tile)
}

// FormatClaimsOpened formats a claims opened event
func (ef *EventFormatter) FormatClaimsOpened(event ClaimsOpenedEvent) string {
	names := make([]string, len(event.Seats))
	for i, seat := range event.Seats {
		names[i] = ef.seatName(seat)
	}
	return fmt.Sprintf("%s is up for grabs (%s may act)", event.Tile, strings.Join(names, ", "))
}

// FormatSeatPassed formats a seat passed event
func (ef *EventFormatter) FormatSeatPassed(event SeatPassedEvent) string {
	return fmt.Sprintf("%s passes", ef.seatName(event.Seat))
}

// FormatMeldFormed formats a meld formed event, hiding concealed kong tiles
// from every perspective but the owner's
func (ef *EventFormatter) FormatMeldFormed(event MeldFormedEvent) string {
	if event.Meld.Type == ConcealedKong && !ef.reveals(event.Seat) {
		return fmt.Sprintf("%s declares a concealed kong", ef.seatName(event.Seat))
	}
	return fmt.Sprintf("%s melds %s", ef.seatName(event.Seat), event.Meld)
}

// FormatGameWon formats a game won event
func (ef *EventFormatter) FormatGameWon(event GameWonEvent) string {
	switch event.WinType {
	case SelfDraw:
		return fmt.Sprintf("%s wins by self-draw!", ef.seatName(event.Seat))
	case WinByDiscard:
		if event.Tile != nil {
			return fmt.Sprintf("%s wins on the discarded %s!", ef.seatName(event.Seat), *event.Tile)
		}
		return fmt.Sprintf("%s wins by discard!", ef.seatName(event.Seat))
	default:
		return fmt.Sprintf("%s wins!", ef.seatName(event.Seat))
	}
}

// seatName resolves a seat to its display name
func (ef *EventFormatter) seatName(seat int) string {
	if seat >= 0 && seat < NumSeats && ef.opts.Names[seat] != "" {
		return ef.opts.Names[seat]
	}
	return fmt.Sprintf("Seat %d", seat)
}

// reveals reports whether hidden tiles belonging to a seat may be shown
func (ef *EventFormatter) reveals(seat int) bool {
	return ef.opts.ShowHidden || seat == ef.opts.Perspective
}
