package rules

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType indicates the category of a rules event.
type EventType string

const (
	// Game lifecycle events
	EventGameStarted EventType = "GAME_STARTED"
	EventGameEnded   EventType = "GAME_ENDED"

	// Turn events
	EventTurnStarted  EventType = "TURN_STARTED"
	EventPhaseChanged EventType = "PHASE_CHANGED"

	// Movement events
	EventMovementRolled EventType = "MOVEMENT_ROLLED"
	EventPlayerMoved    EventType = "PLAYER_MOVED"

	// Combat events
	EventAttackRolled     EventType = "ATTACK_ROLLED"
	EventAttackMissed     EventType = "ATTACK_MISSED"
	EventDamageDealt      EventType = "DAMAGE_DEALT"
	EventDamagePrevented  EventType = "DAMAGE_PREVENTED"
	EventPlayerDied       EventType = "PLAYER_DIED"
	EventEquipmentStolen  EventType = "EQUIPMENT_STOLEN"
	EventEquipmentGained  EventType = "EQUIPMENT_GAINED"
	EventEquipmentRemoved EventType = "EQUIPMENT_REMOVED"

	// Identity events
	EventCharacterRevealed EventType = "CHARACTER_REVEALED"

	// Ability events
	EventAbilityTriggered EventType = "ABILITY_TRIGGERED"
	EventAbilityActivated EventType = "ABILITY_ACTIVATED"
	EventAbilityFailed    EventType = "ABILITY_FAILED"
	EventAbilityDisabled  EventType = "ABILITY_DISABLED"

	// Card events
	EventCardDrawn      EventType = "CARD_DRAWN"
	EventDeckReshuffled EventType = "DECK_RESHUFFLED"
	EventDeckExhausted  EventType = "DECK_EXHAUSTED"
	EventHealed         EventType = "HEALED"
)

// Event represents a state change that other subsystems may react to.
type Event struct {
	Type      EventType
	ID        string // Unique event ID
	PlayerID  int    // Primary subject (victim, mover, drawer, revealer)
	ActorID   int    // Acting player where distinct (attacker, killer); -1 if none
	Amount    int    // Numeric payload (damage, heal, roll total)
	Turn      int    // Turn counter at the time the event fired
	Data      string // Additional string data (character id, card name, phase)
	Timestamp time.Time
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with type
// filtering. Typed listeners fire in subscription order, which the trigger
// ordering contract in the game package relies on.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	typedListeners map[EventType][]TypedListener
	order          []int
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	bus.order = append(bus.order, handle)
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	if _, ok := bus.listeners[handle]; ok {
		delete(bus.listeners, handle)
		for i, h := range bus.order {
			if h == handle {
				bus.order = append(bus.order[:i], bus.order[i+1:]...)
				break
			}
		}
		return
	}
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
// Catch-all listeners fire before typed listeners, each group in
// subscription order.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, handle := range bus.order {
		if listener, ok := bus.listeners[handle]; ok {
			listener(event)
		}
	}

	if typedListeners, ok := bus.typedListeners[event.Type]; ok {
		for _, listener := range typedListeners {
			listener.Callback(event)
		}
	}
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, playerID, actorID int) Event {
	return Event{
		Type:      eventType,
		ID:        uuid.NewString(),
		PlayerID:  playerID,
		ActorID:   actorID,
		Timestamp: time.Now(),
	}
}

// NewEventWithAmount creates a new event carrying a numeric payload.
func NewEventWithAmount(eventType EventType, playerID, actorID, amount int) Event {
	evt := NewEvent(eventType, playerID, actorID)
	evt.Amount = amount
	return evt
}
