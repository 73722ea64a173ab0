// Package fsm provides the state machine and telegram dispatcher the soccer
// agents are built on.
package fsm

// State is one behaviour of an owner of type T.
type State[T any] interface {
	Name() string
	Enter(owner T)
	Execute(owner T)
	Exit(owner T)
	// OnMessage returns true when the telegram was handled.
	OnMessage(owner T, t Telegram) bool
}

// StateMachine runs a global state plus one current state for its owner.
type StateMachine[T any] struct {
	owner    T
	current  State[T]
	previous State[T]
	global   State[T]

	// OnChange, when set, observes every transition.
	OnChange func(from, to State[T])
}

// New creates an idle machine for owner.
func New[T any](owner T) *StateMachine[T] {
	return &StateMachine[T]{owner: owner}
}

// SetGlobal installs the state executed every update before the current one.
func (sm *StateMachine[T]) SetGlobal(s State[T]) {
	sm.global = s
}

// SetCurrent installs the initial state without running Enter.
func (sm *StateMachine[T]) SetCurrent(s State[T]) {
	sm.current = s
}

// Update executes the global then the current state.
func (sm *StateMachine[T]) Update() {
	if sm.global != nil {
		sm.global.Execute(sm.owner)
	}
	if sm.current != nil {
		sm.current.Execute(sm.owner)
	}
}

// ChangeTo exits the current state, remembers it as previous and enters next.
func (sm *StateMachine[T]) ChangeTo(next State[T]) {
	if next == nil {
		return
	}
	from := sm.current
	sm.previous = from
	if from != nil {
		from.Exit(sm.owner)
	}
	sm.current = next
	if sm.OnChange != nil {
		sm.OnChange(from, next)
	}
	next.Enter(sm.owner)
}

// RevertToPrevious returns to the state active before the last change.
func (sm *StateMachine[T]) RevertToPrevious() {
	sm.ChangeTo(sm.previous)
}

// InState reports whether s is the current state.
func (sm *StateMachine[T]) InState(s State[T]) bool {
	return sm.current != nil && sm.current == s
}

// Current returns the current state, possibly nil.
func (sm *StateMachine[T]) Current() State[T] { return sm.current }

// Previous returns the previous state, possibly nil.
func (sm *StateMachine[T]) Previous() State[T] { return sm.previous }

// CurrentName is the current state's name or "none".
func (sm *StateMachine[T]) CurrentName() string {
	if sm.current == nil {
		return "none"
	}
	return sm.current.Name()
}

// HandleMessage offers t to the current state, then the global state.
func (sm *StateMachine[T]) HandleMessage(t Telegram) bool {
	if sm.current != nil && sm.current.OnMessage(sm.owner, t) {
		return true
	}
	if sm.global != nil && sm.global.OnMessage(sm.owner, t) {
		return true
	}
	return false
}

// BaseState gives states no-op hooks so they only implement what they use.
type BaseState[T any] struct{}

func (BaseState[T]) Enter(T) {}
func (BaseState[T]) Execute(T) {}
func (BaseState[T]) Exit(T) {}

func (BaseState[T]) OnMessage(T, Telegram) bool { return false }
