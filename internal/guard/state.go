package guard

// StateKind names a behaviour state for reporting.
type StateKind uint8

const (
	Patrol StateKind = iota
	Idle
	Chase
	Search
	Boss
)

func (k StateKind) String() string {
	switch k {
	case Patrol:
		return "patrol"
	case Idle:
		return "idle"
	case Chase:
		return "chase"
	case Search:
		return "search"
	case Boss:
		return "boss"
	}
	return "unknown"
}

// State is the current behaviour of a guard. The concrete types below are
// the only implementations.
type State interface {
	Kind() StateKind
	sealed()
}

// Patrolling walks the patrol route. With no route the guard is idle.
type Patrolling struct{}

// Chasing repaths to the target every tick.
type Chasing struct{}

// Searching walks out whatever path is left, without repathing, until
// Countdown runs out.
type Searching struct {
	Countdown float64
}

// Hunting is pursuit by an elevated guard, aimed at where the target is
// going rather than where it is.
type Hunting struct{}

func (Patrolling) Kind() StateKind { return Patrol }
func (Chasing) Kind() StateKind    { return Chase }
func (Searching) Kind() StateKind  { return Search }
func (Hunting) Kind() StateKind    { return Boss }

func (Patrolling) sealed() {}
func (Chasing) sealed()    {}
func (Searching) sealed()  {}
func (Hunting) sealed()    {}
