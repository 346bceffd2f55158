package export

// State - стадия одного запуска экспорта.
type State int

const (
	StateIdle State = iota
	StateLocating
	StateAwaitingAssets
	StateStabilizing
	StateRasterizing
	StateRestoring
	StateDelivering
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateIdle:           "idle",
	StateLocating:       "locating",
	StateAwaitingAssets: "awaiting_assets",
	StateStabilizing:    "stabilizing",
	StateRasterizing:    "rasterizing",
	StateRestoring:      "restoring",
	StateDelivering:     "delivering",
	StateDone:           "done",
	StateFailed:         "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// StateHook вызывается при каждом переходе.
type StateHook func(from, to State)
