package loader

// Phase is a step of the startup state machine
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseCacheCheck
	PhaseBackgroundRefresh
	PhaseCacheMissFetch
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCacheCheck:
		return "cache-check"
	case PhaseBackgroundRefresh:
		return "background-refresh"
	case PhaseCacheMissFetch:
		return "cache-miss-fetch"
	case PhaseReady:
		return "ready"
	}
	return "unknown"
}
