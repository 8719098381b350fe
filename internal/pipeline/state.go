package pipeline

type State int

const (
	Idle State = iota
	Connecting
	Downloading
	Parsing
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Connecting:
		return "connecting"
	case Downloading:
		return "downloading"
	case Parsing:
		return "parsing"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Busy reports whether a run is between start and its terminal state.
func (s State) Busy() bool {
	return s == Connecting || s == Downloading || s == Parsing
}

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Trigger labels.
const (
	LabelLoad    = "Load"
	LabelLoading = "Loading..."
	LabelReload  = "Reload"
	LabelRetry   = "Try Again"
)

// Status messages shown while a run advances.
const (
	MsgConnecting  = "Connecting to proxy..."
	MsgDownloading = "Downloading HTML content..."
	MsgProcessing  = "Processing authors..."
	MsgLoaded      = "Data loaded successfully!"
)
