package protocol

// Status classifies one DecodeNext call.
type Status uint8

const (
	// StatusNeedMoreData means the buffered bytes hold no complete frame.
	// The read cursor is unchanged; append more bytes and retry.
	StatusNeedMoreData Status = iota
	// StatusPacket means a frame decoded against a registered schema.
	StatusPacket
	// StatusSkipped means a frame with an unregistered id was consumed.
	StatusSkipped
	// StatusError means the stream is corrupt. The handler stays failed.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusNeedMoreData:
		return "need_more_data"
	case StatusPacket:
		return "packet"
	case StatusSkipped:
		return "skipped"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Packet is one decoded frame. The handler keeps no reference to it.
type Packet struct {
	ID     uint32
	Name   string
	Length uint32
	Fields map[string]any
}

// Result is the outcome of DecodeNext. ID and Length are set whenever a
// header was read.
type Result struct {
	Status Status
	Packet *Packet
	ID     uint32
	Length uint32
	Err    error
}

// Observer receives codec events. Implementations must be cheap; they run
// on the decode and encode paths.
type Observer interface {
	ObserveDecode(status Status, id uint32, frameBytes int)
	ObserveEncode(id uint32, frameBytes int, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveDecode(Status, uint32, int) {}
func (nopObserver) ObserveEncode(uint32, int, error)  {}
