package multigrid

type ChannelClass int

const (
	Wire ChannelClass = iota
	Grid
)

func (c ChannelClass) String() string {
	switch c {
	case Wire:
		return "Wire"
	case Grid:
		return "Grid"
	default:
		return "Unknown"
	}
}

const (
	// NoChannel marks a class with no events in a cluster
	NoChannel int64 = -1
	// UnmappedChannel marks an event whose (chip, channel) pair is not in the mapping table
	UnmappedChannel int64 = -10
)

// RawEvent is a single VMM hit. Time is srs_timestamp + chiptime.
type RawEvent struct {
	Channel int64
	ChipID  int64
	ADC     int64
	Time    int64
}

type Cluster struct {
	WireChannel      int64
	GridChannel      int64
	WireMultiplicity int64
	GridMultiplicity int64
	WireADCSum       int64
	GridADCSum       int64
	// Time of the event that opened the cluster
	Time             int64
}

// AnnotatedEvent is a raw event with its logical channel and the final
// multiplicities of the cluster it was folded into.
type AnnotatedEvent struct {
	RawEvent
	LogicalChannel   int64
	Class            ChannelClass
	ClusterIndex     int
	WireMultiplicity int64
	GridMultiplicity int64
}

func (e AnnotatedEvent) WireChannel() int64 {
	if e.Class == Wire {
		return e.LogicalChannel
	}
	return NoChannel
}

func (e AnnotatedEvent) GridChannel() int64 {
	if e.Class == Grid {
		return e.LogicalChannel
	}
	return NoChannel
}

type Result struct {
	Clusters   []Cluster
	Events     []AnnotatedEvent
	// Incomplete is set when the run stopped on an input error
	Incomplete bool
}
