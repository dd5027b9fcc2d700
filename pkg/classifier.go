package multigrid

import "fmt"

// Each VMM chip reads out either grids or wires, never both
var chipClasses = map[int64]ChannelClass{
	2: Grid,
	3: Wire,
	4: Wire,
	5: Wire,
}

// Raw VMM channels per chip covered by the mapping table
const N_VMM_CH = 80

func ChipClass(chipID int64) (ChannelClass, error) {
	class, ok := chipClasses[chipID]
	if !ok {
		return 0, &ErrUnknownChip{ChipID: chipID}
	}
	return class, nil
}

// MappingEntry is one row of the VMM to Multi-Grid channel table.
// Mapped is false for VMM channels not connected to the detector.
type MappingEntry struct {
	ChipID    int64
	Channel   int64
	MGChannel int64
	Mapped    bool
}

type mappingKey struct {
	chipID  int64
	channel int64
}

// ChannelMap is the read-only (chip, VMM channel) -> logical channel table.
type ChannelMap struct {
	channels map[mappingKey]int64
}

func NewChannelMap(entries []MappingEntry) (*ChannelMap, error) {
	channelMap := &ChannelMap{
		channels: make(map[mappingKey]int64, len(entries)),
	}
	for row, entry := range entries {
		if _, err := ChipClass(entry.ChipID); err != nil {
			return nil, &ErrMappingRow{Row: row, Entry: entry, Reason: err.Error()}
		}
		if entry.Channel < 0 || entry.Channel >= N_VMM_CH {
			reason := fmt.Sprintf("channel out of range [0, %d)", N_VMM_CH)
			return nil, &ErrMappingRow{Row: row, Entry: entry, Reason: reason}
		}
		if entry.Mapped && entry.MGChannel < 0 {
			return nil, &ErrMappingRow{Row: row, Entry: entry, Reason: "negative logical channel"}
		}
		key := mappingKey{chipID: entry.ChipID, channel: entry.Channel}
		if _, ok := channelMap.channels[key]; ok {
			return nil, &ErrMappingRow{Row: row, Entry: entry, Reason: "duplicated entry"}
		}
		if entry.Mapped {
			channelMap.channels[key] = entry.MGChannel
		} else {
			channelMap.channels[key] = UnmappedChannel
		}
	}
	return channelMap, nil
}

// Lookup returns UnmappedChannel for pairs missing from the table.
func (m *ChannelMap) Lookup(chipID int64, channel int64) int64 {
	if m == nil {
		return UnmappedChannel
	}
	mgChannel, ok := m.channels[mappingKey{chipID: chipID, channel: channel}]
	if !ok {
		return UnmappedChannel
	}
	return mgChannel
}

func (m *ChannelMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.channels)
}

type Classification struct {
	Channel int64
	Class   ChannelClass
}

type Classifier struct {
	channelMap *ChannelMap
}

func NewClassifier(channelMap *ChannelMap) *Classifier {
	return &Classifier{channelMap: channelMap}
}

func (c *Classifier) Classify(chipID int64, channel int64) (Classification, error) {
	class, err := ChipClass(chipID)
	if err != nil {
		return Classification{}, err
	}
	return Classification{
		Channel: c.channelMap.Lookup(chipID, channel),
		Class:   class,
	}, nil
}
