package multigrid

import "fmt"

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error {
	return e.Err
}

// ErrOpenDataset represents an error when opening or reading a dataset.
type ErrOpenDataset struct {
	DatasetName string
	Err         error
}

func (e *ErrOpenDataset) Error() string {
	return fmt.Sprintf("error reading dataset %q: %v", e.DatasetName, e.Err)
}

func (e *ErrOpenDataset) Unwrap() error {
	return e.Err
}

// ErrUnknownChip is returned when a chip id is not part of the detector.
type ErrUnknownChip struct {
	ChipID int64
}

func (e *ErrUnknownChip) Error() string {
	return fmt.Sprintf("unknown chip id %d", e.ChipID)
}

// ErrMappingRow represents an inconsistent row of the channel mapping table.
type ErrMappingRow struct {
	Row    int
	Entry  MappingEntry
	Reason string
}

func (e *ErrMappingRow) Error() string {
	return fmt.Sprintf("mapping row %d (chip %d, channel %d): %s",
		e.Row, e.Entry.ChipID, e.Entry.Channel, e.Reason)
}

// ErrInvalidWindow is returned for a non-positive clustering window.
type ErrInvalidWindow struct {
	Window int64
}

func (e *ErrInvalidWindow) Error() string {
	return fmt.Sprintf("invalid time window %d, must be positive", e.Window)
}

// ErrInputRecord represents a malformed raw event.
type ErrInputRecord struct {
	Index  int
	Reason string
}

func (e *ErrInputRecord) Error() string {
	return fmt.Sprintf("raw event %d: %s", e.Index, e.Reason)
}
