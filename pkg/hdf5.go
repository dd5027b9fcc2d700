package multigrid

import (
	"fmt"
	"sync"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

const HITS_DATASET = "srs_hits"

// Member names must match the srs_hits compound type. HDF5 converts the
// stored types to these ones and ignores the members not listed here.
// Members absent from the file would read as zero, see checkMembers.
type SrsHitHDF5 struct {
	srs_timestamp uint64
	chiptime      float64
	chip_id       uint8
	channel       uint16
	adc           uint16
}

// The HDF5 library is not built thread safe, calls are serialized
var hdf5Mutex sync.Mutex

var hitMembers = []string{"srs_timestamp", "chiptime", "chip_id", "channel", "adc"}

func (h SrsHitHDF5) toRawEvent() RawEvent {
	return RawEvent{
		Channel: int64(h.channel),
		ChipID:  int64(h.chip_id),
		ADC:     int64(h.adc),
		Time:    int64(h.srs_timestamp) + int64(h.chiptime),
	}
}

func openFile(fname string) (*hdf5.File, error) {
	f, err := hdf5.OpenFile(fname, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, &ErrOpenFile{Filename: fname, Err: err}
	}
	return f, nil
}

// ReadRawEvents reads the hits of an SRS file. With nRows > 0 only the
// first nRows hits are read.
func ReadRawEvents(fname string, nRows int) ([]RawEvent, error) {
	hdf5Mutex.Lock()
	defer hdf5Mutex.Unlock()

	file, err := openFile(fname)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	dataset, err := file.OpenDataset(HITS_DATASET)
	if err != nil {
		return nil, &ErrOpenDataset{DatasetName: HITS_DATASET, Err: err}
	}
	defer dataset.Close()

	if err := checkMembers(dataset); err != nil {
		return nil, &ErrOpenDataset{DatasetName: HITS_DATASET, Err: err}
	}

	hits, err := readHits(dataset, nRows)
	if err != nil {
		return nil, &ErrOpenDataset{DatasetName: HITS_DATASET, Err: err}
	}

	events := make([]RawEvent, len(hits))
	for i, hit := range hits {
		events[i] = hit.toRawEvent()
	}
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Read %d hits from %s", len(events), fname)
		logger.Info(message, "hdf5")
	}
	return events, nil
}

func checkMembers(dataset *hdf5.Dataset) error {
	dtype, err := dataset.Datatype()
	if err != nil {
		return err
	}
	defer dtype.Close()

	if dtype.Class() != hdf5.T_COMPOUND {
		return fmt.Errorf("expected a compound type, found %v", dtype.Class())
	}
	compound := hdf5.CompoundType{Datatype: *dtype}
	for _, member := range hitMembers {
		if compound.MemberIndex(member) < 0 {
			return fmt.Errorf("missing member %q", member)
		}
	}
	return nil
}

func readHits(dataset *hdf5.Dataset, nRows int) ([]SrsHitHDF5, error) {
	filespace := dataset.Space()
	defer filespace.Close()

	dims, _, err := filespace.SimpleExtentDims()
	if err != nil {
		return nil, err
	}
	if len(dims) != 1 {
		return nil, fmt.Errorf("expected a 1d table, found %d dimensions", len(dims))
	}
	length := dims[0]
	if nRows > 0 && uint(nRows) < length {
		length = uint(nRows)
	}
	// Read fails on empty slices
	if length == 0 {
		return []SrsHitHDF5{}, nil
	}

	// The array MUST be allocated before reading
	hits := make([]SrsHitHDF5, length)
	if length == dims[0] {
		if err := dataset.Read(&hits); err != nil {
			return nil, err
		}
		return hits, nil
	}

	start := []uint{0}
	count := []uint{length}
	if err := filespace.SelectHyperslab(start, nil, count, nil); err != nil {
		return nil, err
	}
	memspace, err := hdf5.CreateSimpleDataspace(count, nil)
	if err != nil {
		return nil, err
	}
	defer memspace.Close()

	if err := dataset.ReadSubset(&hits, memspace, filespace); err != nil {
		return nil, err
	}
	return hits, nil
}
