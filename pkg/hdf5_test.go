package multigrid

import (
	"errors"
	"path/filepath"
	"testing"

	hdf5 "github.com/jmbenlloch/go-hdf5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHitsFile[T any](t *testing.T, datasetName string, hits []T) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "hits.h5")
	file, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	require.NoError(t, err)
	defer file.Close()

	dtype, err := hdf5.NewDatatypeFromValue(*new(T))
	require.NoError(t, err)
	dspace, err := hdf5.CreateSimpleDataspace([]uint{uint(len(hits))}, nil)
	require.NoError(t, err)
	defer dspace.Close()

	dataset, err := file.CreateDataset(datasetName, dtype, dspace)
	require.NoError(t, err)
	defer dataset.Close()
	if len(hits) > 0 {
		require.NoError(t, dataset.Write(&hits))
	}
	return fname
}

func makeHits(n int) []SrsHitHDF5 {
	hits := make([]SrsHitHDF5, n)
	for i := range hits {
		hits[i] = SrsHitHDF5{
			srs_timestamp: uint64(1000 + 10*i),
			chiptime:      float64(i%4) + 0.75,
			chip_id:       uint8(2 + i%4),
			channel:       uint16(i % 64),
			adc:           uint16(100 + i),
		}
	}
	return hits
}

func TestReadRawEvents(t *testing.T) {
	fname := writeHitsFile(t, HITS_DATASET, makeHits(30))

	events, err := ReadRawEvents(fname, 0)
	require.NoError(t, err)
	require.Len(t, events, 30)
	// chiptime is truncated before being added to the timestamp
	assert.Equal(t, RawEvent{Channel: 0, ChipID: 2, ADC: 100, Time: 1000}, events[0])
	assert.Equal(t, RawEvent{Channel: 7, ChipID: 5, ADC: 107, Time: 1073}, events[7])
}

func TestReadRawEventsSample(t *testing.T) {
	fname := writeHitsFile(t, HITS_DATASET, makeHits(30))

	events, err := ReadRawEvents(fname, 20)
	require.NoError(t, err)
	require.Len(t, events, 20)
	assert.Equal(t, int64(119), events[19].ADC)

	events, err = ReadRawEvents(fname, 100)
	require.NoError(t, err)
	assert.Len(t, events, 30)
}

func TestReadRawEventsEmpty(t *testing.T) {
	fname := writeHitsFile(t, HITS_DATASET, []SrsHitHDF5{})

	events, err := ReadRawEvents(fname, 0)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestReadRawEventsMissingDataset(t *testing.T) {
	fname := writeHitsFile(t, "other_hits", makeHits(3))

	_, err := ReadRawEvents(fname, 0)
	var datasetErr *ErrOpenDataset
	require.True(t, errors.As(err, &datasetErr))
	assert.Equal(t, HITS_DATASET, datasetErr.DatasetName)
}

// Same layout as the srs_hits table without the adc column
type hitWithoutADC struct {
	srs_timestamp uint64
	chiptime      float64
	chip_id       uint8
	channel       uint16
}

func TestReadRawEventsMissingMember(t *testing.T) {
	hits := []hitWithoutADC{{srs_timestamp: 1000, chiptime: 1, chip_id: 3, channel: 4}}
	fname := writeHitsFile(t, HITS_DATASET, hits)

	events, err := ReadRawEvents(fname, 0)
	assert.Nil(t, events)
	var datasetErr *ErrOpenDataset
	require.True(t, errors.As(err, &datasetErr))
	assert.Equal(t, HITS_DATASET, datasetErr.DatasetName)
	assert.Contains(t, err.Error(), `missing member "adc"`)
}

func TestReadRawEventsMissingFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "missing.h5")

	_, err := ReadRawEvents(fname, 0)
	var fileErr *ErrOpenFile
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, fname, fileErr.Filename)
}
