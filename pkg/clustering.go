package multigrid

import (
	"fmt"

	"golang.org/x/exp/slices"
)

type Options struct {
	// Maximum span of a cluster measured from its first event, in time units of RawEvent.Time
	Window            int64
	// Largest backwards time step allowed between consecutive events.
	// Negative disables the check.
	MaxTimeRegression int64
}

type classAccumulator struct {
	channel      int64
	multiplicity int64
	adcSum       int64
	adcMax       int64
}

func newClassAccumulator() classAccumulator {
	return classAccumulator{channel: NoChannel}
}

// add folds one event into the class. The channel follows the highest ADC
// seen so far; on ties the earlier event keeps it.
func (c *classAccumulator) add(channel int64, adc int64) {
	c.multiplicity++
	c.adcSum += adc
	if c.multiplicity == 1 || adc > c.adcMax {
		c.adcMax = adc
		c.channel = channel
	}
}

type openCluster struct {
	time int64
	wire classAccumulator
	grid classAccumulator
}

func (o *openCluster) class(class ChannelClass) *classAccumulator {
	if class == Grid {
		return &o.grid
	}
	return &o.wire
}

func (o *openCluster) toCluster() Cluster {
	return Cluster{
		WireChannel:      o.wire.channel,
		GridChannel:      o.grid.channel,
		WireMultiplicity: o.wire.multiplicity,
		GridMultiplicity: o.grid.multiplicity,
		WireADCSum:       o.wire.adcSum,
		GridADCSum:       o.grid.adcSum,
		Time:             o.time,
	}
}

// Accumulator groups a time ordered stream of raw events into clusters.
// Annotated events of the open cluster wait in a pending buffer until the
// cluster closes and its multiplicities are final.
type Accumulator struct {
	classifier *Classifier
	options    Options

	isOpen  bool
	current openCluster
	pending []AnnotatedEvent

	clusters []Cluster
	events   []AnnotatedEvent

	nEvents  int
	lastTime int64
}

func NewAccumulator(classifier *Classifier, options Options) (*Accumulator, error) {
	if options.Window <= 0 {
		return nil, &ErrInvalidWindow{Window: options.Window}
	}
	if classifier == nil {
		classifier = NewClassifier(nil)
	}
	return &Accumulator{
		classifier: classifier,
		options:    options,
	}, nil
}

func (a *Accumulator) validate(event RawEvent) error {
	if event.Channel < 0 {
		return &ErrInputRecord{Index: a.nEvents, Reason: fmt.Sprintf("negative channel %d", event.Channel)}
	}
	if event.ADC < 0 {
		return &ErrInputRecord{Index: a.nEvents, Reason: fmt.Sprintf("negative adc %d", event.ADC)}
	}
	if a.nEvents > 0 && a.options.MaxTimeRegression >= 0 {
		if a.lastTime-event.Time > a.options.MaxTimeRegression {
			reason := fmt.Sprintf("time %d goes back from %d by more than %d",
				event.Time, a.lastTime, a.options.MaxTimeRegression)
			return &ErrInputRecord{Index: a.nEvents, Reason: reason}
		}
	}
	return nil
}

// Add folds the next raw event. On error the accumulator state is left
// untouched and the event is not counted.
func (a *Accumulator) Add(event RawEvent) error {
	if err := a.validate(event); err != nil {
		return err
	}
	classification, err := a.classifier.Classify(event.ChipID, event.Channel)
	if err != nil {
		return err
	}

	if !a.isOpen {
		a.open(event.Time)
	} else if event.Time-a.current.time >= a.options.Window {
		a.close()
		a.open(event.Time)
	}
	a.current.class(classification.Class).add(classification.Channel, event.ADC)

	a.pending = append(a.pending, AnnotatedEvent{
		RawEvent:       event,
		LogicalChannel: classification.Channel,
		Class:          classification.Class,
		ClusterIndex:   len(a.clusters),
	})
	a.lastTime = event.Time
	a.nEvents++
	return nil
}

// Flush closes the open cluster, if any. Events added afterwards start a new one.
func (a *Accumulator) Flush() {
	if a.isOpen {
		a.close()
	}
}

// Result returns a copy of the closed clusters and the annotated events
// released so far. Later calls to Add do not modify it.
func (a *Accumulator) Result() Result {
	return Result{
		Clusters: slices.Clone(a.clusters),
		Events:   slices.Clone(a.events),
	}
}

func (a *Accumulator) open(time int64) {
	a.current = openCluster{
		time: time,
		wire: newClassAccumulator(),
		grid: newClassAccumulator(),
	}
	a.isOpen = true
}

func (a *Accumulator) close() {
	cluster := a.current.toCluster()
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Cluster %d at %d: wires (ch %d, m %d, adc %d), grids (ch %d, m %d, adc %d)",
			len(a.clusters), cluster.Time,
			cluster.WireChannel, cluster.WireMultiplicity, cluster.WireADCSum,
			cluster.GridChannel, cluster.GridMultiplicity, cluster.GridADCSum)
		logger.Info(message, "clustering")
	}
	a.clusters = append(a.clusters, cluster)
	for i := range a.pending {
		a.pending[i].WireMultiplicity = cluster.WireMultiplicity
		a.pending[i].GridMultiplicity = cluster.GridMultiplicity
	}
	a.events = append(a.events, a.pending...)
	a.pending = a.pending[:0]
	a.isOpen = false
}

// ClusterEvents runs a whole clustering pass over events.
//
// An unknown chip id aborts the run before any output is produced. An input
// error returns the clusters built up to the offending event, flagged as
// incomplete, together with an *ErrInputRecord.
func ClusterEvents(events []RawEvent, classifier *Classifier, options Options) (*Result, error) {
	acc, err := NewAccumulator(classifier, options)
	if err != nil {
		return nil, err
	}
	for _, event := range events {
		if _, err := ChipClass(event.ChipID); err != nil {
			return nil, err
		}
	}
	acc.events = make([]AnnotatedEvent, 0, len(events))

	for _, event := range events {
		if err := acc.Add(event); err != nil {
			acc.Flush()
			result := acc.Result()
			result.Incomplete = true
			return &result, err
		}
	}
	acc.Flush()

	result := acc.Result()
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Clustered %d raw events into %d clusters", len(result.Events), len(result.Clusters))
		logger.Info(message, "clustering")
	}
	return &result, nil
}
