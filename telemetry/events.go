// Package telemetry provides impact statistics, performance tracking and CSV output.
package telemetry

// ImpactRecord is one hard collision, as written to impacts.csv.
type ImpactRecord struct {
	Tick    int64   `csv:"tick"`
	X       float64 `csv:"x"`
	Y       float64 `csv:"y"`
	Impulse float64 `csv:"impulse"`
}

// NewImpactRecord creates an impact record.
func NewImpactRecord(tick int64, x, y, impulse float64) ImpactRecord {
	return ImpactRecord{Tick: tick, X: x, Y: y, Impulse: impulse}
}
