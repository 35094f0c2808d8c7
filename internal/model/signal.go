package model

import "time"

// Signal is the discrete trading decision derived from the z-score.
type Signal int

const (
	Sell Signal = -1
	Hold Signal = 0
	Buy  Signal = 1
)

func (s Signal) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// AnnotatedRow is one date of derived output. Rows without a full rolling
// window of history are dropped before this struct is ever produced.
type AnnotatedRow struct {
	Time        time.Time
	Close       float64
	RollingMean float64
	RollingStd  float64
	// ZScore is NaN when RollingStd is zero (flat price segment).
	ZScore float64
	Signal Signal
	// DailyReturn is NaN on the first output row; it contributes no PnL.
	DailyReturn float64
	// Position is the previous row's signal. The first row holds nothing.
	Position      Signal
	DailyPnL      float64
	CumulativePnL float64
}
