package probe

import "fmt"

// Kind identifies a probe variant.
type Kind int

const (
	KindExhaustive Kind = iota
	KindMean
	KindTimeSliceAverage
	KindTimeSliceThroughput
	KindPeriodic
	KindEMA
	KindSlidingWindow
	KindHistogram
)

var kindNames = map[Kind]string{
	KindExhaustive:          "exhaustive",
	KindMean:                "mean",
	KindTimeSliceAverage:    "timeSliceAverage",
	KindTimeSliceThroughput: "timeSliceThroughput",
	KindPeriodic:            "periodic",
	KindEMA:                 "EMA",
	KindSlidingWindow:       "slidingWindow",
	KindHistogram:           "histogram",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// isTimeSlice reports whether the variant emits one value per elapsed slice.
func (k Kind) isTimeSlice() bool {
	return k == KindTimeSliceAverage || k == KindTimeSliceThroughput
}
