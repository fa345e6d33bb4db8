package storage

import (
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// maxExactInt is the largest integer a structpb number holds without rounding.
const maxExactInt = 1 << 53

func intValue(n int64) *structpb.Value {
	return structpb.NewNumberValue(float64(n))
}

// timeValue stores a time as the seconds and nanos of its protobuf timestamp.
// Both stay well below 2^53, unlike a nanosecond count.
func timeValue(t time.Time) *structpb.Value {
	ts := timestamppb.New(t)
	return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
		"seconds": intValue(ts.GetSeconds()),
		"nanos":   intValue(int64(ts.GetNanos())),
	}})
}

func intField(fields map[string]*structpb.Value, name string) (int64, error) {
	n, ok := fields[name].GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("invalid %s: not a number", name)
	}
	v := n.NumberValue
	if v != math.Trunc(v) || math.Abs(v) > maxExactInt {
		return 0, fmt.Errorf("invalid %s: %v is not an integer", name, v)
	}
	return int64(v), nil
}

func timeField(fields map[string]*structpb.Value, name string) (time.Time, error) {
	record := fields[name].GetStructValue()
	if record == nil {
		return time.Time{}, fmt.Errorf("invalid %s: not a timestamp", name)
	}
	seconds, err := intField(record.GetFields(), "seconds")
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	nanos, err := intField(record.GetFields(), "nanos")
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	ts := &timestamppb.Timestamp{Seconds: seconds, Nanos: int32(nanos)}
	if err := ts.CheckValid(); err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	return ts.AsTime(), nil
}
