package carsurveillance

import (
	"fmt"
)

// Task identifies one of the supported evaluation tasks.  The set is a
// closed enumeration, batch drivers dispatch on the Task value rather than
// on free form strings
type Task int

const (
	// TaskParkingOccupancy evaluates per slot parking occupancy from still
	// images
	TaskParkingOccupancy Task = iota + 1
	// TaskQueueLength counts queued vehicles from the final frame of video
	// clips
	TaskQueueLength
)

// String returns the task identifier used on the command line and in
// dataset layouts
func (t Task) String() string {
	switch t {
	case TaskParkingOccupancy:
		return "parking"
	case TaskQueueLength:
		return "queue"
	default:
		return fmt.Sprintf("Task(%d)", int(t))
	}
}

// ParseTask maps a task identifier to its Task value
func ParseTask(s string) (Task, error) {
	switch s {
	case "parking":
		return TaskParkingOccupancy, nil
	case "queue":
		return TaskQueueLength, nil
	default:
		return 0, fmt.Errorf("unknown task %q, want \"parking\" or \"queue\"", s)
	}
}
