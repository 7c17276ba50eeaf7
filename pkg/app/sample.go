package app

import (
	"tableflip.dev/lanes/pkg/item"
	"tableflip.dev/lanes/pkg/lane"
	"tableflip.dev/lanes/pkg/lifecycle"
)

// SampleBoard returns the starter cards shown on a fresh board.
func SampleBoard() []item.Item {
	return []item.Item{
		item.New("card-1", lane.Done, "Task 1", "Description of task 1."),
		item.New("card-2", lane.Pending, "Task 2", "Description of task 2."),
		item.New("card-3", lane.Pending, "Task 3", "Description of task 3"),
		item.New("card-4", lane.Done, "Task 4", "Another finished task."),
		item.New("card-5", lane.NotDone, "Task 5", "Task to do."),
	}
}

// SampleIDs continues numbering after the sample cards.
func SampleIDs() lifecycle.IDGenerator {
	return lifecycle.NewSequential(len(SampleBoard()))
}
