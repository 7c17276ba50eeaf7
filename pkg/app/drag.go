package app

// DragSession tracks the single drag in flight. The zero value is idle.
type DragSession struct {
	draggedID string
	active    bool
}

// Start begins a drag, overwriting any previous one.
func (d *DragSession) Start(id string) {
	d.draggedID = id
	d.active = true
}

// Clear ends the drag.
func (d *DragSession) Clear() {
	d.draggedID = ""
	d.active = false
}

// Active returns the dragged id while a drag is in flight.
func (d *DragSession) Active() (string, bool) {
	return d.draggedID, d.active
}
