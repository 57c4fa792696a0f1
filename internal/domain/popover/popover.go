package popover

// Toggle returns the next open state for a trigger click counter. A nil or zero
// counter means the trigger never fired and leaves the state unchanged.
func Toggle(clicks *int, isOpen bool) bool {
	if clicks == nil || *clicks == 0 {
		return isOpen
	}
	return !isOpen
}

// State is the stateful form of Toggle, starting closed.
type State struct {
	open bool
}

func (s *State) Trigger(signal *int) bool {
	s.open = Toggle(signal, s.open)
	return s.open
}

func (s *State) IsOpen() bool {
	return s.open
}
