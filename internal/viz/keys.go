package viz

import "github.com/san-kum/pendsim/internal/dynamo"

// Keymap turns key presses into controller events. Terminals report no key
// releases, so the edit arrows latch: the first press starts the held
// direction and the next press of the same arrow stops it.
//
// Keys pressed within one frame reach the controller together, so the keymap
// follows the configure transitions it has already queued instead of waiting
// for the next rendered frame.
type Keymap struct {
	configuring bool
	increasing  bool
	decreasing  bool
}

// Sync adopts the controller's mode after a tick.
func (k *Keymap) Sync(mode dynamo.Mode) {
	k.configuring = mode == dynamo.Configuring
	if !k.configuring {
		k.Release()
	}
}

// Map returns the events for key.
func (k *Keymap) Map(key string) []dynamo.Event {
	switch key {
	case "q", "ctrl+c":
		return []dynamo.Event{dynamo.Quit}
	case " ":
		return []dynamo.Event{dynamo.ToggleRun}
	case "r":
		return []dynamo.Event{dynamo.Reset}
	case "p":
		return []dynamo.Event{dynamo.Plot}
	case "c":
		return k.enter()
	case "enter":
		return k.exit()
	case "esc":
		if k.configuring {
			return k.exit()
		}
		return k.enter()
	}

	if !k.configuring {
		return nil
	}

	switch key {
	case "up", "k":
		return []dynamo.Event{dynamo.SelectPrev}
	case "down", "j", "tab":
		return []dynamo.Event{dynamo.SelectNext}
	case "right", "l", "+":
		k.increasing = !k.increasing
		if k.increasing {
			return []dynamo.Event{dynamo.IncreaseStart}
		}
		return []dynamo.Event{dynamo.IncreaseStop}
	case "left", "h", "-":
		k.decreasing = !k.decreasing
		if k.decreasing {
			return []dynamo.Event{dynamo.DecreaseStart}
		}
		return []dynamo.Event{dynamo.DecreaseStop}
	}
	return nil
}

// enter and exit only queue transitions the controller will take, so the
// latch never drifts from its held flags.
func (k *Keymap) enter() []dynamo.Event {
	if k.configuring {
		return nil
	}
	k.Release()
	k.configuring = true
	return []dynamo.Event{dynamo.EnterConfigure}
}

func (k *Keymap) exit() []dynamo.Event {
	if !k.configuring {
		return nil
	}
	k.Release()
	k.configuring = false
	return []dynamo.Event{dynamo.ExitConfigure}
}

// Release forgets latched arrows. The controller releases held keys on
// every configure transition, so the latch must follow.
func (k *Keymap) Release() {
	k.increasing = false
	k.decreasing = false
}
