// Package viz draws the pendulum in the terminal.
//
// [Model] is a Bubble Tea program that renders the bar on a braille
// [Canvas] next to a parameter panel and an angle chart. It feeds key
// presses to the simulation controller as events.
//
// # Key Bindings
//
//	Space      - Run/Pause
//	R          - Reset to the initial amplitude
//	P          - Export the run and pause
//	Esc, C     - Enter configure mode (Esc or Enter leaves it)
//	Up/Down    - Select a parameter while configuring
//	Right/Left - Start or stop increasing/decreasing it
//	Q          - Quit
//
// [LineRenderer] prints periodic status lines for headless runs.
package viz
