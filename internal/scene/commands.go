package scene

// Command is a discrete user action applied between frames.
type Command int

const (
	CmdNone Command = iota
	CmdMoveForward
	CmdMoveBackward
	CmdMoveLeft
	CmdMoveRight
	CmdPanLeft
	CmdPanRight
	CmdRaiseBlock
	CmdLowerBlock
	CmdToggleLighting
	CmdToggleSpotlight
	CmdToggleNormals
	CmdLightOrbitBack
	CmdLightOrbitForward
	CmdRotateWorldLeft
	CmdRotateWorldRight
)

// Slider steps for the keyboard-driven light orbit and world rotation.
const (
	lightSliderStep = 2.0
	worldAngleStep  = 5.0
)

var commandNames = map[Command]string{
	CmdNone:              "none",
	CmdMoveForward:       "move_forward",
	CmdMoveBackward:      "move_backward",
	CmdMoveLeft:          "move_left",
	CmdMoveRight:         "move_right",
	CmdPanLeft:           "pan_left",
	CmdPanRight:          "pan_right",
	CmdRaiseBlock:        "raise_block",
	CmdLowerBlock:        "lower_block",
	CmdToggleLighting:    "toggle_lighting",
	CmdToggleSpotlight:   "toggle_spotlight",
	CmdToggleNormals:     "toggle_normals",
	CmdLightOrbitBack:    "light_orbit_back",
	CmdLightOrbitForward: "light_orbit_forward",
	CmdRotateWorldLeft:   "rotate_world_left",
	CmdRotateWorldRight:  "rotate_world_right",
}

func (c Command) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return "unknown"
}

// ParseCommand looks up a command by its String name.
func ParseCommand(name string) (Command, bool) {
	for c, n := range commandNames {
		if n == name {
			return c, true
		}
	}
	return CmdNone, false
}

// Apply performs one command. Camera failures go to the notifier and leave
// the pose unchanged; block edits outside the grid are logged and ignored.
func (s *Scene) Apply(cmd Command) {
	speed := s.opts.MoveSpeed
	step := s.opts.PanStep

	switch cmd {
	case CmdMoveForward:
		s.report(s.cam.MoveForward(speed))
	case CmdMoveBackward:
		s.report(s.cam.MoveBackward(speed))
	case CmdMoveLeft:
		s.report(s.cam.MoveLeft(speed))
	case CmdMoveRight:
		s.report(s.cam.MoveRight(speed))
	case CmdPanLeft:
		s.report(s.cam.PanLeft(step))
	case CmdPanRight:
		s.report(s.cam.PanRight(step))
	case CmdRaiseBlock:
		_, _ = s.ModifyBlock(1)
	case CmdLowerBlock:
		_, _ = s.ModifyBlock(-1)
	case CmdToggleLighting:
		s.ToggleLighting()
	case CmdToggleSpotlight:
		s.ToggleSpotlight()
	case CmdToggleNormals:
		s.ToggleNormals()
	case CmdLightOrbitBack:
		s.SetLightAngle(s.light.Angle - lightSliderStep)
	case CmdLightOrbitForward:
		s.SetLightAngle(s.light.Angle + lightSliderStep)
	case CmdRotateWorldLeft:
		s.SetGlobalAngle(s.globalAngle - worldAngleStep)
	case CmdRotateWorldRight:
		s.SetGlobalAngle(s.globalAngle + worldAngleStep)
	}
}
