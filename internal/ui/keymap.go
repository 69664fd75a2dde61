package ui

import "unicode"

// Command is an editor action bound to a key.
type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdCircle
	CmdRectangle
	CmdPolygon
	CmdFinalize
	CmdCrop
	CmdErase
	CmdRotateLeft
	CmdRotateRight
	CmdUndo
	CmdRedo
	CmdRecordStart
	CmdRecordPause
	CmdRecordResume
	CmdRecordStop
)

var commandNames = map[Command]string{
	CmdNone:         "none",
	CmdQuit:         "quit",
	CmdCircle:       "circle",
	CmdRectangle:    "rectangle",
	CmdPolygon:      "polygon",
	CmdFinalize:     "finalize polygon",
	CmdCrop:         "crop",
	CmdErase:        "erase",
	CmdRotateLeft:   "rotate -90",
	CmdRotateRight:  "rotate +90",
	CmdUndo:         "undo",
	CmdRedo:         "redo",
	CmdRecordStart:  "start recording",
	CmdRecordPause:  "pause recording",
	CmdRecordResume: "resume recording",
	CmdRecordStop:   "stop recording",
}

func (c Command) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return "unknown"
}

var keyCommands = map[rune]Command{
	'q': CmdQuit,
	'c': CmdCircle,
	'r': CmdRectangle,
	'p': CmdPolygon,
	's': CmdFinalize,
	'x': CmdCrop,
	'e': CmdErase,
	'a': CmdRotateLeft,
	'd': CmdRotateRight,
	'z': CmdUndo,
	'y': CmdRedo,
	'1': CmdRecordStart,
	'2': CmdRecordPause,
	'3': CmdRecordResume,
	'4': CmdRecordStop,
}

// KeyCommand maps a typed rune to its command. Letters match in either case.
func KeyCommand(r rune) (Command, bool) {
	c, ok := keyCommands[unicode.ToLower(r)]
	return c, ok
}

// KeyHelp lists the bindings in a stable order for the help text.
func KeyHelp() []string {
	order := []rune("qcrpsxeadzy1234")
	out := make([]string, 0, len(order))
	for _, r := range order {
		out = append(out, string(r)+": "+keyCommands[r].String())
	}
	return out
}
