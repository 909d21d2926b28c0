package selection

import "errors"

// ErrUnknownCommand indicates a keymap command name that does not exist.
var ErrUnknownCommand = errors.New("unknown command")
