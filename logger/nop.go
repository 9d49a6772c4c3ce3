package logger

type nop struct{}

// Nop discards everything logged to it.
var Nop Logger = nop{}

func (nop) With(string, any) Logger          { return Nop }
func (nop) WithFields(map[string]any) Logger { return Nop }
func (nop) Logf(Level, string, ...any)       {}
func (nop) Log(Level, ...any)                {}
func (nop) Errorf(string, ...any)            {}
func (nop) Error(...any)                     {}
func (nop) Warnf(string, ...any)             {}
func (nop) Warn(...any)                      {}
func (nop) Infof(string, ...any)             {}
func (nop) Info(...any)                      {}
func (nop) Debugf(string, ...any)            {}
func (nop) Debug(...any)                     {}
