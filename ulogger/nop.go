package ulogger

// NopLogger discards everything.
type NopLogger struct{}

func (l *NopLogger) LogLevel() int                 { return LevelInfo }
func (l *NopLogger) SetLogLevel(string)            {}
func (l *NopLogger) Debugf(string, ...interface{}) {}
func (l *NopLogger) Infof(string, ...interface{})  {}
func (l *NopLogger) Warnf(string, ...interface{})  {}
func (l *NopLogger) Errorf(string, ...interface{}) {}
func (l *NopLogger) Fatalf(string, ...interface{}) {}
func (l *NopLogger) New(string, ...Option) Logger  { return l }
func (l *NopLogger) Duplicate(...Option) Logger    { return l }
