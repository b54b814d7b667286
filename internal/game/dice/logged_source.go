package dice

import "go.uber.org/zap"

// LoggedSource wraps a Source and logs every draw at debug level with the
// bound, the drawn value and a running draw counter.
type LoggedSource struct {
	src    Source
	logger *zap.Logger
	draws  int
}

// NewLoggedSource creates a LoggedSource that draws from src and logs to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedSource(src Source, logger *zap.Logger) *LoggedSource {
	return &LoggedSource{src: src, logger: logger}
}

// Intn draws from the wrapped source and logs the result.
//
// Precondition: n > 0.
// Postcondition: Returns exactly what the wrapped source returned.
func (l *LoggedSource) Intn(n int) int {
	v := l.src.Intn(n)
	l.draws++
	if ce := l.logger.Check(zap.DebugLevel, "dice draw"); ce != nil {
		ce.Write(
			zap.Int("bound", n),
			zap.Int("value", v),
			zap.Int("draw", l.draws),
		)
	}
	return v
}

// Draws returns the number of values drawn so far.
func (l *LoggedSource) Draws() int { return l.draws }
