package logging

import "go.uber.org/zap"

// Leveled adapts the file logger to the key/value logger interface used by
// hashicorp/go-retryablehttp.
type Leveled struct {
	s *zap.SugaredLogger
}

func NewLeveled(name string) Leveled { return Leveled{s: logger.Named(name).Sugar()} }

func (l Leveled) Error(msg string, kv ...interface{}) { l.s.Errorw(msg, kv...) }
func (l Leveled) Warn(msg string, kv ...interface{})  { l.s.Warnw(msg, kv...) }
func (l Leveled) Info(msg string, kv ...interface{})  { l.s.Infow(msg, kv...) }
func (l Leveled) Debug(msg string, kv ...interface{}) { l.s.Debugw(msg, kv...) }
