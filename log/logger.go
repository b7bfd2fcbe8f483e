// Package log zap logger shared by the verifiers
package log

import (
	"fmt"

	"github.com/Laisky/errors/v2"
	zap "github.com/Laisky/zap"
	"github.com/Laisky/zap/zapcore"
)

// Shared default logger
var Shared Logger

// Level logger level
type Level string

func (l Level) String() string {
	return string(l)
}

const (
	// LevelInfo Logger level info
	LevelInfo Level = "info"
	// LevelDebug Logger level debug
	LevelDebug Level = "debug"
	// LevelWarn Logger level warn
	LevelWarn Level = "warn"
	// LevelError Logger level error
	LevelError Level = "error"
)

// Logger zap logger with changeable level
type Logger interface {
	Debug(msg string, fields ...zapcore.Field)
	Info(msg string, fields ...zapcore.Field)
	Warn(msg string, fields ...zapcore.Field)
	Error(msg string, fields ...zapcore.Field)
	Panic(msg string, fields ...zapcore.Field)
	Sync() error

	Level() Level
	ChangeLevel(level Level) error
	Named(s string) Logger
	With(fields ...zapcore.Field) Logger
}

// logger extend from zap.Logger
type logger struct {
	*zap.Logger

	// zap logger do not expose api to change log's level,
	// so we have to save the pointer of zap.AtomicLevel.
	level zap.AtomicLevel
}

// Encoding output format
type Encoding string

func (e Encoding) String() string {
	return string(e)
}

const (
	EncodingConsole Encoding = "console"
	EncodingJSON    Encoding = "json"
)

type option struct {
	zap.Config
	Name string
}

func (o *option) fillDefault() *option {
	o.Name = "covenant"
	o.Config = zap.Config{
		Level:            zap.NewAtomicLevel(),
		Development:      false,
		Encoding:         string(EncodingConsole),
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	o.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	o.EncoderConfig.MessageKey = "message"
	o.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	o.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return o
}

// Option logger option
type Option func(l *option) error

// WithName set logger name
func WithName(name string) Option {
	return func(c *option) error {
		c.Name = name
		return nil
	}
}

// WithOutputPaths replace output paths, like "stdout"
func WithOutputPaths(paths []string) Option {
	return func(c *option) error {
		if len(paths) == 0 {
			return errors.New("output paths should not be empty")
		}

		c.OutputPaths = paths
		return nil
	}
}

// WithEncoding set logger encoding format
func WithEncoding(format Encoding) Option {
	return func(c *option) error {
		switch format {
		case EncodingConsole:
			c.Encoding = string(EncodingConsole)
			c.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		case EncodingJSON:
			c.Encoding = string(EncodingJSON)
		default:
			return errors.Errorf("invalid format: %s", format)
		}

		return nil
	}
}

// WithLevel set logger level
func WithLevel(level Level) Option {
	return func(c *option) error {
		lvl, err := LevelToZap(level)
		if err != nil {
			return err
		}

		c.Level.SetLevel(lvl)
		return nil
	}
}

// LevelToZap convert level to zap level
func LevelToZap(level Level) (zapcore.Level, error) {
	switch level {
	case LevelDebug:
		return zap.DebugLevel, nil
	case LevelInfo:
		return zap.InfoLevel, nil
	case LevelWarn:
		return zap.WarnLevel, nil
	case LevelError:
		return zap.ErrorLevel, nil
	default:
		return 0, errors.Errorf("invalid level: %s", level)
	}
}

// LevelFromZap convert zap level to level
func LevelFromZap(level zapcore.Level) (Level, error) {
	switch level {
	case zap.DebugLevel:
		return LevelDebug, nil
	case zap.InfoLevel:
		return LevelInfo, nil
	case zap.WarnLevel:
		return LevelWarn, nil
	case zap.ErrorLevel:
		return LevelError, nil
	default:
		return "", errors.Errorf("invalid level: %s", level)
	}
}

// New create new logger
func New(optfs ...Option) (Logger, error) {
	opt := new(option).fillDefault()
	for _, optf := range optfs {
		if err := optf(opt); err != nil {
			return nil, err
		}
	}

	zapLogger, err := opt.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build zap logger")
	}

	return &logger{
		Logger: zapLogger.Named(opt.Name),
		level:  opt.Level,
	}, nil
}

// NewConsoleWithName create new console logger with name
func NewConsoleWithName(name string, level Level) (Logger, error) {
	return New(
		WithName(name),
		WithEncoding(EncodingConsole),
		WithLevel(level),
	)
}

// Level get current level of logger
func (l *logger) Level() Level {
	lvl, err := LevelFromZap(l.level.Level())
	if err != nil {
		panic(err)
	}

	return lvl
}

// ChangeLevel change logger level
//
// all children loggers share the same level as their parent logger.
func (l *logger) ChangeLevel(level Level) error {
	lvl, err := LevelToZap(level)
	if err != nil {
		return err
	}

	l.level.SetLevel(lvl)
	l.Debug("set logger level", zap.String("level", level.String()))
	return nil
}

// Named adds a new path segment to the logger's name
func (l *logger) Named(s string) Logger {
	return &logger{
		Logger: l.Logger.Named(s),
		level:  l.level,
	}
}

// With creates a child logger and adds structured context to it
func (l *logger) With(fields ...zapcore.Field) Logger {
	return &logger{
		Logger: l.Logger.With(fields...),
		level:  l.level,
	}
}

func init() {
	var err error
	if Shared, err = NewConsoleWithName("covenant", LevelInfo); err != nil {
		panic(fmt.Sprintf("create logger: %+v", err))
	}
}
