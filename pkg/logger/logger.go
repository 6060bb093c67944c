package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones del logger.
type Config struct {
	Env     string // development: consola legible; cualquier otro: JSON
	Level   string
	Service string
}

// Logger envuelve zerolog para inyectarlo en cmd/ y en los middlewares.
type Logger struct {
	zl zerolog.Logger
}

// New escribe a stdout.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}
	return NewWithWriter(w, cfg)
}

// NewWithWriter construye el logger sobre w y lo deja como logger global de zerolog,
// que es el que usa zerolog.Ctx cuando el contexto no trae uno propio.
func NewWithWriter(w io.Writer, cfg Config) *Logger {
	zl := zerolog.New(w).
		Level(ParseLevel(cfg.Level)).
		With().Timestamp().Str("service", cfg.Service).
		Logger()
	log.Logger = zl
	zerolog.DefaultContextLogger = &log.Logger
	return &Logger{zl: zl}
}

// ParseLevel acepta los nombres de zerolog sin distinguir mayúsculas; vacío o
// desconocido es info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// Zerolog expone el logger interno (migraciones, RequestLogger).
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}
