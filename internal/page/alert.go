package page

import (
	"github.com/Gide-1400/fast-shipment-world/internal/i18n"
	"go.uber.org/zap"
)

type AlertKind string

const (
	AlertSuccess AlertKind = "success"
	AlertError   AlertKind = "error"
	AlertInfo    AlertKind = "info"
)

// Alerter is the user-visible notice sink. The web shell renders these as
// dismissible toasts; the console demo prints them; tests record them.
type Alerter interface {
	Alert(kind AlertKind, messageKey string)
}

// LogAlerter resolves the message key and writes the notice to the log.
// Good enough for the console demo and for workers with no UI.
type LogAlerter struct {
	tr  *i18n.Translator
	log *zap.Logger
}

func NewLogAlerter(tr *i18n.Translator, log *zap.Logger) *LogAlerter {
	return &LogAlerter{tr: tr, log: log}
}

func (a *LogAlerter) Alert(kind AlertKind, messageKey string) {
	msg := a.tr.T(messageKey)
	switch kind {
	case AlertError:
		a.log.Warn("🔔 "+msg, zap.String("kind", string(kind)))
	default:
		a.log.Info("🔔 "+msg, zap.String("kind", string(kind)))
	}
}
