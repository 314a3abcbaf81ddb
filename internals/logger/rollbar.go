package logger

import (
	"github.com/rollbar/rollbar-go"
	"github.com/sirupsen/logrus"
)

type RollbarOptions struct {
	Token       string
	Environment string
	ServerHost  string
	CodeVersion string
}

// EnableRollbar forwards error level entries to Rollbar. Without a token it
// is a no-op.
func EnableRollbar(opts RollbarOptions) bool {
	if opts.Token == "" {
		rollbar.SetEnabled(false)
		return false
	}
	rollbar.SetToken(opts.Token)
	rollbar.SetEnvironment(opts.Environment)
	rollbar.SetServerHost(opts.ServerHost)
	rollbar.SetCodeVersion(opts.CodeVersion)
	rollbar.SetEnabled(true)
	Logger.AddHook(rollbarHook{})
	return true
}

// FlushRollbar waits for queued items; call it on shutdown.
func FlushRollbar() {
	rollbar.Wait()
}

type rollbarHook struct{}

func (rollbarHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel}
}

func (rollbarHook) Fire(e *logrus.Entry) error {
	extras := make(map[string]interface{}, len(e.Data))
	var cause error
	for k, v := range e.Data {
		if k == logrus.ErrorKey {
			if err, ok := v.(error); ok {
				cause = err
				continue
			}
		}
		extras[k] = v
	}
	extras["message"] = e.Message

	level := rollbar.ERR
	if e.Level <= logrus.FatalLevel {
		level = rollbar.CRIT
	}
	if cause != nil {
		rollbar.ErrorWithExtras(level, cause, extras)
		return nil
	}
	rollbar.MessageWithExtras(level, e.Message, extras)
	return nil
}
