package timetracker

import "time"

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock supplies the current time and tickers so timing can be driven by tests.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) NewTicker(d time.Duration) Ticker {
	return systemTicker{time.NewTicker(d)}
}

type systemTicker struct {
	t *time.Ticker
}

func (t systemTicker) C() <-chan time.Time {
	return t.t.C
}

func (t systemTicker) Stop() {
	t.t.Stop()
}
