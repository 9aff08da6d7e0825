package panics

import (
	"testing"
	"time"

	"github.com/satoshilab/scriptcore/infrastructure/logger"
)

func TestGoroutineWrapperFunc(t *testing.T) {
	spawn := GoroutineWrapperFunc(logger.RegisterSubSystem("TEST"))

	done := make(chan struct{})
	spawn(func() {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("the wrapped function did not run")
	}
}
