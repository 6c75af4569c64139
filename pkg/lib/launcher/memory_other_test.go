//go:build unix && !linux

package launcher

import (
	"context"
	"errors"
	"testing"

	"github.com/SanjoDeundiak/process-launcher/pkg/lib"
)

func TestMemoryLimitUnsupported(t *testing.T) {
	req := helperRequest("exit:0")
	req.MemoryLimit = 64 << 20

	res, err := New().ExecuteAndWait(context.Background(), req, 10)
	if !errors.Is(err, lib.ErrUnsupported) {
		t.Fatalf("expected unsupported, got %v", err)
	}
	if res.ExitCode != -1 {
		t.Fatalf("nothing should have been started, got %+v", res)
	}
}
