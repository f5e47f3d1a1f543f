package doctext

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/Gee9999/Air-Ship/internal/common"
)

// Runner lets us stub the external extraction command in tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

// cap stderr in logs; a broken PDF can emit megabytes of xref noise
const stderrLogCap = 4 << 10

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var out, errb bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &errb

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	attrs := []any{
		"cmd", name,
		"args", strings.Join(args, " "),
		"run_id", common.RunIDFromContext(ctx),
		"duration_ms", elapsed.Milliseconds(),
	}
	if err != nil {
		slog.Error("extract.exec.failed", append(attrs, "err", err, "stderr", clip(errb.String(), stderrLogCap))...)
		return out.Bytes(), errb.Bytes(), err
	}
	slog.Debug("extract.exec.ok", append(attrs, "stdout_bytes", out.Len(), "stderr_bytes", errb.Len())...)
	return out.Bytes(), errb.Bytes(), nil
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
