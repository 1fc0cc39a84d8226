package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "time" {
				return slog.Attr{}
			}
			return a
		}}))
}

func TestOperation(t *testing.T) {
	ctx := t.Context()
	var buf bytes.Buffer
	logger := Base(newTestLogger(&buf), "blob")

	done := Operation(ctx, logger, "test-operation", slog.String("test", "value"))
	assert.Equal(t, "level=DEBUG msg=\"operation starting\" realm=blob operation=test-operation test=value\n", buf.String())
	buf.Reset()
	done(nil) // No error
	assert.Contains(t, buf.String(), "level=DEBUG msg=\"operation completed\" realm=blob operation=test-operation")
	buf.Reset()
	done(assert.AnError) // With error
	assert.Contains(t, buf.String(), "level=ERROR msg=\"operation failed\" realm=blob operation=test-operation")
	assert.Contains(t, buf.String(), "error=\""+assert.AnError.Error()+"\"")
}

func TestBase_DefaultsToDefaultLogger(t *testing.T) {
	def := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(def)
	})
	var buf bytes.Buffer
	slog.SetDefault(newTestLogger(&buf))

	Base(nil, "vcap").Info("hello")
	assert.Equal(t, "level=INFO msg=hello realm=vcap\n", buf.String())
}

func TestContentLogAttr(t *testing.T) {
	attr := ContentLogAttr("application/json", "sha256:1234567890abcdef", 4)
	assert.Equal(t, "content", attr.Key)

	group, ok := attr.Value.Any().([]slog.Attr)
	if !ok {
		t.Fatal("expected []slog.Attr")
	}
	assert.Len(t, group, 3)

	withoutDigest := ContentLogAttr("application/json", "", 4)
	assert.Len(t, withoutDigest.Value.Any().([]slog.Attr), 2)
}
