package audit

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_AppendsInOrderWithTags(t *testing.T) {
	l := NewLogger(nil)

	l.Logf(TagSystem, "starting %d", 1)
	l.Logf(TagParser, "parsed")
	l.Violation("restrictedFile", "%s is restricted", ".env")

	assert.Equal(t, []string{
		"[SYSTEM] starting 1",
		"[OPENCLAW] parsed",
		"[ARMORCLAW] VIOLATION (restrictedFile): .env is restricted",
	}, l.Lines())
}

func TestLogger_SinkSeesEveryLine(t *testing.T) {
	var got []string
	l := NewLogger(func(line string) { got = append(got, line) })

	l.Logf(TagWarn, "multi\nline")

	require.Len(t, got, 1)
	assert.Equal(t, "[WARN] multi line", got[0])
}

func TestLogger_LinesReturnsCopy(t *testing.T) {
	l := NewLogger(nil)
	l.Logf(TagSystem, "a")

	lines := l.Lines()
	lines[0] = "tampered"

	assert.Equal(t, "[SYSTEM] a", l.Lines()[0])
}

func TestLogger_ConcurrentAppends(t *testing.T) {
	l := NewLogger(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Logf(TagSystem, "tick")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, l.Len())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		line string
		want Tag
	}{
		{"[ERROR] boom", TagError},
		{"[ARMORCLAW] VIOLATION (folder): nope", TagError},
		{"[ARMORCLAW] checking", TagPolicy},
		{"[SUCCESS] done", TagSuccess},
		{"[WARN] odd", TagWarn},
		{"[SYSTEM] boot", TagSystem},
		{"[OPENCLAW] intent", TagParser},
		{"plain", ""},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.line))
		})
	}
}

func TestStyle_KeepsText(t *testing.T) {
	out := Style("[SUCCESS] done")
	assert.True(t, strings.Contains(out, "[SUCCESS] done"))
}
