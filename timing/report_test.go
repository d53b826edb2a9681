package timing

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRender(t *testing.T) {
	rep := newReport("Demo", []string{"trivial", "unroll_2"}, []time.Duration{10 * time.Millisecond, 2500 * time.Microsecond})

	out := rep.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 4)

	title := lines[0]
	assert.True(t, strings.HasPrefix(title, "---"), title)
	assert.True(t, strings.HasSuffix(title, "---"), title)
	assert.Contains(t, title, " Demo ")
	assert.Equal(t, len(lines[1]), len(title))

	assert.Contains(t, out, "trivial")
	assert.Contains(t, out, "unroll_2")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "0.010000")
	assert.Contains(t, out, "0.002500")
	assert.Contains(t, out, "0.012500")
}

func TestReportRenderEmpty(t *testing.T) {
	rep := newReport("Empty", []string{}, []time.Duration{})
	out := rep.String()
	assert.Contains(t, out, "Empty")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "0.000000")
}

func TestTitleLineLongTitle(t *testing.T) {
	line := titleLine("a very long title for a narrow table", 10)
	assert.Equal(t, "--- a very long title for a narrow table ---", line)
}

func TestReportInterval(t *testing.T) {
	rep := newReport("Demo", []string{"a", "b"}, []time.Duration{time.Second, 2 * time.Second})
	d, ok := rep.Interval("b")
	assert.True(t, ok)
	assert.Equal(t, 2*time.Second, d)
	_, ok = rep.Interval("c")
	assert.False(t, ok)
	assert.Equal(t, 3*time.Second, rep.Total)
}
