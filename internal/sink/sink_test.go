package sink

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMemorySink_CollectsChunksInOrder(t *testing.T) {
	mem := NewMemorySink()

	_, err := mem.Write([]byte("first"))
	require.NoError(t, err)
	_, err = mem.Write([]byte("second"))
	require.NoError(t, err)

	assert.Equal(t, []byte("firstsecond"), mem.Bytes())
	assert.Equal(t, []int{5, 6}, mem.Lengths())

	mem.Close()
	_, err = mem.Write([]byte("third"))
	assert.Error(t, err, "writes after Close must be rejected")
}

func TestMemorySink_SeekEndUnsupported(t *testing.T) {
	mem := NewMemorySink()
	_, err := mem.Seek(0, 2)
	assert.Error(t, err)
}

func TestWriterSink_WritesAndLogs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	var buf writerSinkBuf
	ws := NewWriterSink(&buf, nil, logger)

	n, err := ws.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", buf.String())
	assert.Equal(t, int64(1), ws.ChunksWritten())
	assert.Equal(t, int64(5), ws.BytesWritten())

	require.NoError(t, ws.Flush())
	assert.Equal(t, 1, logs.Len())

	_, err = ws.Seek(0, 0)
	assert.Error(t, err, "no seeker was provided")
}

// writerSinkBuf is a minimal io.Writer that also supports String(), since
// bytes.Buffer already satisfies both but this keeps the test file
// self-contained about exactly what WriterSink requires of its writer.
type writerSinkBuf struct {
	data []byte
}

func (b *writerSinkBuf) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

func (b *writerSinkBuf) String() string { return string(b.data) }

func TestMetricsSink_RecordsAndDelegates(t *testing.T) {
	mem := NewMemorySink()
	reg := prometheus.NewRegistry()
	ms := NewMetricsSink(mem, "super", reg)

	_, err := ms.Write([]byte("abcdefgh"))
	require.NoError(t, err)
	require.NoError(t, ms.Flush())

	assert.Equal(t, [][]byte{[]byte("abcdefgh")}, mem.Chunks, "metrics sink must not alter bytes passed through")

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}
