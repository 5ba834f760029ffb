package laika

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_framelog_disabled(t *testing.T) {
	var fl, err = framelog_init("")
	require.NoError(t, err)
	require.Nil(t, fl)

	// A disabled log must be safe to use.
	fl.record(1, true, 20.0, 15.0)
	assert.NoError(t, fl.Close())
}

func Test_framelog_single_file(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "frames.log")

	var fl, err = framelog_init(path)
	require.NoError(t, err)

	fl.record(1, false, 0.0, 15.0)
	fl.record(2, true, 123.456, 15.0)
	require.NoError(t, fl.Close())

	var fp, openErr = os.Open(path)
	require.NoError(t, openErr)
	defer fp.Close()

	var rows, readErr = csv.NewReader(fp).ReadAll()
	require.NoError(t, readErr)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"isotime", "frame", "kind", "energy", "threshold"}, rows[0])
	assert.Equal(t, []string{"1", "data", "0.000", "15.000"}, rows[1][1:])
	assert.Equal(t, []string{"2", "voice", "123.456", "15.000"}, rows[2][1:])
}

func Test_framelog_append_keeps_one_header(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "frames.log")

	for range 2 {
		var fl, err = framelog_init(path)
		require.NoError(t, err)
		fl.record(1, true, 20.0, 15.0)
		require.NoError(t, fl.Close())
	}

	var fp, _ = os.Open(path)
	defer fp.Close()

	var rows, readErr = csv.NewReader(fp).ReadAll()
	require.NoError(t, readErr)
	require.Len(t, rows, 3)
	assert.Equal(t, "isotime", rows[0][0])
	assert.Equal(t, "voice", rows[1][2])
	assert.Equal(t, "voice", rows[2][2])
}

func Test_framelog_daily_rollover(t *testing.T) {
	var dir = t.TempDir()

	var clock = time.Date(2025, 3, 1, 23, 59, 58, 0, time.UTC)

	var fl, err = framelog_init(dir)
	require.NoError(t, err)
	fl.now = func() time.Time { return clock }

	// The eager open used the real clock, force the first record onto
	// the fake one.
	require.NoError(t, fl.reopen())

	fl.record(1, true, 20.0, 15.0)

	clock = clock.Add(4 * time.Second) // now March 2nd
	fl.record(2, false, 1.0, 15.0)
	require.NoError(t, fl.Close())

	assert.FileExists(t, filepath.Join(dir, "2025-03-01.log"))
	assert.FileExists(t, filepath.Join(dir, "2025-03-02.log"))
}

func Test_framelog_bad_path(t *testing.T) {
	var _, err = framelog_init(filepath.Join(t.TempDir(), "no", "such", "dir", "frames.log"))
	assert.Error(t, err)
}
