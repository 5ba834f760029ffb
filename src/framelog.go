package laika

/*------------------------------------------------------------------
 *
 * Name:	framelog
 *
 * Purpose:	Save per frame scheduling decisions to a log file.
 *
 * Description:	Rather than burying the voice/data decisions in
 *		console noise, write separated properties into CSV
 *		format for easy reading and later processing.
 *
 *		There are two alternatives here:
 *
 *		A full file path - everything goes into that file.
 *
 *		A directory - daily names are created there.
 *
 *---------------------------------------------------------------*/

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/lestrrat-go/strftime"
)

type frameLog struct {
	dailyNames bool
	path       string /* File name, or directory when dailyNames. */

	openName string
	fp       *os.File
	csv      *csv.Writer

	now func() time.Time /* Overridable for tests. */
}

/*------------------------------------------------------------------
 *
 * Name:	framelog_init
 *
 * Purpose:	Initialization at start of a session.
 *
 * Inputs:	path	- Log file name, or a directory for daily names.
 *			  Empty string disables the feature.
 *
 *---------------------------------------------------------------*/

func framelog_init(path string) (*frameLog, error) {
	if path == "" {
		return nil, nil
	}

	var fl = &frameLog{
		path: path,
		now:  time.Now,
	}

	var info, statErr = os.Stat(path)
	if statErr == nil && info.IsDir() {
		fl.dailyNames = true
	}

	/* Open eagerly so a misconfigured path fails at session start. */
	if err := fl.reopen(); err != nil {
		return nil, err
	}

	return fl, nil
}

func (fl *frameLog) fileName() (string, error) {
	if !fl.dailyNames {
		return fl.path, nil
	}

	var day, err = strftime.Format("%Y-%m-%d", fl.now())
	if err != nil {
		return "", fmt.Errorf("formatting daily log name: %w", err)
	}

	return filepath.Join(fl.path, day+".log"), nil
}

func (fl *frameLog) reopen() error {
	var name, nameErr = fl.fileName()
	if nameErr != nil {
		return nameErr
	}

	if fl.fp != nil {
		fl.csv.Flush()
		fl.fp.Close()
	}

	var fp, openErr = os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if openErr != nil {
		return fmt.Errorf("opening frame log %s: %w", name, openErr)
	}

	fl.fp = fp
	fl.csv = csv.NewWriter(fp)
	fl.openName = name

	var pos, _ = fp.Seek(0, io.SeekEnd)
	if pos == 0 {
		fl.csv.Write([]string{"isotime", "frame", "kind", "energy", "threshold"})
	}

	return nil
}

func (fl *frameLog) record(frame int, voice bool, energy float64, threshold float64) {
	if fl == nil {
		return
	}

	if fl.dailyNames {
		/* Date changed?  Roll over to a new file. */
		var name, err = fl.fileName()
		if err == nil && name != fl.openName {
			if reopenErr := fl.reopen(); reopenErr != nil {
				log_error("Frame log rollover failed: %s", reopenErr)
				return
			}
		}
	}

	fl.csv.Write([]string{
		fl.now().Format(time.RFC3339),
		strconv.Itoa(frame),
		frameKind(voice),
		strconv.FormatFloat(energy, 'f', 3, 64),
		strconv.FormatFloat(threshold, 'f', 3, 64),
	})
	fl.csv.Flush()
}

func (fl *frameLog) Close() error {
	if fl == nil || fl.fp == nil {
		return nil
	}

	fl.csv.Flush()

	return fl.fp.Close()
}
