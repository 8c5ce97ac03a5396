// seehuhn.de/go/fontpack - a tool for packaging fonts into device bundles
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// writerHook sends log entries at the given levels to one writer.  Two of
// these give the split the tool wants: info and above on the console,
// everything in the log file.
type writerHook struct {
	writer    io.Writer
	formatter logrus.Formatter
	levels    []logrus.Level
}

func (h *writerHook) Levels() []logrus.Level {
	return h.levels
}

func (h *writerHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.writer.Write(line)
	return err
}

// setupLogging builds the logger: info level and above on stderr, the
// full debug log appended to logFile.
func setupLogging(logFile string) (*logrus.Logger, func(), error) {
	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)
	log.SetOutput(io.Discard)

	log.AddHook(&writerHook{
		writer: os.Stderr,
		formatter: &logrus.TextFormatter{
			DisableTimestamp: true,
		},
		levels: []logrus.Level{
			logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel,
			logrus.WarnLevel, logrus.InfoLevel,
		},
	})

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	log.AddHook(&writerHook{
		writer: file,
		formatter: &logrus.TextFormatter{
			FullTimestamp: true,
		},
		levels: logrus.AllLevels,
	})

	return log, func() { file.Close() }, nil
}
