package cmd

import (
	"fmt"
	"io"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-kit/kit/log/term"
)

// logger writes to stderr only, stdout carries the manifest
var logger = log.NewNopLogger()

func newLogger(w io.Writer, debug bool) log.Logger {
	var base log.Logger
	if term.IsTerminal(w) {
		base = term.NewLogger(w, log.NewLogfmtLogger, levelColor)
	} else {
		base = log.NewLogfmtLogger(log.NewSyncWriter(w))
	}

	allowed := level.AllowInfo()
	if debug {
		allowed = level.AllowDebug()
	}

	return level.NewFilter(base, allowed)
}

func levelColor(keyvals ...interface{}) term.FgBgColor {
	for i := 0; i+1 < len(keyvals); i += 2 {
		if keyvals[i] != level.Key() {
			continue
		}
		switch fmt.Sprint(keyvals[i+1]) {
		case "error":
			return term.FgBgColor{Fg: term.Red}
		case "warn":
			return term.FgBgColor{Fg: term.Yellow}
		case "debug":
			return term.FgBgColor{Fg: term.Gray}
		}
	}

	return term.FgBgColor{}
}
