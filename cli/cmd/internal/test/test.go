// Package test runs streamsx commands in-process and exposes their output and logs.
package test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"testing"

	"github.com/yvchan/streamsx.topology/cli/cmd"
	"github.com/yvchan/streamsx.topology/cli/internal/flags/log"
)

// Result captures a command run. Logs are always written as JSON.
type Result struct {
	Out  bytes.Buffer
	Logs Logs
}

type options struct {
	args  []string
	level string
}

type Option func(*options)

// WithArgs sets the command line arguments. Without arguments the help is printed.
func WithArgs(args ...string) Option {
	return func(o *options) {
		o.args = args
	}
}

// WithLogLevel sets the log level, default is debug so that every record can be asserted on.
func WithLogLevel(level string) Option {
	return func(o *options) {
		o.level = level
	}
}

// Run executes streamsx with the given options. The Result is returned even if the command fails.
func Run(tb testing.TB, opts ...Option) (*Result, error) {
	tb.Helper()

	opt := options{args: []string{"help"}, level: log.LevelDebug}
	for _, o := range opts {
		o(&opt)
	}

	res := &Result{}
	instance := cmd.New()
	instance.SetOut(&res.Out)
	instance.SetErr(&res.Logs.buf)

	for flag, value := range map[string]string{
		log.FormatFlagName: log.FormatJSON,
		log.LevelFlagName:  opt.level,
		log.OutputFlagName: log.OutputStderr,
	} {
		if err := instance.PersistentFlags().Set(flag, value); err != nil {
			return res, fmt.Errorf("failed to set %s: %w", flag, err)
		}
	}

	instance.SetArgs(opt.args)
	_, err := instance.ExecuteContextC(tb.Context())
	return res, err
}

// Logs holds the JSON log output of a run.
type Logs struct {
	buf bytes.Buffer
}

// Entry is a single log record. Attributes other than level and msg end up in Attrs.
type Entry struct {
	Level string
	Msg   string
	Attrs map[string]any
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Level, _ = raw["level"].(string)
	e.Msg, _ = raw["msg"].(string)
	delete(raw, "time")
	delete(raw, "level")
	delete(raw, "msg")
	e.Attrs = raw
	return nil
}

// Realm returns the realm the record was logged in, if any.
func (e *Entry) Realm() string {
	realm, _ := e.Attrs[log.RealmKey].(string)
	return realm
}

// Entries parses all records. Lines that are not JSON, such as the error printed by cobra, are skipped.
func (l *Logs) Entries(tb testing.TB) []Entry {
	tb.Helper()
	var entries []Entry
	scanner := bufio.NewScanner(bytes.NewReader(l.buf.Bytes()))
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			tb.Logf("skipping non-JSON log line %q", scanner.Text())
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// Realm returns the records of the given realm.
func (l *Logs) Realm(tb testing.TB, realm string) []Entry {
	tb.Helper()
	return slices.DeleteFunc(l.Entries(tb), func(e Entry) bool {
		return e.Realm() != realm
	})
}

// Messages returns the messages of the records of the given realm in order.
func (l *Logs) Messages(tb testing.TB, realm string) []string {
	tb.Helper()
	var msgs []string
	for _, e := range l.Realm(tb, realm) {
		msgs = append(msgs, e.Msg)
	}
	return msgs
}
