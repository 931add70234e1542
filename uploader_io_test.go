package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"testing"
	"time"
)

type nopCloser struct {
	io.ReadSeeker
	CloseHook func()
}

func (c nopCloser) Close() error { c.CloseHook(); return nil }

type copierFunc func(ctx context.Context, src string, dst string, acl ACL) error

func (f copierFunc) Copy(ctx context.Context, src string, dst string, acl ACL) error {
	return f(ctx, src, dst, acl)
}

type exporterFunc func(key string, value string) error

func (f exporterFunc) Export(key string, value string) error { return f(key, value) }

type testLogger struct {
	Lines []string
}

func (l *testLogger) logf(level string, format string, v ...interface{}) {
	l.Lines = append(l.Lines, level+": "+fmt.Sprintf(format, v...))
}

func (l *testLogger) Infof(format string, v ...interface{})  { l.logf("info", format, v...) }
func (l *testLogger) Warnf(format string, v ...interface{})  { l.logf("warn", format, v...) }
func (l *testLogger) Printf(format string, v ...interface{}) { l.logf("print", format, v...) }
func (l *testLogger) Donef(format string, v ...interface{})  { l.logf("done", format, v...) }
func (l *testLogger) Errorf(format string, v ...interface{}) { l.logf("error", format, v...) }

func (l *testLogger) String() string {
	return strings.Join(l.Lines, "\n")
}

type copyCall struct {
	Src string
	Dst string
	ACL ACL
}

type export struct {
	Key   string
	Value string
}

// 2024-03-01T12:00:00Z
var (
	frozenTime      = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	frozenTimestamp = "1709294400"
)

type testRun struct {
	Uploader *Uploader

	CopyCalls []copyCall
	Exports   []export
	StatCalls []string
	Log       *testLogger
}

var testUploader = &Uploader{
	Context: context.Background(),

	Now: func() time.Time {
		return frozenTime
	},
	Stat: func(string) (fs.FileInfo, error) {
		return nil, nil
	},
}

func newTestRun(t *testing.T) *testRun {
	u := testUploader.Clone()
	run := &testRun{Uploader: u}

	u.Copier = copierFunc(func(_ context.Context, src string, dst string, acl ACL) error {
		run.CopyCalls = append(run.CopyCalls, copyCall{src, dst, acl})
		return nil
	})
	u.Outputs = exporterFunc(func(key string, value string) error {
		run.Exports = append(run.Exports, export{key, value})
		return nil
	})
	u.Stat = func(name string) (fs.FileInfo, error) {
		run.StatCalls = append(run.StatCalls, name)
		return nil, nil
	}
	run.Log = &testLogger{}
	u.Logger = run.Log

	for k, v := range map[string]string{
		"file_paths":        "build/app.apk",
		"file_path":         "",
		"app_slug":          "someapp",
		"build_slug":        "somebuild",
		"aws_access_key":    "AKIAEXAMPLE",
		"aws_secret_key":    "s3cr3t",
		"bucket_name":       "somebucket",
		"bucket_region":     "",
		"path_in_bucket":    "",
		"file_access_level": "public_read",
		"upload_client":     "",
	} {
		t.Setenv(k, v)
	}

	return run
}

func (r *testRun) output() string {
	return r.Log.String()
}

func (r *testRun) lastExport() export {
	if len(r.Exports) == 0 {
		return export{}
	}
	return r.Exports[len(r.Exports)-1]
}
