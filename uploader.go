package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	outputURL    = "S3_UPLOAD_STEP_URL"
	outputURLs   = "S3_UPLOAD_STEP_URLS"
	outputStatus = "S3_UPLOAD_STEP_STATUS"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Copier copies a local file to an s3:// object URI with the given ACL.
type Copier interface {
	Copy(ctx context.Context, src string, dst string, acl ACL) error
}

// OutputExporter publishes a key/value pair to the CI environment.
type OutputExporter interface {
	Export(key string, value string) error
}

// Logger is the part of the bitrise step logger the uploader writes through.
type Logger interface {
	Infof(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Printf(format string, v ...interface{})
	Donef(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

type Uploader struct {
	// Variables.
	Context context.Context
	Copier  Copier
	Outputs OutputExporter
	Logger  Logger

	// IO functions.
	Getenv func(string) string
	Now    func() time.Time
	Stat   func(string) (os.FileInfo, error)

	// Internal functions.
	UploadFile func(*target, string) (string, error)
}

// target is everything shared by the uploads of one run.
type target struct {
	Config *Config
	ACL    ACL
	Prefix string
}

type Result struct {
	File string
	URL  string
}

func (u *Uploader) uploadFiles(t *target) ([]Result, error) {
	u.logger().Infof("Uploading files to S3")

	results := make([]Result, 0, len(t.Config.Files))
	for _, f := range t.Config.Files {
		url, err := u.uploadFile(t, f)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{File: f, URL: url})
	}
	return results, nil
}

func (u *Uploader) uploadFile(t *target, path string) (string, error) {
	if u.UploadFile != nil {
		return u.UploadFile(t, path)
	}

	log := u.logger()
	log.Infof("Uploading file %s to S3...", path)
	if _, err := u.stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", errFileNotFound, path)
	}

	key := objectKey(t.Prefix, path)
	url := objectUrl(t.Config.BucketName, t.Config.BucketRegion, key)

	log.Infof("Deploy info for file %s:", path)
	log.Printf("  * Access Level: %s", t.Config.AccessLevel)
	log.Printf("  * File: %s", url)

	uri := objectURI(t.Config.BucketName, key)
	if err := u.copier(t.Config).Copy(u.Context, path, uri, t.ACL); err != nil {
		return "", fmt.Errorf("failed to upload file %s: %w", path, err)
	}
	return url, nil
}

func (u *Uploader) report(results []Result) {
	urls := make([]string, len(results))
	for i, r := range results {
		urls[i] = r.URL
	}

	if len(urls) == 1 {
		u.export(outputURL, urls[0])
	} else {
		u.export(outputURLs, strings.Join(urls, ","))
	}

	log := u.logger()
	log.Printf("  Public URLs:")
	for _, url := range urls {
		log.Printf("  * %s", url)
	}
	log.Donef("  Upload process completed successfully")
}

// export never fails the run; a broken output helper only earns a warning.
func (u *Uploader) export(key string, value string) {
	if err := u.outputs().Export(key, value); err != nil {
		u.logger().Warnf("failed to export %s: %s", key, err)
	}
}

func (u *Uploader) logConfig(c *Config) {
	log := u.logger()
	log.Infof("Configs:")
	for _, f := range c.fields() {
		value := f[1]
		if value == "" {
			value = "N/A"
		}
		log.Printf("  * %s: %s", f[0], value)
	}
}

func (u *Uploader) Clone() *Uploader {
	return &Uploader{
		Context: u.Context,
		Copier:  u.Copier,
		Outputs: u.Outputs,
		Logger:  u.Logger,

		Getenv: u.Getenv,
		Now:    u.Now,
		Stat:   u.Stat,

		UploadFile: u.UploadFile,
	}
}
