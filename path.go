package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const defaultRegion = "us-east-1"

// basePath returns the prefix shared by every object uploaded in one run.
func basePath(c *Config, now time.Time) string {
	if c.PathInBucket != "" {
		return c.PathInBucket
	}
	return fmt.Sprintf("bitrise_%s/%d_build_%s", c.AppSlug, now.UTC().Unix(), c.BuildSlug)
}

func objectKey(prefix string, file string) string {
	return prefix + "/" + filepath.Base(file)
}

func objectURI(bucket string, key string) string {
	return "s3://" + bucket + "/" + key
}

func objectUrl(bucket string, region string, key string) string {
	if region == "" || region == defaultRegion {
		return fmt.Sprintf("https://s3.amazonaws.com/%s/%s", bucket, key)
	}
	return fmt.Sprintf("https://s3-%s.amazonaws.com/%s/%s", region, bucket, key)
}

func splitObjectURI(uri string) (bucket string, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 object URI: %s", uri)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("not an s3 object URI: %s", uri)
	}
	return bucket, key, nil
}
