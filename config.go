package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bitrise-io/go-steputils/v2/stepconf"
)

var (
	errNoFiles       = errors.New("no files specified for upload")
	errMissingInput  = errors.New("missing required input")
	errInvalidACL    = errors.New("invalid access level")
	errInvalidClient = errors.New("invalid upload client")
)

// ACL is the canned access control list applied to every uploaded object.
type ACL string

const (
	ACLPublicRead ACL = "public-read"
	ACLPrivate    ACL = "private"
)

const (
	clientCLI = "cli"
	clientSDK = "sdk"
)

type Config struct {
	Files        []string
	AppSlug      string
	BuildSlug    string
	AccessKey    stepconf.Secret
	SecretKey    stepconf.Secret
	BucketName   string
	BucketRegion string
	PathInBucket string
	AccessLevel  string
	Client       string
}

// loadConfig reads the step inputs. Variables set to the empty string count
// as unset. The legacy file_path input is only consulted when file_paths is
// empty, but it is warned about whenever it is present.
func loadConfig(getenv func(string) string, log Logger) *Config {
	files := getenv("file_paths")
	if legacy := getenv("file_path"); legacy != "" {
		log.Warnf("file_path is deprecated and will be removed in a future release. " +
			"Please use file_paths instead.")
		if files == "" {
			files = legacy
		}
	}

	return &Config{
		Files:        splitFiles(files),
		AppSlug:      getenv("app_slug"),
		BuildSlug:    getenv("build_slug"),
		AccessKey:    stepconf.Secret(getenv("aws_access_key")),
		SecretKey:    stepconf.Secret(getenv("aws_secret_key")),
		BucketName:   getenv("bucket_name"),
		BucketRegion: getenv("bucket_region"),
		PathInBucket: getenv("path_in_bucket"),
		AccessLevel:  getenv("file_access_level"),
		Client:       getenv("upload_client"),
	}
}

func splitFiles(s string) []string {
	var files []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}
	return files
}

// validate checks the inputs in a fixed order and returns the first problem.
// On success it returns the ACL the access level maps to.
func (c *Config) validate() (ACL, error) {
	if len(c.Files) == 0 {
		return "", errNoFiles
	}

	required := []struct{ name, value string }{
		{"app_slug", c.AppSlug},
		{"build_slug", c.BuildSlug},
		{"aws_access_key", string(c.AccessKey)},
		{"aws_secret_key", string(c.SecretKey)},
		{"bucket_name", c.BucketName},
		{"file_access_level", c.AccessLevel},
	}
	for _, r := range required {
		if r.value == "" {
			return "", fmt.Errorf("%w: %s", errMissingInput, r.name)
		}
	}

	acl, err := parseAccessLevel(c.AccessLevel)
	if err != nil {
		return "", err
	}

	switch c.Client {
	case "", clientCLI, clientSDK:
	default:
		return "", fmt.Errorf("%w: %s", errInvalidClient, c.Client)
	}

	return acl, nil
}

func parseAccessLevel(level string) (ACL, error) {
	switch level {
	case "public_read":
		return ACLPublicRead, nil
	case "private":
		return ACLPrivate, nil
	}
	return "", fmt.Errorf("%w: %s", errInvalidACL, level)
}

// fields lists the inputs in the order they are printed. Secrets print
// masked.
func (c *Config) fields() [][2]string {
	return [][2]string{
		{"files", strings.Join(c.Files, ",")},
		{"app_slug", c.AppSlug},
		{"build_slug", c.BuildSlug},
		{"access_key", c.AccessKey.String()},
		{"secret_key", c.SecretKey.String()},
		{"bucket_name", c.BucketName},
		{"bucket_region", c.BucketRegion},
		{"path_in_bucket", c.PathInBucket},
		{"acl", c.AccessLevel},
		{"upload_client", c.Client},
	}
}
