package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3manager "github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/env"
)

// CLICopier uploads by running `aws s3 cp`. Credentials reach the child
// process through its environment only.
type CLICopier struct {
	// Variables.
	Command   string
	AccessKey string
	SecretKey string
	Region    string
	Stdout    io.Writer
	Stderr    io.Writer
	Factory   command.Factory
}

func (c *CLICopier) Copy(_ context.Context, src string, dst string, acl ACL) error {
	opts := &command.Opts{
		Stdout: c.Stdout,
		Stderr: c.Stderr,
		Env:    c.env(),
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	args := []string{"s3", "cp", src, dst, "--acl", string(acl)}
	return c.factory().Create(c.command(), args, opts).Run()
}

func (c *CLICopier) command() string {
	if c.Command != "" {
		return c.Command
	}
	return "aws"
}

// env is appended to the step's own environment by the command factory.
func (c *CLICopier) env() []string {
	vars := []string{
		"AWS_ACCESS_KEY_ID=" + c.AccessKey,
		"AWS_SECRET_ACCESS_KEY=" + c.SecretKey,
	}
	if c.Region != "" {
		vars = append(vars, "AWS_DEFAULT_REGION="+c.Region)
	}
	return vars
}

func (c *CLICopier) factory() command.Factory {
	if c.Factory != nil {
		return c.Factory
	}

	return command.NewFactory(env.NewRepository())
}

// SDKCopier uploads with the AWS SDK instead of an external client.
type SDKCopier struct {
	// Variables.
	AccessKey string
	SecretKey string
	Region    string
	Client    *s3.Client

	// IO functions.
	OpenFile  func(string) (io.ReadSeekCloser, error)
	PutObject func(context.Context, *s3.PutObjectInput) (*s3manager.UploadOutput, error)
}

func (c *SDKCopier) Copy(ctx context.Context, src string, dst string, acl ACL) error {
	bucket, key, err := splitObjectURI(dst)
	if err != nil {
		return err
	}

	file, err := c.openFile(src)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	in := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   file,
		ACL:    s3types.ObjectCannedACL(acl),
	}
	if ct := mime.TypeByExtension(filepath.Ext(src)); ct != "" {
		in.ContentType = aws.String(ct)
	}

	if _, err := c.putObject(ctx, in); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("s3 rejected %s (%s): %w", dst, apiErr.ErrorCode(), err)
		}
		return err
	}
	return nil
}

func (c *SDKCopier) region() string {
	if c.Region != "" {
		return c.Region
	}
	return defaultRegion
}

func (c *SDKCopier) setupClient(ctx context.Context) error {
	cfg, err := awscfg.LoadDefaultConfig(ctx,
		awscfg.WithRegion(c.region()),
		awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, ""),
		),
	)
	if err != nil {
		return err
	}
	c.Client = s3.NewFromConfig(cfg)
	return nil
}

func (c *SDKCopier) openFile(path string) (io.ReadSeekCloser, error) {
	if c.OpenFile != nil {
		return c.OpenFile(path)
	}

	return os.Open(path)
}

func (c *SDKCopier) putObject(ctx context.Context, in *s3.PutObjectInput) (*s3manager.UploadOutput, error) {
	if c.PutObject != nil {
		return c.PutObject(ctx, in)
	}

	if c.Client == nil {
		if err := c.setupClient(ctx); err != nil {
			return nil, err
		}
	}

	return s3manager.NewUploader(c.Client).Upload(ctx, in)
}
