package main

import (
	"os"
	"time"

	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
)

func main() {
	if err := run(new(Uploader)); err != nil {
		os.Exit(1)
	}
}

func (u *Uploader) getenv(name string) string {
	if u.Getenv != nil {
		return u.Getenv(name)
	}

	return env.NewRepository().Get(name)
}

func (u *Uploader) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}

	return time.Now()
}

func (u *Uploader) logger() Logger {
	if u.Logger == nil {
		u.Logger = log.NewLogger()
	}

	return u.Logger
}

func (u *Uploader) stat(name string) (os.FileInfo, error) {
	if u.Stat != nil {
		return u.Stat(name)
	}

	return os.Stat(name)
}

func (u *Uploader) copier(c *Config) Copier {
	if u.Copier != nil {
		return u.Copier
	}

	if c.Client == clientSDK {
		u.Copier = &SDKCopier{
			AccessKey: string(c.AccessKey),
			SecretKey: string(c.SecretKey),
			Region:    c.BucketRegion,
		}
	} else {
		u.Copier = &CLICopier{
			AccessKey: string(c.AccessKey),
			SecretKey: string(c.SecretKey),
			Region:    c.BucketRegion,
		}
	}
	return u.Copier
}

func (u *Uploader) outputs() OutputExporter {
	if u.Outputs != nil {
		return u.Outputs
	}

	u.Outputs = &Envman{}
	return u.Outputs
}
