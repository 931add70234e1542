package main

import (
	"context"
	"errors"
)

var errFileNotFound = errors.New("file not found")

func run(u *Uploader) (err error) {
	if u.Context == nil {
		u.Context = context.Background()
	}

	status := StatusSuccess
	defer func() {
		if err != nil {
			status = StatusFailed
			u.logger().Errorf("%s", err)
		}
		u.export(outputStatus, string(status))
		u.logger().Donef("  Status: %s", status)
	}()

	cfg := loadConfig(u.getenv, u.logger())
	u.logConfig(cfg)

	acl, err := cfg.validate()
	if err != nil {
		return err
	}

	t := &target{
		Config: cfg,
		ACL:    acl,
		Prefix: basePath(cfg, u.now()),
	}

	results, err := u.uploadFiles(t)
	if err != nil {
		return err
	}

	u.report(results)
	return nil
}
