package main

import (
	"fmt"

	stepexport "github.com/bitrise-io/go-steputils/v2/export"
	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/env"
)

// Envman exports step outputs through envman.
type Envman struct {
	// Variables.
	Factory command.Factory
}

func (e *Envman) Export(key string, value string) error {
	exporter := stepexport.NewExporter(e.factory())
	if err := exporter.ExportOutput(key, value); err != nil {
		return fmt.Errorf("envman add %s: %w", key, err)
	}
	return nil
}

func (e *Envman) factory() command.Factory {
	if e.Factory != nil {
		return e.Factory
	}

	return command.NewFactory(env.NewRepository())
}
