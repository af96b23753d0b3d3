// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/whl/internal/adapters/cas"
	_ "go.trai.ch/whl/internal/adapters/config"
	_ "go.trai.ch/whl/internal/adapters/fs"
	_ "go.trai.ch/whl/internal/adapters/logger"
	_ "go.trai.ch/whl/internal/adapters/shell"
	_ "go.trai.ch/whl/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/whl/internal/adapters/wheel"
	// Register app nodes.
	_ "go.trai.ch/whl/internal/app"
)
