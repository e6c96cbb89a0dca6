package main

import (
	"fmt"
	"os"

	"github.com/moxxiRan/daily-site/internal/core"
)

func CheckConfig() {
	err := core.CurrentConfig().Check()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadManifest reads the manifest, building it first when missing.
func loadManifest() *core.Manifest {
	config := core.CurrentConfig()
	manifest, err := core.ReadManifest(config.ManifestPath())
	if err == nil {
		return manifest
	}
	core.CurrentLogger().Infof("Building the manifest: %v", err)

	ctx, cancel := commandContext()
	defer cancel()
	manifest, err = core.NewBuilder(config).Build(ctx)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	return manifest
}
