// Package registry is the static table of desktop applications.
//
// Manifests (title, icon, default window size, resizable and fullscreen
// defaults, dock placement) are read once from the embedded apps.yaml.
// Each manifest is bound to a Factory that builds the application interior
// for a window. The table is immutable after Load.
//
// Example Usage:
//
//	reg, err := registry.Load(apps.Factories(songs))
//	if err != nil {
//	    return err
//	}
//	size := reg.DefaultSize("calculator") // 360x520
//	app := reg.Mount(host, record)
package registry
