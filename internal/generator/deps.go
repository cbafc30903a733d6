package generator

import (
	"strings"

	"github.com/edgekit-labs/edgegen/internal/framework"
)

// devDependencies are installed into every project: the CSS toolchain and
// the worker deployment CLI.
var devDependencies = []string{
	"tailwindcss@^3",
	"postcss",
	"autoprefixer",
	"wrangler",
}

// runtimeDependencies returns the packages installed on top of what the
// framework's own generator declares.
func runtimeDependencies(fw framework.Framework) []string {
	var deps []string
	if fw.Key == framework.DefaultKey {
		deps = append(deps, "react-router-dom@latest")
	}
	if fw.IconPackage != "" {
		deps = append(deps, fw.IconPackage+"@latest")
	}
	return deps
}

// splitPackageSpec splits "name@range" into its parts. Scoped names keep
// their leading '@'. A bare name or an "@latest" suffix yields "latest".
func splitPackageSpec(spec string) (name, version string) {
	at := strings.LastIndex(spec, "@")
	if at <= 0 {
		return spec, "latest"
	}
	name, version = spec[:at], spec[at+1:]
	if version == "" {
		version = "latest"
	}
	return name, version
}
