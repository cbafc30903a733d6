package framework

import "slices"

// NamePlaceholder marks where the project name is substituted in a generator
// argument template.
const NamePlaceholder = "{name}"

// DefaultKey is the framework used by the non-interactive variant and as the
// interactive fallback.
const DefaultKey = "vite-react"

// Framework describes one scaffoldable web framework.
type Framework struct {
	Key  string
	Name string

	// Generator is the argv of the official create-project command. The
	// element equal to NamePlaceholder is replaced by the project name.
	Generator []string

	BuildCommand    string
	DevCommand      string
	PreviewCommand  string
	Port            int
	OutputDirectory string

	// DeploySlug is the framework identifier written to the build descriptor.
	DeploySlug string

	IconPackage string
	React       bool

	// OwnsBundlerConfig is true when the generator writes vite.config.js itself
	// instead of keeping the one the framework template produced.
	OwnsBundlerConfig bool

	// Dependencies and DevDependencies are the packages the framework's own
	// template declares. They are carried into the generated package manifest.
	Dependencies    []string
	DevDependencies []string

	// ContentGlobs are the Tailwind content globs for the framework's sources.
	ContentGlobs []string
}

var registry = []Framework{
	{
		Key:             "nextjs",
		Name:            "Next.js",
		Generator:       []string{"npx", "create-next-app@latest", NamePlaceholder, "--use-npm", "--yes"},
		BuildCommand:    "next build",
		DevCommand:      "next dev",
		PreviewCommand:  "next start",
		Port:            3000,
		OutputDirectory: ".next",
		DeploySlug:      "nextjs",
		IconPackage:     "lucide-react",
		React:           true,
		Dependencies:    []string{"next", "react", "react-dom"},
		DevDependencies: []string{"eslint", "eslint-config-next"},
		ContentGlobs:    []string{"./src/**/*.{js,jsx,ts,tsx,mdx}", "./app/**/*.{js,jsx,ts,tsx,mdx}"},
	},
	{
		Key:             "remix",
		Name:            "Remix",
		Generator:       []string{"npx", "create-remix@latest", NamePlaceholder, "--yes"},
		BuildCommand:    "remix vite:build",
		DevCommand:      "remix vite:dev",
		PreviewCommand:  "remix-serve ./build/server/index.js",
		Port:            5173,
		OutputDirectory: "build/client",
		DeploySlug:      "remix",
		IconPackage:     "lucide-react",
		React:           true,
		Dependencies:    []string{"@remix-run/node", "@remix-run/react", "@remix-run/serve", "isbot", "react", "react-dom"},
		DevDependencies: []string{"@remix-run/dev", "vite", "vite-tsconfig-paths"},
		ContentGlobs:    []string{"./app/**/*.{js,jsx,ts,tsx}", "./src/**/*.{js,jsx,ts,tsx}"},
	},
	{
		Key:               "vite-react",
		Name:              "Vite + React",
		Generator:         []string{"npm", "create", "vite@latest", NamePlaceholder, "--", "--template", "react"},
		BuildCommand:      "vite build",
		DevCommand:        "vite",
		PreviewCommand:    "vite preview",
		Port:              5173,
		OutputDirectory:   "dist",
		DeploySlug:        "vite",
		IconPackage:       "lucide-react",
		React:             true,
		OwnsBundlerConfig: true,
		Dependencies:      []string{"react", "react-dom"},
		DevDependencies:   []string{"@vitejs/plugin-react", "vite"},
		ContentGlobs:      []string{"./index.html", "./src/**/*.{js,jsx,ts,tsx}"},
	},
	{
		Key:             "nuxt",
		Name:            "Nuxt",
		Generator:       []string{"npx", "nuxi@latest", "init", NamePlaceholder},
		BuildCommand:    "nuxt build",
		DevCommand:      "nuxt dev",
		PreviewCommand:  "nuxt preview",
		Port:            3000,
		OutputDirectory: ".output/public",
		DeploySlug:      "nuxtjs",
		IconPackage:     "lucide-vue-next",
		Dependencies:    []string{"nuxt", "vue", "vue-router"},
		ContentGlobs:    []string{"./components/**/*.{vue,js,ts}", "./pages/**/*.vue", "./app.vue"},
	},
	{
		Key:             "sveltekit",
		Name:            "SvelteKit",
		Generator:       []string{"npx", "sv", "create", NamePlaceholder},
		BuildCommand:    "vite build",
		DevCommand:      "vite dev",
		PreviewCommand:  "vite preview",
		Port:            5173,
		OutputDirectory: "build",
		DeploySlug:      "sveltekit",
		IconPackage:     "lucide-svelte",
		DevDependencies: []string{"@sveltejs/adapter-auto", "@sveltejs/kit", "@sveltejs/vite-plugin-svelte", "svelte", "vite"},
		ContentGlobs:    []string{"./src/**/*.{html,js,svelte,ts}"},
	},
	{
		Key:             "astro",
		Name:            "Astro",
		Generator:       []string{"npm", "create", "astro@latest", NamePlaceholder, "--", "--yes"},
		BuildCommand:    "astro build",
		DevCommand:      "astro dev",
		PreviewCommand:  "astro preview",
		Port:            4321,
		OutputDirectory: "dist",
		DeploySlug:      "astro",
		IconPackage:     "lucide-astro",
		Dependencies:    []string{"astro"},
		ContentGlobs:    []string{"./src/**/*.{astro,html,js,jsx,md,mdx,svelte,ts,tsx,vue}"},
	},
}

// All returns the supported frameworks in menu order.
func All() []Framework {
	return slices.Clone(registry)
}

// Keys returns the framework keys in menu order.
func Keys() []string {
	keys := make([]string, len(registry))
	for i, f := range registry {
		keys[i] = f.Key
	}
	return keys
}

// Lookup returns the framework registered under key.
func Lookup(key string) (Framework, bool) {
	for _, f := range registry {
		if f.Key == key {
			return f, true
		}
	}
	return Framework{}, false
}

// Default returns the Vite + React framework.
func Default() Framework {
	f, _ := Lookup(DefaultKey)
	return f
}

// GeneratorArgs returns the generator argv with the project name substituted.
// The name is always its own argument, so no shell quoting is involved.
func (f Framework) GeneratorArgs(projectName string) []string {
	args := make([]string, len(f.Generator))
	for i, a := range f.Generator {
		if a == NamePlaceholder {
			a = projectName
		}
		args[i] = a
	}
	return args
}
