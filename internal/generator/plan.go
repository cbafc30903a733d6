package generator

import (
	"fmt"

	"github.com/edgekit-labs/edgegen/internal/framework"
	"github.com/edgekit-labs/edgegen/internal/manifest"
	"github.com/edgekit-labs/edgegen/internal/runner"
	"github.com/edgekit-labs/edgegen/internal/scaffold"
)

// Worker dev server ports.
const (
	ChatPort    = 8787
	ContactPort = 8788
)

const (
	chatWorkerDir    = "src/worker/chat"
	contactWorkerDir = "src/worker/contact"
	componentsDir    = "src/components"
)

// Secrets lists the keys written to .env.example.
var Secrets = []manifest.EnvKey{
	{Name: "CLOUDFLARE_ACCOUNT_ID", Comment: "Cloudflare account that owns the workers"},
	{Name: "CLOUDFLARE_API_TOKEN", Comment: "API token with Workers and D1 edit permissions"},
	{Name: "CHAT_API_KEY", Comment: "Key for the model provider behind the chat worker"},
	{Name: "CONTACT_EMAIL_TO", Comment: "Address that receives contact form submissions"},
	{Name: "CONTACT_API_KEY", Comment: "Key for the mail delivery service used by the contact worker"},
}

// planInput is everything the file set depends on.
type planInput struct {
	Name           string
	Framework      framework.Framework
	Variant        Variant
	PackageManager runner.PackageManager
	Settings       Settings
}

// buildPlan assembles the directory skeleton and file set. Schema issues in
// the generated manifests are returned as warnings.
func buildPlan(in planInput) (*scaffold.Plan, []string, error) {
	p := &scaffold.Plan{}
	var warnings []string
	fw := in.Framework

	dirs := []string{chatWorkerDir, contactWorkerDir, componentsDir}
	if fw.React {
		dirs = append(dirs, componentsDir+"/ui")
	}
	for _, d := range dirs {
		if err := p.AddDir(d); err != nil {
			return nil, nil, err
		}
	}

	add := func(path string, content []byte, err error) error {
		if err != nil {
			return fmt.Errorf("rendering %s: %w", path, err)
		}
		return p.AddFile(path, content)
	}

	pkg, err := packageManifest(in).Encode()
	if err := add(manifest.PackageFile, pkg, err); err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, schemaWarnings(manifest.PackageFile, manifest.SchemaPackage, pkg)...)

	data := scaffold.TemplateData{
		ContentGlobs: fw.ContentGlobs,
		Port:         fw.Port,
		ChatPort:     ChatPort,
		ContactPort:  ContactPort,
	}

	tailwind, err := scaffold.Render(scaffold.TailwindConfig, data)
	if err := add("tailwind.config.js", tailwind, err); err != nil {
		return nil, nil, err
	}
	postcss, err := scaffold.Render(scaffold.PostCSSConfig, data)
	if err := add("postcss.config.js", postcss, err); err != nil {
		return nil, nil, err
	}
	if fw.OwnsBundlerConfig {
		vite, err := scaffold.Render(scaffold.ViteConfig, data)
		if err := add("vite.config.js", vite, err); err != nil {
			return nil, nil, err
		}
	}

	workers := []struct {
		dir, suffix, database, template string
	}{
		{chatWorkerDir, "-chat-worker", in.Settings.ChatDatabase, scaffold.ChatWorker},
		{contactWorkerDir, "-contact-worker", in.Settings.ContactDatabase, scaffold.ContactWorker},
	}
	for _, w := range workers {
		name := in.Name + w.suffix
		toml, err := manifest.NewWorker(name, in.Settings.CompatibilityDate, w.database).Encode()
		path := w.dir + "/" + manifest.WorkerFile
		if err := add(path, toml, err); err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, schemaWarnings(path, manifest.SchemaWorker, toml)...)

		wd := data
		wd.WorkerName = name
		js, err := scaffold.Render(w.template, wd)
		if err := add(w.dir+"/index.js", js, err); err != nil {
			return nil, nil, err
		}
	}

	env := &manifest.EnvTemplate{
		Header: []string{
			"Secrets for " + in.Name + ". Copy this file to .env and fill in the values.",
			"Never commit .env.",
		},
		Keys: Secrets,
	}
	envData, err := env.Encode()
	if err := add(manifest.EnvTemplateFile, envData, err); err != nil {
		return nil, nil, err
	}

	if fw.React {
		assets := []struct{ path, name string }{
			{componentsDir + "/ChatApp.jsx", scaffold.ChatApp},
			{componentsDir + "/ui/card.jsx", scaffold.CardComponent},
			{componentsDir + "/ui/button.jsx", scaffold.ButtonComponent},
		}
		for _, a := range assets {
			content, err := scaffold.Asset(a.name)
			if err := add(a.path, content, err); err != nil {
				return nil, nil, err
			}
		}
	}

	if in.Variant.WritesDescriptor() {
		desc, err := buildDescriptor(in).Encode()
		if err := add(manifest.DescriptorFile, desc, err); err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, schemaWarnings(manifest.DescriptorFile, manifest.SchemaDescriptor, desc)...)
	}

	return p, warnings, nil
}

func packageManifest(in planInput) *manifest.Package {
	fw := in.Framework
	p := manifest.NewPackage(in.Name)

	p.Scripts["dev"] = fw.DevCommand
	p.Scripts["build"] = fw.BuildCommand
	p.Scripts["preview"] = fw.PreviewCommand
	p.Scripts["worker:chat"] = "wrangler dev --config " + chatWorkerDir + "/" + manifest.WorkerFile
	p.Scripts["worker:contact"] = fmt.Sprintf("wrangler dev --config %s/%s --port %d", contactWorkerDir, manifest.WorkerFile, ContactPort)
	p.Scripts["deploy:chat"] = "wrangler deploy --config " + chatWorkerDir + "/" + manifest.WorkerFile + " --env production"
	p.Scripts["deploy:contact"] = "wrangler deploy --config " + contactWorkerDir + "/" + manifest.WorkerFile + " --env production"

	for _, d := range fw.Dependencies {
		p.Dependencies[d] = "latest"
	}
	for _, spec := range runtimeDependencies(fw) {
		name, version := splitPackageSpec(spec)
		p.Dependencies[name] = version
	}
	for _, d := range fw.DevDependencies {
		p.DevDependencies[d] = "latest"
	}
	for _, spec := range devDependencies {
		name, version := splitPackageSpec(spec)
		p.DevDependencies[name] = version
	}
	return p
}

func buildDescriptor(in planInput) *manifest.BuildDescriptor {
	return &manifest.BuildDescriptor{
		Name:            in.Name,
		Framework:       in.Framework.DeploySlug,
		BuildCommand:    in.Framework.BuildCommand,
		DevCommand:      in.Framework.DevCommand,
		OutputDirectory: in.Framework.OutputDirectory,
	}
}

// schemaWarnings validates data and formats any issues as warnings.
func schemaWarnings(path string, schema manifest.Schema, data []byte) []string {
	result, err := manifest.Validate(schema, data)
	if err != nil {
		return []string{fmt.Sprintf("%s: %v", path, err)}
	}
	var out []string
	for _, issue := range result.Issues {
		out = append(out, path+": "+issue.String())
	}
	return out
}
