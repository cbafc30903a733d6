package manifest

// File names of the generated configuration files.
const (
	PackageFile     = "package.json"
	WorkerFile      = "wrangler.toml"
	DescriptorFile  = "vercel.json"
	EnvTemplateFile = ".env.example"
)

// Package is the package.json manifest of a generated project.
type Package struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Private         bool              `json:"private"`
	Type            string            `json:"type,omitempty"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// NewPackage returns a private ES-module manifest with empty script and
// dependency maps.
func NewPackage(name string) *Package {
	return &Package{
		Name:            name,
		Version:         "0.1.0",
		Private:         true,
		Type:            "module",
		Scripts:         map[string]string{},
		Dependencies:    map[string]string{},
		DevDependencies: map[string]string{},
	}
}

// Worker is the wrangler.toml deployment manifest of one edge worker.
type Worker struct {
	Name              string               `toml:"name"`
	Main              string               `toml:"main"`
	CompatibilityDate string               `toml:"compatibility_date"`
	Env               map[string]WorkerEnv `toml:"env"`
	Observability     Observability        `toml:"observability"`
	D1Databases       []D1Database         `toml:"d1_databases"`
}

// WorkerEnv holds per-environment overrides.
type WorkerEnv struct {
	WorkersDev bool `toml:"workers_dev"`
}

// Observability configures worker logging.
type Observability struct {
	Logs ObservabilityLogs `toml:"logs"`
}

// ObservabilityLogs toggles worker log collection.
type ObservabilityLogs struct {
	Enabled bool `toml:"enabled"`
}

// D1Database binds a D1 database to the worker.
type D1Database struct {
	Binding      string `toml:"binding"`
	DatabaseName string `toml:"database_name"`
}

// NewWorker returns a worker manifest with the production environment kept
// off workers.dev, logs enabled and one D1 database bound as DB.
func NewWorker(name, compatibilityDate, databaseName string) *Worker {
	return &Worker{
		Name:              name,
		Main:              "index.js",
		CompatibilityDate: compatibilityDate,
		Env: map[string]WorkerEnv{
			"production": {WorkersDev: false},
		},
		Observability: Observability{Logs: ObservabilityLogs{Enabled: true}},
		D1Databases: []D1Database{
			{Binding: "DB", DatabaseName: databaseName},
		},
	}
}

// BuildDescriptor describes how a static-hosting target builds the project.
type BuildDescriptor struct {
	Name            string `json:"name"`
	Framework       string `json:"framework"`
	BuildCommand    string `json:"buildCommand"`
	DevCommand      string `json:"devCommand"`
	OutputDirectory string `json:"outputDirectory"`
}

// EnvTemplate lists the secrets a project needs, without values.
type EnvTemplate struct {
	// Header lines are written as comments at the top of the file.
	Header []string
	Keys   []EnvKey
}

// EnvKey is one secret placeholder.
type EnvKey struct {
	Name    string
	Comment string
}
