// Package runner executes the external collaborators the generator depends on
// (package managers, framework generators, git, wrangler). Runner is the
// capability interface: Run takes a Command and returns its exit code and
// captured output. A non-zero exit is data, not an error; callers decide
// whether it is fatal. The package also builds install commands for the
// supported package managers and probes tool versions for the doctor command.
package runner
