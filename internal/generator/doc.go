// Package generator runs the project generation pipeline: resolve the input
// and framework, run the framework's create-project command, install the
// fixed dependency set, create the directory skeleton, write the generated
// configuration files and report the next steps.
//
// Every file operation is rooted at an explicit project directory; the
// process working directory is never changed. External commands go through
// a runner.Runner so tests can substitute a recording fake.
package generator
