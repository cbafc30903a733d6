package generator

import "fmt"

// Stage is a state of the generation pipeline.
type Stage int

const (
	StageStart Stage = iota
	StageInputResolved
	StageFrameworkResolved
	StageBaseProjectGenerated
	StageDependenciesInstalled
	StageSkeletonMaterialized
	StageFilesWritten
	StageReportedSuccess
	StageFailed
)

var stageNames = map[Stage]string{
	StageStart:                 "Start",
	StageInputResolved:         "InputResolved",
	StageFrameworkResolved:     "FrameworkResolved",
	StageBaseProjectGenerated:  "BaseProjectGenerated",
	StageDependenciesInstalled: "DependenciesInstalled",
	StageSkeletonMaterialized:  "SkeletonMaterialized",
	StageFilesWritten:          "FilesWritten",
	StageReportedSuccess:       "ReportedSuccess",
	StageFailed:                "Failed",
}

// stageActions describe the work that leads into a stage.
var stageActions = map[Stage]string{
	StageInputResolved:         "resolving input",
	StageFrameworkResolved:     "selecting framework",
	StageBaseProjectGenerated:  "generating base project",
	StageDependenciesInstalled: "installing dependencies",
	StageSkeletonMaterialized:  "creating directories",
	StageFilesWritten:          "writing files",
	StageReportedSuccess:       "reporting",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// StageError records the stage the pipeline was trying to reach when it
// failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	action, ok := stageActions[e.Stage]
	if !ok {
		action = e.Stage.String()
	}
	return action + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}
