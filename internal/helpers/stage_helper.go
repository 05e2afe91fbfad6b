package helpers

import (
	"github.com/samber/lo"
	"github.com/unations/tax-engine/internal/constants"
)

// Deployment stages. StageTest runs against the memory engine in CI.
const (
	StageProd  = constants.ProdEnvironment
	StageDev   = "dev"
	StageLocal = "local"
	StageTest  = "test"
)

// ValidStages lists every accepted STAGE value.
var ValidStages = []string{StageProd, StageDev, StageLocal, StageTest}

// IsValidStage reports whether stage is one of ValidStages.
func IsValidStage(stage string) bool {
	return lo.Contains(ValidStages, stage)
}

// IsDeployedStage reports whether stage runs in AWS rather than on a workstation or CI.
func IsDeployedStage(stage string) bool {
	return stage == StageProd || stage == StageDev
}
