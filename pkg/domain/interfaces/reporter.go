package interfaces

import (
	"github.com/m-mizutani/deploystat/pkg/domain/model"
)

type Reporter interface {
	Report(report *model.Report) error
}

// Progress receives scan status while the pipeline runs
type Progress interface {
	Start()
	Update(repoName string)
	Stop()
}
