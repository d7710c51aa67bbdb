// =================================================================================
// This is auto-generated by GoFrame CLI tool only once. Fill this file as you wish.
// =================================================================================

package export

import (
	"transcription-hub/api/export"
	exportSvc "transcription-hub/internal/service/export"
)

type ControllerV1 struct {
	exporter *exportSvc.Exporter
}

func NewV1(exporter *exportSvc.Exporter) export.IExportV1 {
	return &ControllerV1{exporter: exporter}
}
