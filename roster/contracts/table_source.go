package contracts

import "github.com/meysamhadeli/teamboard/roster/models"

type ITableSource interface {
	CurrentTable() *models.Table
	Invalidate()
	Stats() map[string]interface{}
	ResetStats()
}
