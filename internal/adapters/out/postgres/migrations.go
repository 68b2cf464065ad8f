package postgres

import (
	"parcelflow/internal/adapters/out/postgres/buyerrepo"
	"parcelflow/internal/adapters/out/postgres/jobrepo"
	"parcelflow/internal/adapters/out/postgres/orderrepo"
	"parcelflow/internal/adapters/out/postgres/parcelrepo"
	"parcelflow/internal/adapters/out/postgres/vehiclerepo"
	"parcelflow/internal/adapters/out/postgres/warehouserepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&parcelrepo.ParcelEventDTO{},
		&warehouserepo.WarehouseDTO{},
		&vehiclerepo.VehicleDTO{},
		&orderrepo.OrderDTO{},
		&jobrepo.JobDTO{},
		&jobrepo.JobStepDTO{},
		&jobrepo.TransferJobDTO{},
		&jobrepo.TransferParcelDTO{},
		&buyerrepo.BuyerDTO{},
		&buyerrepo.BuyerParcelDTO{},
	)
}
