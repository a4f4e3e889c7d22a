package models

import (
	"log"

	"github.com/mmsanduk/mahall_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Tenant{}, &User{},
		&Institute{}, &InstituteAccount{},
		&Ledger{}, &Category{}, &LedgerItem{},
		&SalaryPayment{},
		&PettyCashFund{}, &PettyCashVoucher{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
