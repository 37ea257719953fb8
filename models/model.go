package models

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Lock adds SELECT ... FOR UPDATE to the next query on tx.
func Lock(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

type Reference struct {
	ID   uint64
	Type string
}

var (
	ReferenceConvocation = "convocacao"
	ReferenceRecharge    = "recarga"
	ReferenceWithdrawal  = "saque"
)

// Now is swapped in tests to pin the clock.
var Now = func() time.Time {
	return time.Now()
}

func Paginate(page, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			limit = 20
		}
		if limit > 100 {
			limit = 100
		}
		if page <= 0 {
			page = 1
		}

		return db.Offset(page*limit - limit).Limit(limit)
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Saldo{},
		&Movement{},
		&Revenue{},
		&FeeConfig{},
		&Venue{},
		&Convocation{},
		&Recharge{},
		&Withdrawal{},
		&RatingCategory{},
		&GoalkeeperRating{},
		&OrganizerRating{},
		&SupportTicket{},
		&SupportMessage{},
		&AppUpdate{},
		&PushToken{},
	)
}
