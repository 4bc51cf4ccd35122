package db

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/qwiken-app/booking-api/internal/config"
	"github.com/qwiken-app/booking-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Shop{},
		&models.User{},
		&models.Service{},
		&models.StaffMember{},
		&models.Customer{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		logrus.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE shops
        SET timezone = 'Pacific/Auckland'
        WHERE timezone IS NULL OR timezone = ''
    `)

	installConflictCheck(db)

	return db
}

// installConflictCheck deploys the authoritative conflict predicate as
// a SQL function so that the check is evaluated server-side in a
// single statement.
func installConflictCheck(db *gorm.DB) {
	err := db.Exec(`
        CREATE OR REPLACE FUNCTION check_booking_conflict(
            p_shop_id uuid,
            p_staff_id uuid,
            p_booking_date varchar,
            p_start_time varchar,
            p_end_time varchar
        ) RETURNS boolean AS $$
            SELECT EXISTS (
                SELECT 1 FROM bookings
                WHERE shop_id = p_shop_id
                  AND (p_staff_id IS NULL OR staff_id = p_staff_id)
                  AND date = p_booking_date
                  AND status IN ('pending', 'confirmed', 'in_progress')
                  AND start_time < p_end_time
                  AND end_time > p_start_time
            );
        $$ LANGUAGE sql STABLE
    `).Error

	if err != nil {
		logrus.WithError(err).Warn("could not install check_booking_conflict, conflict checks will fail open")
	}
}
