package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/qwiken-app/booking-api/internal/domain/booking"
	"github.com/qwiken-app/booking-api/internal/domain/schedule"
	"github.com/qwiken-app/booking-api/internal/httperr"
	"github.com/qwiken-app/booking-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Shop
// --------------------------------------------------

func (r *BookingGormRepository) GetShopByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Shop, error) {

	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *BookingGormRepository) GetShopBySlug(
	ctx context.Context,
	slug string,
) (*models.Shop, error) {

	var shop models.Shop
	if err := r.db.WithContext(ctx).
		Where("slug = ? AND active = true", slug).
		First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	shopID uuid.UUID,
	serviceID uuid.UUID,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", serviceID, shopID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Staff
// --------------------------------------------------

func (r *BookingGormRepository) GetStaffMember(
	ctx context.Context,
	shopID uuid.UUID,
	staffID uuid.UUID,
) (*models.StaffMember, error) {

	var staff models.StaffMember
	if err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", staffID, shopID).
		First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *BookingGormRepository) ListStaffForShop(
	ctx context.Context,
	shopID uuid.UUID,
) ([]models.StaffMember, error) {

	var staff []models.StaffMember
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND active = true", shopID).
		Order("name ASC").
		Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *BookingGormRepository) GetOrCreateCustomer(
	ctx context.Context,
	shopID uuid.UUID,
	name string,
	phone string,
	email string,
) (*models.Customer, error) {

	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND phone = ?", shopID, phone).
		First(&customer).Error

	if err == nil {
		return &customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		// A transient lookup failure must not mint a duplicate row.
		return nil, err
	}

	customer = models.Customer{
		ShopID: shopID,
		Name:   name,
		Phone:  phone,
		Email:  email,
	}

	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}

	return &customer, nil
}

// --------------------------------------------------
// Booked intervals / conflict
// --------------------------------------------------

func (r *BookingGormRepository) FetchBookedIntervals(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
) ([]schedule.Interval, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"staff_id = ? AND date = ? AND status IN ?",
			staffID, date, domain.BlockingStatuses(),
		).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	intervals := make([]schedule.Interval, 0, len(rows))
	for _, b := range rows {
		intervals = append(intervals, schedule.Interval{
			Start: b.StartTime,
			End:   b.EndTime,
		})
	}

	return intervals, nil
}

// CheckConflict calls the check_booking_conflict SQL function. When the
// function has not been deployed yet the check degrades to "no
// conflict" so booking flows keep working; the transactional predicate
// in CreateBooking still guards the actual insert.
func (r *BookingGormRepository) CheckConflict(
	ctx context.Context,
	shopID uuid.UUID,
	staffID uuid.UUID,
	date string,
	startTime string,
	endTime string,
) (bool, error) {

	var conflict bool
	err := r.db.WithContext(ctx).
		Raw(
			"SELECT check_booking_conflict(?, ?, ?, ?, ?)",
			shopID, staffID, date, startTime, endTime,
		).
		Scan(&conflict).Error

	if err != nil {
		if httperr.IsUndefinedFunction(err) {
			logrus.Warn("check_booking_conflict not deployed, proceeding without server-side check")
			return false, nil
		}
		return false, err
	}

	return conflict, nil
}

// --------------------------------------------------
// Booking (create / state change)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Booking{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"staff_id = ? AND date = ? AND status IN ? AND start_time < ? AND end_time > ?",
				b.StaffID, b.Date, domain.BlockingStatuses(), b.EndTime, b.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(b).Error
	})
}

func (r *BookingGormRepository) GetBookingForShop(
	ctx context.Context,
	bookingID uuid.UUID,
	shopID uuid.UUID,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", bookingID, shopID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) ListBookingsForDate(
	ctx context.Context,
	shopID uuid.UUID,
	date string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Preload("Staff").
		Where("shop_id = ? AND date = ?", shopID, date).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) FetchBookedIntervalsRange(
	ctx context.Context,
	staffID uuid.UUID,
	fromDate string,
	toDate string,
) (map[string][]schedule.Interval, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Select("date", "start_time", "end_time").
		Where(
			"staff_id = ? AND date >= ? AND date <= ? AND status IN ?",
			staffID, fromDate, toDate, domain.BlockingStatuses(),
		).
		Order("date ASC, start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	byDate := make(map[string][]schedule.Interval)
	for _, b := range rows {
		byDate[b.Date] = append(byDate[b.Date], schedule.Interval{
			Start: b.StartTime,
			End:   b.EndTime,
		})
	}

	return byDate, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
