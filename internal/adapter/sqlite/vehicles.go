package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/neomorfeo/dealerops/internal/domain"
)

const vehicleColumns = `v.id, v.dealer_id, v.make, v.model, COALESCE(v.variant, ''), COALESCE(v.year, 0),
	COALESCE(v.manufacturing_year, 0), v.registration_number, COALESCE(v.vin, ''), COALESCE(v.color, ''),
	COALESCE(v.odometer, 0), COALESCE(v.fuel_type, ''), COALESCE(v.transmission, ''),
	COALESCE(v.seller_name, ''), COALESCE(v.seller_phone, ''), v.buying_date, COALESCE(v.buying_price, 0),
	COALESCE(v.loan_status, ''), COALESCE(v.foreclosure_amount, 0), COALESCE(v.amount_paid_to_seller, 0),
	COALESCE(v.payment_method, ''), v.cost, v.refurbishment_cost, v.price, COALESCE(v.selling_price, 0),
	v.selling_date, COALESCE(v.buyer_name, ''), COALESCE(v.buyer_phone, ''), COALESCE(v.buyer_address, ''),
	COALESCE(v.sale_payment_method, ''), v.documents, v.images, v.status, v.created_at, v.updated_at`

func (s *Store) CreateVehicle(ctx context.Context, v domain.Vehicle) error {
	docs, err := encodeJSON(v.Documents)
	if err != nil {
		return fmt.Errorf("encoding vehicle documents: %w", err)
	}
	images, err := encodeJSON(v.Images)
	if err != nil {
		return fmt.Errorf("encoding vehicle images: %w", err)
	}

	_, err = s.q.ExecContext(ctx,
		`INSERT INTO vehicles (id, dealer_id, make, model, variant, year, manufacturing_year,
		 registration_number, vin, color, odometer, fuel_type, transmission,
		 seller_name, seller_phone, buying_date, buying_price, loan_status, foreclosure_amount,
		 amount_paid_to_seller, payment_method, cost, refurbishment_cost, price,
		 documents, images, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.DealerID, v.Make, v.Model, nullString(v.Variant), v.Year, v.ManufacturingYear,
		v.RegistrationNumber, nullString(v.VIN), nullString(v.Color), v.Odometer,
		nullString(v.FuelType), nullString(v.Transmission),
		nullString(v.SellerName), nullString(v.SellerPhone), nullTime(v.BuyingDate), v.BuyingPrice,
		nullString(v.LoanStatus), v.ForeclosureAmount, v.AmountPaidToSeller, nullString(v.PaymentMethod),
		v.Cost, v.RefurbishmentCost, v.Price,
		docs, images, string(v.Status), formatTime(v.CreatedAt), formatTime(v.UpdatedAt),
	)
	return translate(err, "inserting", "vehicle",
		map[string]string{"registration_number": v.RegistrationNumber}, domain.ErrDealerNotFound)
}

func (s *Store) GetVehicle(ctx context.Context, id string) (domain.Vehicle, error) {
	v, err := scanVehicle(s.q.QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles v WHERE v.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Vehicle{}, domain.ErrVehicleNotFound
	}
	return v, err
}

func (s *Store) ListVehicles(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles v WHERE v.dealer_id = ?`
	args := []any{filter.DealerID}

	if filter.Status != nil {
		query += ` AND v.status = ?`
		args = append(args, string(*filter.Status))
	}

	query += ` ORDER BY v.created_at DESC, v.id`

	return s.queryVehicles(ctx, query, args...)
}

func (s *Store) UpdateVehicle(ctx context.Context, id string, patch domain.VehiclePatch) error {
	var a assignments
	setText(&a, "make", patch.Make)
	setText(&a, "model", patch.Model)
	setText(&a, "variant", patch.Variant)
	setNumber(&a, "year", patch.Year)
	setNumber(&a, "manufacturing_year", patch.ManufacturingYear)
	setText(&a, "registration_number", patch.RegistrationNumber)
	setText(&a, "vin", patch.VIN)
	setText(&a, "color", patch.Color)
	setNumber(&a, "odometer", patch.Odometer)
	setText(&a, "fuel_type", patch.FuelType)
	setText(&a, "transmission", patch.Transmission)
	setText(&a, "seller_name", patch.SellerName)
	setText(&a, "seller_phone", patch.SellerPhone)
	setTime(&a, "buying_date", patch.BuyingDate)
	setNumber(&a, "buying_price", patch.BuyingPrice)
	setText(&a, "loan_status", patch.LoanStatus)
	setNumber(&a, "foreclosure_amount", patch.ForeclosureAmount)
	setNumber(&a, "amount_paid_to_seller", patch.AmountPaidToSeller)
	setText(&a, "payment_method", patch.PaymentMethod)
	setNumber(&a, "cost", patch.Cost)
	setNumber(&a, "refurbishment_cost", patch.RefurbishmentCost)
	setNumber(&a, "price", patch.Price)
	if err := setJSON(&a, "documents", patch.Documents); err != nil {
		return err
	}
	if err := setJSON(&a, "images", patch.Images); err != nil {
		return err
	}

	result, err := a.exec(ctx, s.q, "vehicles", "id", id)
	if err != nil {
		return translate(err, "updating", "vehicle",
			map[string]string{"registration_number": patch.RegistrationNumber.Value}, nil)
	}
	return checkAffected(result, domain.ErrVehicleNotFound)
}

func (s *Store) SetVehicleStatus(ctx context.Context, id string, status domain.VehicleStatus) error {
	result, err := s.q.ExecContext(ctx,
		`UPDATE vehicles SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), formatTime(nowUTC()), id,
	)
	if err != nil {
		return fmt.Errorf("updating vehicle status: %w", err)
	}
	return checkAffected(result, domain.ErrVehicleNotFound)
}

// RecordSale stamps the sale fields and marks the vehicle Sold. Lead archival
// is a separate statement the caller runs in the same transaction.
func (s *Store) RecordSale(ctx context.Context, id string, sale domain.Sale) error {
	var a assignments
	a.add("status", string(domain.VehicleSold))
	a.add("selling_price", sale.SellingPrice)
	a.add("selling_date", formatTime(sale.SellingDate))
	a.add("buyer_name", nullString(sale.BuyerName))
	a.add("buyer_phone", nullString(sale.BuyerPhone))
	a.add("buyer_address", nullString(sale.BuyerAddress))
	a.add("sale_payment_method", nullString(sale.PaymentMethod))
	setNumber(&a, "cost", sale.Cost)
	setNumber(&a, "refurbishment_cost", sale.RefurbishmentCost)

	result, err := a.exec(ctx, s.q, "vehicles", "id", id)
	if err != nil {
		return translate(err, "recording sale of", "vehicle", nil, nil)
	}
	return checkAffected(result, domain.ErrVehicleNotFound)
}

// ClearSale wipes the buyer and sale fields and moves the vehicle to status.
// Cost figures entered with the sale are kept.
func (s *Store) ClearSale(ctx context.Context, id string, status domain.VehicleStatus) error {
	var a assignments
	a.add("status", string(status))
	for _, col := range []string{"selling_price", "selling_date", "buyer_name", "buyer_phone", "buyer_address", "sale_payment_method"} {
		a.add(col, nil)
	}

	result, err := a.exec(ctx, s.q, "vehicles", "id", id)
	if err != nil {
		return translate(err, "clearing sale of", "vehicle", nil, nil)
	}
	return checkAffected(result, domain.ErrVehicleNotFound)
}

func (s *Store) DeleteVehicle(ctx context.Context, id string) error {
	result, err := s.q.ExecContext(ctx, `DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting vehicle: %w", err)
	}
	return checkAffected(result, domain.ErrVehicleNotFound)
}

func (s *Store) queryVehicles(ctx context.Context, query string, args ...any) ([]domain.Vehicle, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := []domain.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning vehicle row: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, rows.Err()
}

func scanVehicle(row scanner) (domain.Vehicle, error) {
	var v domain.Vehicle
	var buyingDate, sellingDate, docs, images sql.NullString
	var loanStatus, status, createdAt, updatedAt string

	err := row.Scan(&v.ID, &v.DealerID, &v.Make, &v.Model, &v.Variant, &v.Year,
		&v.ManufacturingYear, &v.RegistrationNumber, &v.VIN, &v.Color,
		&v.Odometer, &v.FuelType, &v.Transmission,
		&v.SellerName, &v.SellerPhone, &buyingDate, &v.BuyingPrice,
		&loanStatus, &v.ForeclosureAmount, &v.AmountPaidToSeller,
		&v.PaymentMethod, &v.Cost, &v.RefurbishmentCost, &v.Price, &v.SellingPrice,
		&sellingDate, &v.BuyerName, &v.BuyerPhone, &v.BuyerAddress,
		&v.SalePaymentMethod, &docs, &images, &status, &createdAt, &updatedAt)
	if err != nil {
		return domain.Vehicle{}, err
	}

	v.BuyingDate = parseNullTime(buyingDate)
	v.SellingDate = parseNullTime(sellingDate)
	v.LoanStatus = domain.LoanStatus(loanStatus)
	v.Status = domain.VehicleStatus(status)
	v.CreatedAt = parseTime(createdAt)
	v.UpdatedAt = parseTime(updatedAt)

	if err := decodeJSON(docs, &v.Documents); err != nil {
		return domain.Vehicle{}, fmt.Errorf("decoding vehicle documents: %w", err)
	}
	if err := decodeJSON(images, &v.Images); err != nil {
		return domain.Vehicle{}, fmt.Errorf("decoding vehicle images: %w", err)
	}
	return v, nil
}
