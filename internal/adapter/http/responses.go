package http

import (
	"time"

	"github.com/neomorfeo/dealerops/internal/domain"
)

const timeLayout = "2006-01-02T15:04:05Z"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

// DealerResponse is the API representation of a dealer. Password hashes never
// leave the service.
type DealerResponse struct {
	ID                 string `json:"id" doc:"Unique identifier"`
	Name               string `json:"name" doc:"Owner name"`
	DealershipName     string `json:"dealership_name"`
	Phone              string `json:"phone"`
	Email              string `json:"email,omitempty"`
	City               string `json:"city,omitempty"`
	State              string `json:"state,omitempty"`
	VehicleCategory    string `json:"vehicle_category"`
	Status             string `json:"status" doc:"pending, approved or deactivated"`
	DeactivationReason string `json:"deactivation_reason,omitempty"`
	IsSystemAccount    bool   `json:"is_system_account,omitempty"`
	CreatedAt          string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt          string `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toDealerResponse(d domain.Dealer) DealerResponse {
	return DealerResponse{
		ID:                 d.ID,
		Name:               d.Name,
		DealershipName:     d.DealershipName,
		Phone:              d.Phone,
		Email:              d.Email,
		City:               d.City,
		State:              d.State,
		VehicleCategory:    string(d.VehicleCategory),
		Status:             string(d.Status),
		DeactivationReason: d.DeactivationReason,
		IsSystemAccount:    d.IsSystemAccount,
		CreatedAt:          formatTime(d.CreatedAt),
		UpdatedAt:          formatTime(d.UpdatedAt),
	}
}

// DealerSummaryResponse is a dealer with its website state, used by admin views.
type DealerSummaryResponse struct {
	DealerResponse
	WebsiteStatus string `json:"website_status"`
	WebsiteLive   bool   `json:"website_live"`
}

func toDealerSummaries(in []domain.DealerSummary) []DealerSummaryResponse {
	out := make([]DealerSummaryResponse, len(in))
	for i, d := range in {
		status := d.WebsiteStatus
		if status == "" {
			status = domain.WebsiteNotRequested
		}
		out[i] = DealerSummaryResponse{
			DealerResponse: toDealerResponse(d.Dealer),
			WebsiteStatus:  string(status),
			WebsiteLive:    d.WebsiteLive,
		}
	}
	return out
}

// FootprintResponse counts the rows removed with a dealer.
type FootprintResponse struct {
	Vehicles    int `json:"vehicles"`
	Employees   int `json:"employees"`
	Leads       int `json:"leads"`
	SalarySlips int `json:"salary_slips"`
	Website     int `json:"website"`
}

// VehicleResponse is the API representation of a vehicle.
type VehicleResponse struct {
	ID                 string            `json:"id"`
	DealerID           string            `json:"dealer_id"`
	Make               string            `json:"make"`
	Model              string            `json:"model"`
	Variant            string            `json:"variant,omitempty"`
	Year               int               `json:"year,omitempty"`
	ManufacturingYear  int               `json:"manufacturing_year,omitempty"`
	RegistrationNumber string            `json:"registration_number"`
	VIN                string            `json:"vin,omitempty"`
	Color              string            `json:"color,omitempty"`
	Odometer           int               `json:"odometer,omitempty"`
	FuelType           string            `json:"fuel_type,omitempty"`
	Transmission       string            `json:"transmission,omitempty"`
	SellerName         string            `json:"seller_name,omitempty"`
	SellerPhone        string            `json:"seller_phone,omitempty"`
	BuyingDate         string            `json:"buying_date,omitempty"`
	BuyingPrice        float64           `json:"buying_price,omitempty"`
	LoanStatus         string            `json:"loan_status,omitempty"`
	ForeclosureAmount  float64           `json:"foreclosure_amount,omitempty"`
	AmountPaidToSeller float64           `json:"amount_paid_to_seller,omitempty"`
	PaymentMethod      string            `json:"payment_method,omitempty"`
	Cost               float64           `json:"cost"`
	RefurbishmentCost  float64           `json:"refurbishment_cost"`
	Price              float64           `json:"price"`
	SellingPrice       float64           `json:"selling_price,omitempty"`
	SellingDate        string            `json:"selling_date,omitempty"`
	BuyerName          string            `json:"buyer_name,omitempty"`
	BuyerPhone         string            `json:"buyer_phone,omitempty"`
	BuyerAddress       string            `json:"buyer_address,omitempty"`
	SalePaymentMethod  string            `json:"sale_payment_method,omitempty"`
	Documents          map[string]string `json:"documents,omitempty"`
	Images             domain.ImageSet   `json:"images"`
	Status             string            `json:"status"`
	CreatedAt          string            `json:"created_at"`
	UpdatedAt          string            `json:"updated_at"`
}

func toVehicleResponse(v domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:                 v.ID,
		DealerID:           v.DealerID,
		Make:               v.Make,
		Model:              v.Model,
		Variant:            v.Variant,
		Year:               v.Year,
		ManufacturingYear:  v.ManufacturingYear,
		RegistrationNumber: v.RegistrationNumber,
		VIN:                v.VIN,
		Color:              v.Color,
		Odometer:           v.Odometer,
		FuelType:           v.FuelType,
		Transmission:       v.Transmission,
		SellerName:         v.SellerName,
		SellerPhone:        v.SellerPhone,
		BuyingDate:         formatTimePtr(v.BuyingDate),
		BuyingPrice:        v.BuyingPrice,
		LoanStatus:         string(v.LoanStatus),
		ForeclosureAmount:  v.ForeclosureAmount,
		AmountPaidToSeller: v.AmountPaidToSeller,
		PaymentMethod:      v.PaymentMethod,
		Cost:               v.Cost,
		RefurbishmentCost:  v.RefurbishmentCost,
		Price:              v.Price,
		SellingPrice:       v.SellingPrice,
		SellingDate:        formatTimePtr(v.SellingDate),
		BuyerName:          v.BuyerName,
		BuyerPhone:         v.BuyerPhone,
		BuyerAddress:       v.BuyerAddress,
		SalePaymentMethod:  v.SalePaymentMethod,
		Documents:          v.Documents,
		Images:             v.Images,
		Status:             string(v.Status),
		CreatedAt:          formatTime(v.CreatedAt),
		UpdatedAt:          formatTime(v.UpdatedAt),
	}
}

func toVehicleResponses(in []domain.Vehicle) []VehicleResponse {
	out := make([]VehicleResponse, len(in))
	for i, v := range in {
		out[i] = toVehicleResponse(v)
	}
	return out
}

// SalarySlipResponse is the API representation of a salary slip.
type SalarySlipResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	DealerID      string  `json:"dealer_id"`
	Month         int     `json:"month"`
	Year          int     `json:"year"`
	BaseSalary    float64 `json:"base_salary"`
	Incentives    float64 `json:"incentives"`
	Total         float64 `json:"total" doc:"Base salary plus incentives"`
	Status        string  `json:"status"`
	GeneratedDate string  `json:"generated_date"`
}

func toSlipResponses(in []domain.SalarySlip) []SalarySlipResponse {
	out := make([]SalarySlipResponse, len(in))
	for i, s := range in {
		out[i] = toSlipResponse(s)
	}
	return out
}

func toSlipResponse(s domain.SalarySlip) SalarySlipResponse {
	return SalarySlipResponse{
		ID:            s.ID,
		EmployeeID:    s.EmployeeID,
		DealerID:      s.DealerID,
		Month:         s.Month,
		Year:          s.Year,
		BaseSalary:    s.BaseSalary,
		Incentives:    s.Incentives,
		Total:         s.Total(),
		Status:        string(s.Status),
		GeneratedDate: formatTime(s.GeneratedDate),
	}
}

// EmployeeResponse is the API representation of an employee.
type EmployeeResponse struct {
	ID             string               `json:"id"`
	DealerID       string               `json:"dealer_id"`
	Name           string               `json:"name"`
	Email          string               `json:"email,omitempty"`
	Phone          string               `json:"phone"`
	Role           string               `json:"role"`
	Salary         float64              `json:"salary"`
	AvatarURL      string               `json:"avatar_url"`
	AadharImageURL string               `json:"aadhar_image_url,omitempty"`
	JoiningDate    string               `json:"joining_date"`
	LeadsThisMonth int                  `json:"leads_this_month"`
	SalarySlips    []SalarySlipResponse `json:"salary_slips"`
	CreatedAt      string               `json:"created_at"`
	UpdatedAt      string               `json:"updated_at"`
}

func toEmployeeResponse(e domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID,
		DealerID:       e.DealerID,
		Name:           e.Name,
		Email:          e.Email,
		Phone:          e.Phone,
		Role:           string(e.Role),
		Salary:         e.Salary,
		AvatarURL:      e.AvatarURL,
		AadharImageURL: e.AadharImageURL,
		JoiningDate:    formatTime(e.JoiningDate),
		LeadsThisMonth: e.LeadsThisMonth,
		SalarySlips:    toSlipResponses(e.SalarySlips),
		CreatedAt:      formatTime(e.CreatedAt),
		UpdatedAt:      formatTime(e.UpdatedAt),
	}
}

// LeadResponse is the API representation of a lead with its referenced names.
type LeadResponse struct {
	ID                  string `json:"id"`
	DealerID            string `json:"dealer_id"`
	VehicleID           string `json:"vehicle_id,omitempty"`
	VehicleName         string `json:"vehicle_name,omitempty"`
	VehicleRegistration string `json:"vehicle_registration,omitempty"`
	AssignedTo          string `json:"assigned_to,omitempty"`
	AssignedToName      string `json:"assigned_to_name,omitempty"`
	Name                string `json:"name"`
	Phone               string `json:"phone"`
	Email               string `json:"email,omitempty"`
	TestDriveStatus     string `json:"test_drive_status"`
	ConversionStatus    string `json:"conversion_status"`
	OtherVehicleName    string `json:"other_vehicle_name,omitempty"`
	OtherVehicleReg     string `json:"other_vehicle_reg,omitempty"`
	Notes               string `json:"notes,omitempty"`
	IsArchived          bool   `json:"is_archived"`
	CreatedAt           string `json:"created_at"`
	UpdatedAt           string `json:"updated_at"`
}

func toLeadResponse(l domain.LeadView) LeadResponse {
	return LeadResponse{
		ID:                  l.ID,
		DealerID:            l.DealerID,
		VehicleID:           l.VehicleID,
		VehicleName:         l.VehicleName,
		VehicleRegistration: l.VehicleRegistration,
		AssignedTo:          l.AssignedTo,
		AssignedToName:      l.AssignedToName,
		Name:                l.Name,
		Phone:               l.Phone,
		Email:               l.Email,
		TestDriveStatus:     string(l.TestDriveStatus),
		ConversionStatus:    string(l.ConversionStatus),
		OtherVehicleName:    l.OtherVehicleName,
		OtherVehicleReg:     l.OtherVehicleReg,
		Notes:               l.Notes,
		IsArchived:          l.IsArchived,
		CreatedAt:           formatTime(l.CreatedAt),
		UpdatedAt:           formatTime(l.UpdatedAt),
	}
}

func toLeadResponses(in []domain.LeadView) []LeadResponse {
	out := make([]LeadResponse, len(in))
	for i, l := range in {
		out[i] = toLeadResponse(l)
	}
	return out
}

// WebsiteResponse is the API representation of a dealer's site content.
type WebsiteResponse struct {
	DealerID      string `json:"dealer_id"`
	BrandName     string `json:"brand_name"`
	LogoURL       string `json:"logo_url,omitempty"`
	Tagline       string `json:"tagline,omitempty"`
	AboutUs       string `json:"about_us,omitempty"`
	ContactPhone  string `json:"contact_phone"`
	ContactEmail  string `json:"contact_email,omitempty"`
	Address       string `json:"address,omitempty"`
	ActiveTheme   string `json:"active_theme"`
	WebsiteStatus string `json:"website_status"`
	IsLive        bool   `json:"is_live"`
}

func toWebsiteResponse(w domain.WebsiteContent) WebsiteResponse {
	return WebsiteResponse{
		DealerID:      w.DealerID,
		BrandName:     w.BrandName,
		LogoURL:       w.LogoURL,
		Tagline:       w.Tagline,
		AboutUs:       w.AboutUs,
		ContactPhone:  w.ContactPhone,
		ContactEmail:  w.ContactEmail,
		Address:       w.Address,
		ActiveTheme:   w.ActiveTheme,
		WebsiteStatus: string(w.WebsiteStatus),
		IsLive:        w.IsLive,
	}
}
