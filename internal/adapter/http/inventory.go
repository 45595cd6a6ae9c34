package http

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/dealerops/internal/app"
	"github.com/neomorfeo/dealerops/internal/domain"
)

// VehicleFields is the writable part of a vehicle shared by create and update.
type VehicleFields struct {
	Make               *string            `json:"make,omitempty"`
	Model              *string            `json:"model,omitempty"`
	Variant            *string            `json:"variant,omitempty"`
	Year               *int               `json:"year,omitempty"`
	ManufacturingYear  *int               `json:"manufacturing_year,omitempty"`
	RegistrationNumber *string            `json:"registration_number,omitempty" doc:"Normalised to upper case without spaces"`
	VIN                *string            `json:"vin,omitempty"`
	Color              *string            `json:"color,omitempty"`
	Odometer           *int               `json:"odometer,omitempty" minimum:"0"`
	FuelType           *string            `json:"fuel_type,omitempty"`
	Transmission       *string            `json:"transmission,omitempty"`
	SellerName         *string            `json:"seller_name,omitempty"`
	SellerPhone        *string            `json:"seller_phone,omitempty"`
	BuyingDate         *time.Time         `json:"buying_date,omitempty"`
	BuyingPrice        *float64           `json:"buying_price,omitempty" minimum:"0"`
	LoanStatus         *string            `json:"loan_status,omitempty" enum:"HypoTerminated,OpenLoan,ClosedLoan"`
	ForeclosureAmount  *float64           `json:"foreclosure_amount,omitempty" minimum:"0"`
	AmountPaidToSeller *float64           `json:"amount_paid_to_seller,omitempty" minimum:"0"`
	PaymentMethod      *string            `json:"payment_method,omitempty"`
	Cost               *float64           `json:"cost,omitempty" minimum:"0"`
	RefurbishmentCost  *float64           `json:"refurbishment_cost,omitempty" minimum:"0"`
	Price              *float64           `json:"price,omitempty" minimum:"0" doc:"Asking price"`
	Documents          *map[string]string `json:"documents,omitempty" doc:"Document URLs keyed by name"`
	Images             *domain.ImageSet   `json:"images,omitempty"`
}

func (f VehicleFields) patch() domain.VehiclePatch {
	return domain.VehiclePatch{
		Make:               domain.FromPtr(f.Make),
		Model:              domain.FromPtr(f.Model),
		Variant:            domain.FromPtr(f.Variant),
		Year:               domain.FromPtr(f.Year),
		ManufacturingYear:  domain.FromPtr(f.ManufacturingYear),
		RegistrationNumber: domain.FromPtr(f.RegistrationNumber),
		VIN:                domain.FromPtr(f.VIN),
		Color:              domain.FromPtr(f.Color),
		Odometer:           domain.FromPtr(f.Odometer),
		FuelType:           domain.FromPtr(f.FuelType),
		Transmission:       domain.FromPtr(f.Transmission),
		SellerName:         domain.FromPtr(f.SellerName),
		SellerPhone:        domain.FromPtr(f.SellerPhone),
		BuyingDate:         domain.FromPtr(f.BuyingDate),
		BuyingPrice:        domain.FromPtr(f.BuyingPrice),
		LoanStatus:         domain.FromPtr((*domain.LoanStatus)(f.LoanStatus)),
		ForeclosureAmount:  domain.FromPtr(f.ForeclosureAmount),
		AmountPaidToSeller: domain.FromPtr(f.AmountPaidToSeller),
		PaymentMethod:      domain.FromPtr(f.PaymentMethod),
		Cost:               domain.FromPtr(f.Cost),
		RefurbishmentCost:  domain.FromPtr(f.RefurbishmentCost),
		Price:              domain.FromPtr(f.Price),
		Documents:          domain.FromPtr(f.Documents),
		Images:             domain.FromPtr(f.Images),
	}
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

func (f VehicleFields) vehicle() domain.Vehicle {
	return domain.Vehicle{
		Make:               deref(f.Make),
		Model:              deref(f.Model),
		Variant:            deref(f.Variant),
		Year:               deref(f.Year),
		ManufacturingYear:  deref(f.ManufacturingYear),
		RegistrationNumber: deref(f.RegistrationNumber),
		VIN:                deref(f.VIN),
		Color:              deref(f.Color),
		Odometer:           deref(f.Odometer),
		FuelType:           deref(f.FuelType),
		Transmission:       deref(f.Transmission),
		SellerName:         deref(f.SellerName),
		SellerPhone:        deref(f.SellerPhone),
		BuyingDate:         f.BuyingDate,
		BuyingPrice:        deref(f.BuyingPrice),
		LoanStatus:         domain.LoanStatus(deref(f.LoanStatus)),
		ForeclosureAmount:  deref(f.ForeclosureAmount),
		AmountPaidToSeller: deref(f.AmountPaidToSeller),
		PaymentMethod:      deref(f.PaymentMethod),
		Cost:               deref(f.Cost),
		RefurbishmentCost:  deref(f.RefurbishmentCost),
		Price:              deref(f.Price),
		Documents:          deref(f.Documents),
		Images:             deref(f.Images),
	}
}

// --- Inputs ---

type AddVehicleInput struct {
	DealerID string `path:"dealerID" doc:"Dealer ID"`
	Body     struct {
		VehicleFields
		Status string `json:"status,omitempty" enum:"Draft,For Sale" doc:"Initial status, Draft by default"`
	}
}

type VehicleInput struct {
	DealerID string `path:"dealerID" doc:"Dealer ID"`
	ID       string `path:"id" doc:"Vehicle ID"`
}

type ListVehiclesInput struct {
	DealerID string `path:"dealerID" doc:"Dealer ID"`
	Status   string `query:"status" required:"false" enum:"For Sale,Sold,In Refurbishment,Draft" doc:"Filter by status"`
}

type UpdateVehicleInput struct {
	DealerID string `path:"dealerID" doc:"Dealer ID"`
	ID       string `path:"id" doc:"Vehicle ID"`
	Body     VehicleFields
}

type SetVehicleStatusInput struct {
	DealerID string `path:"dealerID" doc:"Dealer ID"`
	ID       string `path:"id" doc:"Vehicle ID"`
	Body     struct {
		Status string `json:"status" enum:"For Sale,In Refurbishment,Draft" doc:"Target status; use the sale operation to sell"`
	}
}

type SellVehicleInput struct {
	DealerID string `path:"dealerID" doc:"Dealer ID"`
	ID       string `path:"id" doc:"Vehicle ID"`
	Body     struct {
		SellingPrice      float64    `json:"selling_price" minimum:"0"`
		SellingDate       *time.Time `json:"selling_date,omitempty" doc:"Defaults to now"`
		BuyerName         string     `json:"buyer_name" minLength:"1"`
		BuyerPhone        string     `json:"buyer_phone" minLength:"1"`
		BuyerAddress      string     `json:"buyer_address,omitempty"`
		PaymentMethod     string     `json:"payment_method,omitempty"`
		Cost              *float64   `json:"cost,omitempty" minimum:"0" doc:"Overrides the recorded cost"`
		RefurbishmentCost *float64   `json:"refurbishment_cost,omitempty" minimum:"0" doc:"Overrides the recorded refurbishment cost"`
	}
}

type GetAnyVehicleInput struct {
	ID string `path:"id" doc:"Vehicle ID"`
}

// --- Outputs ---

type VehicleOutput struct {
	Body VehicleResponse
}

type ListVehiclesOutput struct {
	Body []VehicleResponse
}

type SaleOutput struct {
	Body struct {
		Vehicle       VehicleResponse `json:"vehicle"`
		ArchivedLeads int             `json:"archived_leads" doc:"Open leads closed by the sale"`
	}
}

func registerInventoryRoutes(api huma.API, svc *app.InventoryService, g guards) {
	base := prefix + "/dealers/{dealerID}/vehicles"

	huma.Register(api, huma.Operation{
		OperationID: "add-vehicle",
		Method:      http.MethodPost,
		Path:        base,
		Summary:     "Add a vehicle to inventory",
		Tags:        []string{"Inventory"},
		Middlewares: g.tenant,
	}, func(ctx context.Context, input *AddVehicleInput) (*VehicleOutput, error) {
		v := input.Body.vehicle()
		v.Status = domain.VehicleStatus(input.Body.Status)
		vehicle, err := svc.AddVehicle(ctx, input.DealerID, v)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &VehicleOutput{Body: toVehicleResponse(vehicle)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-vehicles",
		Method:      http.MethodGet,
		Path:        base,
		Summary:     "List a dealer's vehicles",
		Tags:        []string{"Inventory"},
		Middlewares: g.tenant,
	}, func(ctx context.Context, input *ListVehiclesInput) (*ListVehiclesOutput, error) {
		var status *domain.VehicleStatus
		if input.Status != "" {
			s := domain.VehicleStatus(input.Status)
			status = &s
		}
		vehicles, err := svc.ListVehicles(ctx, input.DealerID, status)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ListVehiclesOutput{Body: toVehicleResponses(vehicles)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-vehicle",
		Method:      http.MethodGet,
		Path:        base + "/{id}",
		Summary:     "Get a vehicle",
		Tags:        []string{"Inventory"},
		Middlewares: g.tenant,
	}, func(ctx context.Context, input *VehicleInput) (*VehicleOutput, error) {
		vehicle, err := svc.GetVehicle(ctx, input.ID, input.DealerID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &VehicleOutput{Body: toVehicleResponse(vehicle)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-vehicle",
		Method:      http.MethodPatch,
		Path:        base + "/{id}",
		Summary:     "Update vehicle details",
		Tags:        []string{"Inventory"},
		Middlewares: g.tenant,
	}, func(ctx context.Context, input *UpdateVehicleInput) (*VehicleOutput, error) {
		vehicle, err := svc.UpdateVehicle(ctx, input.ID, input.DealerID, input.Body.patch())
		if err != nil {
			return nil, toHumaError(err)
		}
		return &VehicleOutput{Body: toVehicleResponse(vehicle)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "set-vehicle-status",
		Method:      http.MethodPost,
		Path:        base + "/{id}/status",
		Summary:     "Change a vehicle's status",
		Tags:        []string{"Inventory"},
		Middlewares: g.tenant,
	}, func(ctx context.Context, input *SetVehicleStatusInput) (*VehicleOutput, error) {
		vehicle, err := svc.SetVehicleStatus(ctx, input.ID, input.DealerID, domain.VehicleStatus(input.Body.Status))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &VehicleOutput{Body: toVehicleResponse(vehicle)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "sell-vehicle",
		Method:      http.MethodPost,
		Path:        base + "/{id}/sale",
		Summary:     "Mark a vehicle sold",
		Description: "Records the sale and archives every open lead for the vehicle in one transaction.",
		Tags:        []string{"Inventory"},
		Middlewares: g.tenant,
	}, func(ctx context.Context, input *SellVehicleInput) (*SaleOutput, error) {
		b := input.Body
		sale := domain.Sale{
			SellingPrice:      b.SellingPrice,
			BuyerName:         b.BuyerName,
			BuyerPhone:        b.BuyerPhone,
			BuyerAddress:      b.BuyerAddress,
			PaymentMethod:     b.PaymentMethod,
			Cost:              domain.FromPtr(b.Cost),
			RefurbishmentCost: domain.FromPtr(b.RefurbishmentCost),
		}
		if b.SellingDate != nil {
			sale.SellingDate = *b.SellingDate
		}

		result, err := svc.MarkVehicleSold(ctx, input.ID, input.DealerID, sale)
		if err != nil {
			return nil, toHumaError(err)
		}

		out := &SaleOutput{}
		out.Body.Vehicle = toVehicleResponse(result.Vehicle)
		out.Body.ArchivedLeads = result.ArchivedLeads
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "relist-vehicle",
		Method:      http.MethodPost,
		Path:        base + "/{id}/relist",
		Summary:     "Put a sold vehicle back on sale",
		Description: "Sale fields are cleared. Leads archived by the sale stay archived.",
		Tags:        []string{"Inventory"},
		Middlewares: g.tenant,
	}, func(ctx context.Context, input *VehicleInput) (*VehicleOutput, error) {
		vehicle, err := svc.RelistVehicle(ctx, input.ID, input.DealerID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &VehicleOutput{Body: toVehicleResponse(vehicle)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-vehicle",
		Method:        http.MethodDelete,
		Path:          base + "/{id}",
		Summary:       "Delete a vehicle",
		Tags:          []string{"Inventory"},
		Middlewares:   g.tenant,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *VehicleInput) (*struct{}, error) {
		if err := svc.DeleteVehicle(ctx, input.ID, input.DealerID); err != nil {
			return nil, toHumaError(err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-get-vehicle",
		Method:      http.MethodGet,
		Path:        prefix + "/admin/vehicles/{id}",
		Summary:     "Get any dealer's vehicle",
		Tags:        []string{"Admin"},
		Middlewares: g.admin,
	}, func(ctx context.Context, input *GetAnyVehicleInput) (*VehicleOutput, error) {
		vehicle, err := svc.GetVehicle(ctx, input.ID, "")
		if err != nil {
			return nil, toHumaError(err)
		}
		return &VehicleOutput{Body: toVehicleResponse(vehicle)}, nil
	})
}
