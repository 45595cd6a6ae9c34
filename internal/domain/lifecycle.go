package domain

import "context"

// Machine names one of the lifecycle state machines.
type Machine string

const (
	MachineVehicle Machine = "vehicle"
	MachineDealer  Machine = "dealer"
	MachineWebsite Machine = "website"
)

// Event represents an action that triggers a state transition.
type Event string

const (
	EventList      Event = "list"
	EventUnlist    Event = "unlist"
	EventRefurbish Event = "refurbish"
	EventSell      Event = "sell"
	EventRelist    Event = "relist"

	EventApprove    Event = "approve"
	EventDeactivate Event = "deactivate"
	EventReset      Event = "reset"

	EventRequest Event = "request"
	EventReject  Event = "reject"
)

// Guard events appear in TransitionErrors but in no table: a vehicle may only
// be created in Draft or For Sale, and a website may only go live once approved.
const (
	EventCreate Event = "create"
	EventGoLive Event = "go_live"
)

// Transition defines a valid state change: an event moves an entity from Src to Dst.
type Transition struct {
	Event Event
	Src   string
	Dst   string
}

// VehicleTransitions covers Vehicle.Status. Sold is entered only through EventSell.
var VehicleTransitions = []Transition{
	{Event: EventList, Src: string(VehicleDraft), Dst: string(VehicleForSale)},
	{Event: EventList, Src: string(VehicleInRefurbishment), Dst: string(VehicleForSale)},
	{Event: EventUnlist, Src: string(VehicleForSale), Dst: string(VehicleDraft)},
	{Event: EventRefurbish, Src: string(VehicleDraft), Dst: string(VehicleInRefurbishment)},
	{Event: EventRefurbish, Src: string(VehicleForSale), Dst: string(VehicleInRefurbishment)},
	{Event: EventSell, Src: string(VehicleDraft), Dst: string(VehicleSold)},
	{Event: EventSell, Src: string(VehicleForSale), Dst: string(VehicleSold)},
	{Event: EventSell, Src: string(VehicleInRefurbishment), Dst: string(VehicleSold)},
	{Event: EventRelist, Src: string(VehicleSold), Dst: string(VehicleForSale)},
}

// DealerTransitions covers Dealer.Status.
var DealerTransitions = []Transition{
	{Event: EventApprove, Src: string(DealerPending), Dst: string(DealerApproved)},
	{Event: EventDeactivate, Src: string(DealerPending), Dst: string(DealerDeactivated)},
	{Event: EventDeactivate, Src: string(DealerApproved), Dst: string(DealerDeactivated)},
	{Event: EventReset, Src: string(DealerApproved), Dst: string(DealerPending)},
	{Event: EventReset, Src: string(DealerDeactivated), Dst: string(DealerPending)},
}

// WebsiteTransitions covers WebsiteContent.WebsiteStatus. IsLive is not part of
// the machine; it may only be switched on while the status is approved.
var WebsiteTransitions = []Transition{
	{Event: EventRequest, Src: string(WebsiteNotRequested), Dst: string(WebsitePendingApproval)},
	{Event: EventRequest, Src: string(WebsiteRejected), Dst: string(WebsitePendingApproval)},
	{Event: EventApprove, Src: string(WebsitePendingApproval), Dst: string(WebsiteApproved)},
	{Event: EventReject, Src: string(WebsitePendingApproval), Dst: string(WebsiteRejected)},
}

// Lifecycles indexes every transition table by machine.
var Lifecycles = map[Machine][]Transition{
	MachineVehicle: VehicleTransitions,
	MachineDealer:  DealerTransitions,
	MachineWebsite: WebsiteTransitions,
}

// TransitionValidator checks an event against a machine's transition table and
// returns the destination state.
type TransitionValidator interface {
	Apply(ctx context.Context, machine Machine, current string, event Event) (string, error)
}
