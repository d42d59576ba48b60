package access

import (
	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/domain/model/request"
)

// WithheldContactMessage is returned in place of driver contact data when
// the disclosure policy denies access. Contact details are never embedded
// in error text.
const WithheldContactMessage = "Driver contact is available once your delivery is in progress. " +
	"Please check back after a provider has been assigned and dispatch has started."

const (
	ReasonDisclosed        = "disclosed: actor is authorized and delivery is active"
	ReasonNoCapability     = "withheld: role has no driver contact capability"
	ReasonNotParticipant   = "withheld: actor is not a participant of the request"
	ReasonDeliveryInactive = "withheld: delivery is not in an active phase"
	ReasonNoProvider       = "withheld: no provider is assigned to the request"
)

// Decision is the outcome of a disclosure check. The reason is written to
// the access log verbatim.
type Decision struct {
	Allowed bool
	Reason  string
}

// CanDiscloseDriverContact decides whether the actor may see the contact
// details of the driver serving the given request. Access requires all of:
// the role holds the disclosure capability, the actor participates in the
// request (its builder or its assigned supplier, admins always participate),
// and the delivery is in an active phase. The check is evaluated fresh on
// every call so a delivered or cancelled request stops disclosing.
func CanDiscloseDriverContact(actorID kernel.UUID, actorRole Role,
	deliveryRequest *request.DeliveryRequest) Decision {
	if !HasCapability(actorRole, CapabilityRequestDriverContact) {
		return Decision{Allowed: false, Reason: ReasonNoCapability}
	}

	if actorRole != RoleAdmin && !isParticipant(actorID, deliveryRequest) {
		return Decision{Allowed: false, Reason: ReasonNotParticipant}
	}

	if !deliveryRequest.Phase().IsActiveDelivery() {
		return Decision{Allowed: false, Reason: ReasonDeliveryInactive}
	}

	return Decision{Allowed: true, Reason: ReasonDisclosed}
}

func isParticipant(actorID kernel.UUID, deliveryRequest *request.DeliveryRequest) bool {
	if deliveryRequest.BuilderID().IsEqual(actorID) {
		return true
	}
	if supplierID := deliveryRequest.SupplierID(); supplierID != nil && supplierID.IsEqual(actorID) {
		return true
	}
	return false
}
